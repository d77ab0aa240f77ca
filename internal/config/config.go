package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Device      DeviceConfig
	Vitals      VitalsConfig
	Persistence PersistenceConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	MQTT        MQTTConfig
	Redis       RedisConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type DeviceConfig struct {
	// LivenessWindow is how long after its last reading a device still counts as online.
	LivenessWindow time.Duration
}

type VitalsConfig struct {
	DefaultLimit  int
	MaxLimit      int
	MaxECGSamples int
}

type PersistenceConfig struct {
	Timeout time.Duration
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
	DeviceRPS    float64 // Per-device requests per second on /api/esp32
	DeviceBurst  int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	VitalsTopic string
	QoS         int
	Workers     int
	BufferSize  int
}

// Enabled reports whether the MQTT ingestion transport should be started.
func (c MQTTConfig) Enabled() bool {
	return c.Broker != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "4000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ISSUER", "simhealth")
	v.SetDefault("DEVICE_LIVENESS_WINDOW", "120s")
	v.SetDefault("VITALS_DEFAULT_LIMIT", 100)
	v.SetDefault("VITALS_MAX_LIMIT", 1000)
	v.SetDefault("VITALS_MAX_ECG_SAMPLES", 5000)
	v.SetDefault("PERSISTENCE_TIMEOUT", "5s")
	v.SetDefault("RATE_LIMIT_GENERAL_RPS", 20.0)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	v.SetDefault("RATE_LIMIT_DEVICE_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_DEVICE_BURST", 20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("MQTT_CLIENT_ID", "simhealth-api")
	v.SetDefault("MQTT_VITALS_TOPIC", "simhealth/esp32/+/vitals")
	v.SetDefault("MQTT_QOS", 1)
	v.SetDefault("MQTT_WORKERS", 4)
	v.SetDefault("MQTT_BUFFER_SIZE", 1000)
	v.SetDefault("EVENTS_STREAM", "simhealth:vitals")
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(homeDir)
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			Environment: v.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		Device: DeviceConfig{
			LivenessWindow: v.GetDuration("DEVICE_LIVENESS_WINDOW"),
		},
		Vitals: VitalsConfig{
			DefaultLimit:  v.GetInt("VITALS_DEFAULT_LIMIT"),
			MaxLimit:      v.GetInt("VITALS_MAX_LIMIT"),
			MaxECGSamples: v.GetInt("VITALS_MAX_ECG_SAMPLES"),
		},
		Persistence: PersistenceConfig{
			Timeout: v.GetDuration("PERSISTENCE_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_GENERAL_BURST"),
			DeviceRPS:    v.GetFloat64("RATE_LIMIT_DEVICE_RPS"),
			DeviceBurst:  v.GetInt("RATE_LIMIT_DEVICE_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   v.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   v.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           v.GetInt("CORS_MAX_AGE"),
		},
		MQTT: MQTTConfig{
			Broker:      v.GetString("MQTT_BROKER"),
			ClientID:    v.GetString("MQTT_CLIENT_ID"),
			Username:    v.GetString("MQTT_USERNAME"),
			Password:    v.GetString("MQTT_PASSWORD"),
			VitalsTopic: v.GetString("MQTT_VITALS_TOPIC"),
			QoS:         v.GetInt("MQTT_QOS"),
			Workers:     v.GetInt("MQTT_WORKERS"),
			BufferSize:  v.GetInt("MQTT_BUFFER_SIZE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Stream:   v.GetString("EVENTS_STREAM"),
		},
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("database configuration is missing: set DB_HOST and DB_NAME")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT secret is missing: set JWT_SECRET")
	}
	if c.Device.LivenessWindow <= 0 {
		return fmt.Errorf("DEVICE_LIVENESS_WINDOW must be positive, got %s", c.Device.LivenessWindow)
	}
	if c.Persistence.Timeout <= 0 {
		return fmt.Errorf("PERSISTENCE_TIMEOUT must be positive, got %s", c.Persistence.Timeout)
	}
	if c.Vitals.DefaultLimit <= 0 || c.Vitals.MaxLimit < c.Vitals.DefaultLimit {
		return fmt.Errorf("invalid vitals limits: default=%d max=%d", c.Vitals.DefaultLimit, c.Vitals.MaxLimit)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

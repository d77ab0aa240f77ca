package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg := fromViper(newTestViper(nil))

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, 120*time.Second, cfg.Device.LivenessWindow)
	assert.Equal(t, 100, cfg.Vitals.DefaultLimit)
	assert.Equal(t, 1000, cfg.Vitals.MaxLimit)
	assert.Equal(t, 5*time.Second, cfg.Persistence.Timeout)
	assert.False(t, cfg.MQTT.Enabled())
	assert.False(t, cfg.Redis.Enabled())
}

func TestOverrides(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]any{
		"DEVICE_LIVENESS_WINDOW": "5m",
		"MQTT_BROKER":            "tcp://broker:1883",
		"REDIS_ADDR":             "redis:6379",
	}))

	assert.Equal(t, 5*time.Minute, cfg.Device.LivenessWindow)
	assert.True(t, cfg.MQTT.Enabled())
	assert.True(t, cfg.Redis.Enabled())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return fromViper(newTestViper(map[string]any{
			"DB_HOST":    "localhost",
			"DB_NAME":    "simhealth",
			"JWT_SECRET": "secret",
		}))
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Database.DBName = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Device.LivenessWindow = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Vitals.MaxLimit = 10
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", db.DSN())
}

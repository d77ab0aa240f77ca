package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"simhealth/internal/config"
	"simhealth/internal/events"
	"simhealth/internal/infrastructure/database/postgres"
	"simhealth/internal/ingestion"
	"simhealth/internal/logger"
	"simhealth/internal/routes"
	"simhealth/internal/usecase/device"
	"simhealth/internal/usecase/vitals"
	pkgmqtt "simhealth/pkg/mqtt"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.Duration("liveness_window", cfg.Device.LivenessWindow),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	deviceRepo := postgres.NewDeviceRepository(db)
	vitalsRepo := postgres.NewVitalsRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)

	publisher := newPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	deviceService := device.NewService(deviceRepo, vitalsRepo, patientRepo, doctorRepo, device.Options{
		LivenessWindow:     cfg.Device.LivenessWindow,
		PersistenceTimeout: cfg.Persistence.Timeout,
	})
	vitalsService := vitals.NewService(deviceRepo, vitalsRepo, patientRepo, doctorRepo, publisher, vitals.Options{
		DefaultLimit:       cfg.Vitals.DefaultLimit,
		MaxLimit:           cfg.Vitals.MaxLimit,
		MaxECGSamples:      cfg.Vitals.MaxECGSamples,
		PersistenceTimeout: cfg.Persistence.Timeout,
	})

	var (
		processor  *ingestion.Processor
		mqttClient *ingestion.MQTTIngestionClient
	)
	if cfg.MQTT.Enabled() {
		processor = ingestion.NewProcessor(vitalsService, cfg.MQTT.Workers, cfg.MQTT.BufferSize, cfg.Persistence.Timeout)
		mqttClient, err = ingestion.NewMQTTIngestionClient(&ingestion.MQTTIngestionConfig{
			ClientConfig: &pkgmqtt.Config{
				Broker:               cfg.MQTT.Broker,
				ClientID:             cfg.MQTT.ClientID,
				Username:             cfg.MQTT.Username,
				Password:             cfg.MQTT.Password,
				CleanSession:         false,
				KeepAlive:            30,
				ConnectTimeout:       10,
				AutoReconnect:        true,
				MaxReconnectInterval: time.Minute,
			},
			VitalsTopic: cfg.MQTT.VitalsTopic,
			QoS:         byte(cfg.MQTT.QoS),
			PublishAcks: true,
		}, processor)
		if err != nil {
			logger.Fatal("Failed to configure MQTT ingestion", zap.Error(err))
		}

		processor.Start()
		if err := mqttClient.Start(); err != nil {
			logger.Fatal("Failed to start MQTT ingestion", zap.Error(err))
		}
	} else {
		logger.Info("MQTT_BROKER not set, MQTT ingestion disabled")
	}

	stop := make(chan struct{})
	router := routes.SetupRoutes(cfg, routes.Dependencies{
		Devices: deviceService,
		Vitals:  vitalsService,
		Health:  db,
		Stop:    stop,
	})

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "4000"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}
	close(stop)

	if mqttClient != nil {
		mqttClient.Stop()
		processor.Stop()
	}

	logger.Info("Server exited properly")
}

func newPublisher(cfg *config.Config) events.Publisher {
	if !cfg.Redis.Enabled() {
		logger.Info("REDIS_ADDR not set, vitals events disabled")
		return events.NopPublisher{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	publisher, err := events.NewRedisPublisher(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Stream)
	if err != nil {
		logger.Warn("Redis unavailable, vitals events disabled", zap.Error(err))
		return events.NopPublisher{}
	}
	return publisher
}

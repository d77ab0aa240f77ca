package routes

import (
	"simhealth/internal/config"
	"simhealth/internal/delivery/http/handler"
	"simhealth/internal/logger"
	"simhealth/internal/middleware"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Dependencies are the use cases and probes the HTTP surface is built from.
type Dependencies struct {
	Devices handler.DeviceService
	Vitals  handler.VitalsService
	Health  handler.HealthChecker
	// Stop ends the rate limiter sweepers on shutdown.
	Stop <-chan struct{}
}

func SetupRoutes(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware in order: request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst, middleware.ByClientIP, deps.Stop))

	systemHandler := handler.NewSystemHandler(deps.Health, Version)
	deviceHandler := handler.NewDeviceHandler(deps.Devices)
	vitalsHandler := handler.NewVitalsHandler(deps.Vitals)

	router.GET("/", systemHandler.Root)
	router.GET("/health", systemHandler.Health)

	auth := middleware.AuthMiddleware(&cfg.JWT)

	esp32 := router.Group("/api/esp32")
	{
		// Device traffic is unauthenticated and throttled per device instead.
		devices := esp32.Group("")
		devices.Use(middleware.RateLimitMiddleware(cfg.RateLimit.DeviceRPS, cfg.RateLimit.DeviceBurst, middleware.ByDevice, deps.Stop))
		{
			deviceHandler.RegisterDeviceRoutes(devices)
			vitalsHandler.RegisterDeviceRoutes(devices)
		}

		protected := esp32.Group("")
		protected.Use(auth)
		{
			deviceHandler.RegisterProtectedRoutes(protected)
		}
	}

	vitalsGroup := router.Group("/api/vitals")
	vitalsGroup.Use(auth)
	{
		vitalsHandler.RegisterProtectedRoutes(vitalsGroup)
	}

	router.GET("/api/protected", auth, systemHandler.Protected)

	logger.Info("All routes initialized")
	return router
}

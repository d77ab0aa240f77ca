package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// quietPaths are logged at debug level only; monitors poll them constantly.
var quietPaths = map[string]bool{
	"/health": true,
}

// LoggingMiddleware logs HTTP requests and responses with structured logging.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.String("ip", c.ClientIP()),
			zap.Int("status_code", statusCode),
			zap.Duration("latency", latency),
		}
		if deviceID := c.Param("deviceId"); deviceID != "" {
			fields = append(fields, zap.String("device_id", deviceID))
		}
		if patientID := c.Param("patientId"); patientID != "" {
			fields = append(fields, zap.String("patient_id", patientID))
		}
		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			fields = append(fields, zap.String("error", errorMessage))
		}

		log := RequestLogger(c)
		switch {
		case statusCode >= 500:
			log.Error("Request completed with server error", fields...)
		case statusCode >= 400:
			log.Warn("Request completed with client error", fields...)
		case quietPaths[path]:
			log.Debug("Request completed successfully", fields...)
		default:
			log.Info("Request completed successfully", fields...)
		}
	}
}

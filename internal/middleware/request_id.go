package middleware

import (
	"simhealth/internal/logger"
	"simhealth/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
)

// RequestIDMiddleware propagates a caller-supplied X-Request-ID or assigns one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := utils.SanitizeIdentifier(c.GetHeader(RequestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID retrieves the request ID from the Gin context.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestLogger is the package logger scoped to this request and, once
// authenticated, to the caller.
func RequestLogger(c *gin.Context) *zap.Logger {
	log := logger.WithRequestID(GetRequestID(c))
	if uid := CallerUID(c); uid != "" {
		log = log.With(zap.String("uid", uid))
	}
	return log
}

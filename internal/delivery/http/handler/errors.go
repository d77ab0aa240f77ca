package handler

import (
	"net/http"
	"simhealth/internal/middleware"
	appErrors "simhealth/pkg/errors"
	"simhealth/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func statusFor(err error) int {
	switch appErrors.KindOf(err) {
	case appErrors.ErrInvalidRequest:
		return http.StatusBadRequest
	case appErrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case appErrors.ErrForbidden:
		return http.StatusForbidden
	case appErrors.ErrNotFound:
		return http.StatusNotFound
	case appErrors.ErrConflict:
		return http.StatusConflict
	case appErrors.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the client-safe message for err. Server-side
// failures are logged with the request id; their cause never reaches the body.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		middleware.RequestLogger(c).Error("Request failed",
			zap.Int("status", status),
			zap.String("device_id", c.Param("deviceId")),
			zap.String("patient_id", c.Param("patientId")),
			zap.Error(err),
		)
	}

	utils.ErrorResponse(c, status, appErrors.PublicMessage(err))
}

package handler

import (
	"context"
	"net/http"
	"simhealth/internal/middleware"
	"simhealth/internal/usecase/device"
	"simhealth/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DeviceService interface {
	Register(ctx context.Context, req *device.RegisterRequest) (*device.RegisterResponse, error)
	GetStatus(ctx context.Context, callerUID, deviceID string) (*device.StatusResponse, error)
}

type DeviceHandler struct {
	service DeviceService
}

func NewDeviceHandler(service DeviceService) *DeviceHandler {
	return &DeviceHandler{service: service}
}

// RegisterDeviceRoutes mounts the firmware-facing routes. They carry no auth.
func (h *DeviceHandler) RegisterDeviceRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
}

func (h *DeviceHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/status/:deviceId", h.GetStatus)
}

func (h *DeviceHandler) Register(c *gin.Context) {
	var req device.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ESP32 device registered successfully", gin.H{
		"deviceId":   resp.DeviceID,
		"patientId":  resp.PatientID,
		"deviceName": resp.DeviceName,
		"reassigned": resp.Reassigned,
	})
}

func (h *DeviceHandler) GetStatus(c *gin.Context) {
	status, err := h.service.GetStatus(c.Request.Context(), middleware.CallerUID(c), c.Param("deviceId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"device": status})
}

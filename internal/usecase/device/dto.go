package device

import (
	"time"

	domainDevice "simhealth/internal/domain/device"
)

type RegisterRequest struct {
	DeviceID   string  `json:"deviceId" validate:"required,max=128"`
	PatientID  string  `json:"patientId" validate:"required,max=128"`
	DeviceName *string `json:"deviceName" validate:"omitempty,max=100"`
	// ConfirmReassign must be set to move a device that already has readings
	// to another patient.
	ConfirmReassign bool `json:"confirmReassign"`
}

type RegisterResponse struct {
	DeviceID   string `json:"deviceId"`
	PatientID  string `json:"patientId"`
	DeviceName string `json:"deviceName"`
	Reassigned bool   `json:"reassigned"`
}

type StatusResponse struct {
	DeviceID     string    `json:"deviceId"`
	PatientID    string    `json:"patientId"`
	DeviceName   string    `json:"deviceName"`
	IsActive     bool      `json:"isActive"`
	BatteryLevel *int      `json:"batteryLevel"`
	LastSeen     time.Time `json:"lastSeen"`
	RegisteredAt time.Time `json:"registeredAt"`
	IsOnline     bool      `json:"isOnline"`
	// TimeSinceLastSeen is in whole seconds.
	TimeSinceLastSeen int64 `json:"timeSinceLastSeen"`
}

func ToStatusResponse(s *domainDevice.Status) *StatusResponse {
	return &StatusResponse{
		DeviceID:          s.Device.DeviceID,
		PatientID:         s.Device.PatientID,
		DeviceName:        s.Device.DeviceName,
		IsActive:          s.Device.IsActive,
		BatteryLevel:      s.Device.BatteryLevel,
		LastSeen:          s.Device.LastSeen,
		RegisteredAt:      s.Device.RegisteredAt,
		IsOnline:          s.IsOnline,
		TimeSinceLastSeen: int64(s.TimeSinceLastSeen / time.Second),
	}
}

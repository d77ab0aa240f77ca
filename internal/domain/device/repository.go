package device

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../../mocks/mock_device_repository.go -package=mocks -mock_names=Repository=MockDeviceRepository simhealth/internal/domain/device Repository

// Repository defines the persistence operations of the device registry.
type Repository interface {
	GetByID(ctx context.Context, deviceID string) (*Device, error)
	// Upsert creates or overwrites the device record keyed by DeviceID. On an
	// existing record LastSeen never moves backwards and BatteryLevel is kept.
	Upsert(ctx context.Context, device *Device) error
	// Touch records a successful ingestion. LastSeen never moves backwards and
	// BatteryLevel is only overwritten when batteryLevel is non-nil.
	Touch(ctx context.Context, deviceID string, seenAt time.Time, batteryLevel *int) error
}

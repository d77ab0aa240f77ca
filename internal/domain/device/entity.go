package device

import (
	"fmt"
	"time"
)

// DefaultLivenessWindow is used when no window is configured.
const DefaultLivenessWindow = 120 * time.Second

// Device represents one ESP32 monitoring unit bound to a patient.
type Device struct {
	DeviceID     string
	PatientID    string
	DeviceName   string
	IsActive     bool
	BatteryLevel *int
	LastSeen     time.Time
	RegisteredAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultName is the display name given to a device registered without one.
func DefaultName(deviceID string) string {
	return fmt.Sprintf("ESP32-%s", deviceID)
}

// TimeSinceLastSeen is never negative, even if the device clock ran ahead.
func (d *Device) TimeSinceLastSeen(now time.Time) time.Duration {
	if d.LastSeen.IsZero() {
		return now.Sub(time.Unix(0, 0))
	}
	since := now.Sub(d.LastSeen)
	if since < 0 {
		return 0
	}
	return since
}

// IsOnline checks whether the device reported within the liveness window.
func (d *Device) IsOnline(now time.Time, window time.Duration) bool {
	if d.LastSeen.IsZero() {
		return false
	}
	if window <= 0 {
		window = DefaultLivenessWindow
	}
	return d.TimeSinceLastSeen(now) < window
}

// Status is the derived liveness view of a device. It is never stored.
type Status struct {
	Device            *Device
	IsOnline          bool
	TimeSinceLastSeen time.Duration
}

func NewStatus(d *Device, now time.Time, window time.Duration) *Status {
	return &Status{
		Device:            d,
		IsOnline:          d.IsOnline(now, window),
		TimeSinceLastSeen: d.TimeSinceLastSeen(now),
	}
}

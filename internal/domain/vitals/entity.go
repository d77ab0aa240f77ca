package vitals

import (
	"time"

	"github.com/google/uuid"
)

// BloodPressure is present only with both components.
type BloodPressure struct {
	Systolic  float64
	Diastolic float64
}

// Measurements holds the independently nullable observations of one reading.
type Measurements struct {
	HeartRate       *float64
	Temperature     *float64
	SpO2            *float64
	BloodPressure   *BloodPressure
	RespiratoryRate *float64
	ECGData         []float64
	BatteryLevel    *int
}

// Reading is an immutable, timestamped observation from a device.
type Reading struct {
	ID        uuid.UUID
	DeviceID  string
	PatientID string
	// Sequence is the device-assigned idempotency key, if the firmware sends one.
	Sequence  *int64
	Timestamp time.Time
	Measurements
	CreatedAt time.Time
}

// Page is one slice of a patient's readings, newest first.
type Page struct {
	Readings   []*Reading
	NextCursor *uuid.UUID
}

func (p *Page) Count() int {
	return len(p.Readings)
}

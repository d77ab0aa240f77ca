package models

import (
	"time"
)

// DeviceModel represents the database model for ESP32 devices.
type DeviceModel struct {
	DeviceID     string    `gorm:"column:device_id;type:varchar(128);primaryKey"`
	PatientID    string    `gorm:"type:varchar(128);not null;index"`
	DeviceName   string    `gorm:"type:varchar(255);not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	BatteryLevel *int      `gorm:"type:integer"`
	LastSeen     time.Time `gorm:"type:timestamptz;not null"`
	RegisteredAt time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (DeviceModel) TableName() string {
	return "esp32_devices"
}

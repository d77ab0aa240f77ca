package models

import "time"

// PatientModel is owned by the registration flow; this service only reads it
// and maintains the device back-reference.
type PatientModel struct {
	ID            string  `gorm:"type:varchar(128);primaryKey"`
	FullName      string  `gorm:"type:varchar(255)"`
	ESP32DeviceID *string `gorm:"column:esp32_device_id;type:varchar(128)"`
	HasDevice     bool    `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PatientModel) TableName() string {
	return "patients"
}

// DoctorModel marks an identity provider uid as a doctor.
type DoctorModel struct {
	UID       string `gorm:"column:uid;type:varchar(128);primaryKey"`
	FullName  string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

func (DoctorModel) TableName() string {
	return "doctors"
}

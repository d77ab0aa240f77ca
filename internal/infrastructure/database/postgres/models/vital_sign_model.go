package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VitalSignModel represents one stored reading. Seq records insertion order and
// breaks ties between readings with the same RecordedAt.
type VitalSignModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Seq             int64          `gorm:"autoIncrement;not null;uniqueIndex:idx_vital_signs_seq;index:idx_vital_signs_patient_order,priority:3,sort:desc"`
	DeviceID        string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_vital_signs_device_sequence,priority:1;index"`
	PatientID       string         `gorm:"type:varchar(128);not null;index:idx_vital_signs_patient_order,priority:1"`
	Sequence        *int64         `gorm:"uniqueIndex:idx_vital_signs_device_sequence,priority:2"`
	RecordedAt      time.Time      `gorm:"type:timestamptz;not null;index:idx_vital_signs_patient_order,priority:2,sort:desc"`
	HeartRate       *float64       `gorm:"type:double precision"`
	Temperature     *float64       `gorm:"type:double precision"`
	SpO2            *float64       `gorm:"column:spo2;type:double precision"`
	BPSystolic      *float64       `gorm:"column:bp_systolic;type:double precision"`
	BPDiastolic     *float64       `gorm:"column:bp_diastolic;type:double precision"`
	RespiratoryRate *float64       `gorm:"type:double precision"`
	ECGData         datatypes.JSON `gorm:"column:ecg_data;type:jsonb"`
	BatteryLevel    *int           `gorm:"type:integer"`
	CreatedAt       time.Time      `gorm:"type:timestamptz;not null"`
}

func (VitalSignModel) TableName() string {
	return "vital_signs"
}

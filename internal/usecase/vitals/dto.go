package vitals

import (
	"time"

	domainVitals "simhealth/internal/domain/vitals"

	"github.com/google/uuid"
)

type BloodPressureInput struct {
	Systolic  *float64 `json:"systolic" validate:"required,finite"`
	Diastolic *float64 `json:"diastolic" validate:"required,finite"`
}

// IngestRequest is the payload an ESP32 posts over HTTP or publishes over MQTT.
type IngestRequest struct {
	DeviceID  string     `json:"deviceId" validate:"required,max=128"`
	Timestamp *time.Time `json:"timestamp"`
	// Sequence is assigned by the firmware and makes redelivery a no-op.
	Sequence        *int64              `json:"sequence" validate:"omitempty,min=0"`
	HeartRate       *float64            `json:"heartRate" validate:"omitempty,finite"`
	Temperature     *float64            `json:"temperature" validate:"omitempty,finite"`
	SpO2            *float64            `json:"spo2" validate:"omitempty,finite"`
	BloodPressure   *BloodPressureInput `json:"bloodPressure"`
	RespiratoryRate *float64            `json:"respiratoryRate" validate:"omitempty,finite"`
	ECGData         []float64           `json:"ecgData" validate:"omitempty,finite_samples"`
	BatteryLevel    *int                `json:"batteryLevel" validate:"omitempty,min=0,max=100"`
}

type IngestResponse struct {
	VitalsID   uuid.UUID   `json:"vitalsId"`
	Duplicate  bool        `json:"duplicate"`
	Assessment *Assessment `json:"assessment,omitempty"`
}

type ListQuery struct {
	PatientID  string
	Limit      string `form:"limit"`
	StartAfter string `form:"startAfter"`
}

type BloodPressureResponse struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

type ReadingResponse struct {
	ID              uuid.UUID              `json:"id"`
	DeviceID        string                 `json:"deviceId"`
	PatientID       string                 `json:"patientId"`
	Sequence        *int64                 `json:"sequence,omitempty"`
	Timestamp       time.Time              `json:"timestamp"`
	HeartRate       *float64               `json:"heartRate"`
	Temperature     *float64               `json:"temperature"`
	SpO2            *float64               `json:"spo2"`
	BloodPressure   *BloodPressureResponse `json:"bloodPressure"`
	RespiratoryRate *float64               `json:"respiratoryRate"`
	ECGData         []float64              `json:"ecgData"`
	BatteryLevel    *int                   `json:"batteryLevel"`
	CreatedAt       time.Time              `json:"createdAt"`
}

type ListResponse struct {
	PatientID  string             `json:"patientId"`
	Vitals     []*ReadingResponse `json:"vitals"`
	Count      int                `json:"count"`
	NextCursor *uuid.UUID         `json:"nextCursor"`
}

type LatestResponse struct {
	PatientID    string           `json:"patientId"`
	LatestVitals *ReadingResponse `json:"latestVitals"`
	Assessment   *Assessment      `json:"assessment"`
	Message      string           `json:"message,omitempty"`
}

func (r *IngestRequest) toReading(patientID string, timestamp, createdAt time.Time) *domainVitals.Reading {
	reading := &domainVitals.Reading{
		ID:        uuid.New(),
		DeviceID:  r.DeviceID,
		PatientID: patientID,
		Sequence:  r.Sequence,
		Timestamp: timestamp,
		Measurements: domainVitals.Measurements{
			HeartRate:       r.HeartRate,
			Temperature:     r.Temperature,
			SpO2:            r.SpO2,
			RespiratoryRate: r.RespiratoryRate,
			ECGData:         r.ECGData,
			BatteryLevel:    r.BatteryLevel,
		},
		CreatedAt: createdAt,
	}
	if r.BloodPressure != nil {
		reading.BloodPressure = &domainVitals.BloodPressure{
			Systolic:  *r.BloodPressure.Systolic,
			Diastolic: *r.BloodPressure.Diastolic,
		}
	}
	return reading
}

func ToReadingResponse(r *domainVitals.Reading) *ReadingResponse {
	resp := &ReadingResponse{
		ID:              r.ID,
		DeviceID:        r.DeviceID,
		PatientID:       r.PatientID,
		Sequence:        r.Sequence,
		Timestamp:       r.Timestamp,
		HeartRate:       r.HeartRate,
		Temperature:     r.Temperature,
		SpO2:            r.SpO2,
		RespiratoryRate: r.RespiratoryRate,
		ECGData:         r.ECGData,
		BatteryLevel:    r.BatteryLevel,
		CreatedAt:       r.CreatedAt,
	}
	if r.BloodPressure != nil {
		resp.BloodPressure = &BloodPressureResponse{
			Systolic:  r.BloodPressure.Systolic,
			Diastolic: r.BloodPressure.Diastolic,
		}
	}
	return resp
}

func ToListResponse(patientID string, page *domainVitals.Page) *ListResponse {
	items := make([]*ReadingResponse, len(page.Readings))
	for i, r := range page.Readings {
		items[i] = ToReadingResponse(r)
	}
	return &ListResponse{
		PatientID:  patientID,
		Vitals:     items,
		Count:      page.Count(),
		NextCursor: page.NextCursor,
	}
}

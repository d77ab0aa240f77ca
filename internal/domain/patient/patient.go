package patient

import (
	"context"
	"errors"
)

var ErrPatientNotFound = errors.New("patient not found")

// Patient is the slice of the patient record this service reads and annotates.
type Patient struct {
	ID            string
	FullName      string
	ESP32DeviceID *string
	HasDevice     bool
}

//go:generate mockgen -destination=../../mocks/mock_patient_repository.go -package=mocks -mock_names=Repository=MockPatientRepository simhealth/internal/domain/patient Repository

type Repository interface {
	Exists(ctx context.Context, patientID string) (bool, error)
	// AttachDevice writes the denormalized device back-reference.
	AttachDevice(ctx context.Context, patientID, deviceID string) error
}

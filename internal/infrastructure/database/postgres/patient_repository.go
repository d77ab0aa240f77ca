package postgres

import (
	"context"
	"fmt"
	domainPatient "simhealth/internal/domain/patient"
	"simhealth/internal/infrastructure/database/postgres/models"
)

type PatientRepository struct {
	db *DB
}

func NewPatientRepository(db *DB) domainPatient.Repository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Exists(ctx context.Context, patientID string) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.PatientModel{}).
		Where("id = ?", patientID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check patient: %w", err)
	}
	return count > 0, nil
}

func (r *PatientRepository) AttachDevice(ctx context.Context, patientID, deviceID string) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PatientModel{}).
		Where("id = ?", patientID).
		Updates(map[string]interface{}{
			"esp32_device_id": deviceID,
			"has_device":      true,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to attach device to patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainPatient.ErrPatientNotFound
	}
	return nil
}

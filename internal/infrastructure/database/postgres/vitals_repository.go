package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	domainVitals "simhealth/internal/domain/vitals"
	"simhealth/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const vitalsOrder = "recorded_at DESC, seq DESC"

// VitalsRepository implements domain.Vitals.Repository on the vital_signs table.
type VitalsRepository struct {
	db *DB
}

func NewVitalsRepository(db *DB) domainVitals.Repository {
	return &VitalsRepository{db: db}
}

func (r *VitalsRepository) Create(ctx context.Context, reading *domainVitals.Reading) (*domainVitals.Reading, error) {
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}

	dbModel, err := toVitalSignModel(reading)
	if err != nil {
		return nil, err
	}

	result := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}, {Name: "sequence"}},
			DoNothing: true,
		}).
		Create(dbModel)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to insert vital signs: %w", result.Error)
	}

	if result.RowsAffected == 0 && reading.Sequence != nil {
		var existing models.VitalSignModel
		err := r.db.DB.WithContext(ctx).
			Where("device_id = ? AND sequence = ?", reading.DeviceID, *reading.Sequence).
			Take(&existing).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load duplicate reading: %w", err)
		}
		stored, err := toReadingEntity(&existing)
		if err != nil {
			return nil, err
		}
		return stored, domainVitals.ErrDuplicateReading
	}

	return reading, nil
}

func (r *VitalsRepository) List(ctx context.Context, patientID string, limit int, cursor *uuid.UUID) ([]*domainVitals.Reading, error) {
	query := r.db.DB.WithContext(ctx).
		Model(&models.VitalSignModel{}).
		Where("patient_id = ?", patientID)

	if cursor != nil {
		var anchor models.VitalSignModel
		err := r.db.DB.WithContext(ctx).
			Select("id", "patient_id", "recorded_at", "seq").
			Where("id = ?", *cursor).
			Take(&anchor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainVitals.ErrInvalidCursor
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cursor: %w", err)
		}
		if anchor.PatientID != patientID {
			return nil, domainVitals.ErrInvalidCursor
		}

		query = query.Where("(recorded_at < ? OR (recorded_at = ? AND seq < ?))",
			anchor.RecordedAt, anchor.RecordedAt, anchor.Seq)
	}

	var dbModels []models.VitalSignModel
	if err := query.Order(vitalsOrder).Limit(limit).Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list vital signs: %w", err)
	}

	readings := make([]*domainVitals.Reading, 0, len(dbModels))
	for i := range dbModels {
		reading, err := toReadingEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	return readings, nil
}

func (r *VitalsRepository) Latest(ctx context.Context, patientID string) (*domainVitals.Reading, error) {
	var dbModels []models.VitalSignModel
	err := r.db.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order(vitalsOrder).
		Limit(1).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get latest vital signs: %w", err)
	}
	if len(dbModels) == 0 {
		return nil, domainVitals.ErrReadingNotFound
	}

	return toReadingEntity(&dbModels[0])
}

func (r *VitalsRepository) CountByDevice(ctx context.Context, deviceID string) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.VitalSignModel{}).
		Where("device_id = ?", deviceID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count vital signs: %w", err)
	}
	return count, nil
}

func toVitalSignModel(r *domainVitals.Reading) (*models.VitalSignModel, error) {
	m := &models.VitalSignModel{
		ID:              r.ID,
		DeviceID:        r.DeviceID,
		PatientID:       r.PatientID,
		Sequence:        r.Sequence,
		RecordedAt:      r.Timestamp,
		HeartRate:       r.HeartRate,
		Temperature:     r.Temperature,
		SpO2:            r.SpO2,
		RespiratoryRate: r.RespiratoryRate,
		BatteryLevel:    r.BatteryLevel,
		CreatedAt:       r.CreatedAt,
	}
	if r.BloodPressure != nil {
		m.BPSystolic = &r.BloodPressure.Systolic
		m.BPDiastolic = &r.BloodPressure.Diastolic
	}
	if r.ECGData != nil {
		raw, err := json.Marshal(r.ECGData)
		if err != nil {
			return nil, fmt.Errorf("failed to encode ecg data: %w", err)
		}
		m.ECGData = datatypes.JSON(raw)
	}
	return m, nil
}

func toReadingEntity(m *models.VitalSignModel) (*domainVitals.Reading, error) {
	r := &domainVitals.Reading{
		ID:        m.ID,
		DeviceID:  m.DeviceID,
		PatientID: m.PatientID,
		Sequence:  m.Sequence,
		Timestamp: m.RecordedAt,
		Measurements: domainVitals.Measurements{
			HeartRate:       m.HeartRate,
			Temperature:     m.Temperature,
			SpO2:            m.SpO2,
			RespiratoryRate: m.RespiratoryRate,
			BatteryLevel:    m.BatteryLevel,
		},
		CreatedAt: m.CreatedAt,
	}
	if m.BPSystolic != nil && m.BPDiastolic != nil {
		r.BloodPressure = &domainVitals.BloodPressure{
			Systolic:  *m.BPSystolic,
			Diastolic: *m.BPDiastolic,
		}
	}
	if len(m.ECGData) > 0 && string(m.ECGData) != "null" {
		if err := json.Unmarshal(m.ECGData, &r.ECGData); err != nil {
			return nil, fmt.Errorf("failed to decode ecg data for reading %s: %w", m.ID, err)
		}
	}
	return r, nil
}

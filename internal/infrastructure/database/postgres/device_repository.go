package postgres

import (
	"context"
	"errors"
	"fmt"
	domainDevice "simhealth/internal/domain/device"
	"simhealth/internal/infrastructure/database/postgres/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceRepository implements domain.Device.Repository interface
type DeviceRepository struct {
	db *DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *DB) domainDevice.Repository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) GetByID(ctx context.Context, deviceID string) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Take(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) Upsert(ctx context.Context, d *domainDevice.Device) error {
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	// battery_level is owned by Touch once the row exists.
	updates := clause.AssignmentColumns([]string{
		"patient_id",
		"device_name",
		"is_active",
		"registered_at",
		"updated_at",
	})
	updates = append(updates, clause.Assignment{
		Column: clause.Column{Name: "last_seen"},
		Value:  gorm.Expr("GREATEST(esp32_devices.last_seen, EXCLUDED.last_seen)"),
	})

	dbModel := toDeviceModel(d)
	err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}},
			DoUpdates: updates,
		}).
		Create(dbModel).Error
	if err != nil {
		return fmt.Errorf("failed to upsert device: %w", err)
	}

	return nil
}

func (r *DeviceRepository) Touch(ctx context.Context, deviceID string, seenAt time.Time, batteryLevel *int) error {
	updates := map[string]interface{}{
		"last_seen":  gorm.Expr("GREATEST(last_seen, ?)", seenAt),
		"updated_at": seenAt,
	}
	if batteryLevel != nil {
		updates["battery_level"] = *batteryLevel
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Where("device_id = ?", deviceID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update device last seen: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDevice.ErrDeviceNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toDeviceModel(d *domainDevice.Device) *models.DeviceModel {
	return &models.DeviceModel{
		DeviceID:     d.DeviceID,
		PatientID:    d.PatientID,
		DeviceName:   d.DeviceName,
		IsActive:     d.IsActive,
		BatteryLevel: d.BatteryLevel,
		LastSeen:     d.LastSeen,
		RegisteredAt: d.RegisteredAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toDeviceEntity(m *models.DeviceModel) *domainDevice.Device {
	return &domainDevice.Device{
		DeviceID:     m.DeviceID,
		PatientID:    m.PatientID,
		DeviceName:   m.DeviceName,
		IsActive:     m.IsActive,
		BatteryLevel: m.BatteryLevel,
		LastSeen:     m.LastSeen,
		RegisteredAt: m.RegisteredAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

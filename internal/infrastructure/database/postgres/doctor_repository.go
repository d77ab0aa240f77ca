package postgres

import (
	"context"
	"fmt"
	domainDoctor "simhealth/internal/domain/doctor"
	"simhealth/internal/infrastructure/database/postgres/models"
)

type DoctorRepository struct {
	db *DB
}

func NewDoctorRepository(db *DB) domainDoctor.Repository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) IsDoctor(ctx context.Context, uid string) (bool, error) {
	if uid == "" {
		return false, nil
	}

	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.DoctorModel{}).
		Where("uid = ?", uid).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check doctor: %w", err)
	}
	return count > 0, nil
}

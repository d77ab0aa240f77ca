package vitals

import (
	"context"
	"errors"
	domainVitals "simhealth/internal/domain/vitals"
	"simhealth/internal/logger"
	appErrors "simhealth/pkg/errors"
	"simhealth/pkg/utils"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListVitals returns a page of the patient's readings, newest first. Ties on
// timestamp are broken by insertion order, later first.
func (s *Service) ListVitals(ctx context.Context, callerUID string, q ListQuery) (*ListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.requireDoctor(ctx, callerUID); err != nil {
		return nil, err
	}

	patientID := utils.SanitizeIdentifier(q.PatientID)
	if patientID == "" {
		return nil, appErrors.InvalidRequest("Patient ID is required", nil)
	}

	limit, err := s.parseLimit(q.Limit)
	if err != nil {
		return nil, err
	}

	var cursor *uuid.UUID
	if raw := strings.TrimSpace(q.StartAfter); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, appErrors.InvalidRequest("Invalid startAfter cursor", err)
		}
		cursor = &id
	}

	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	readings, err := s.vitalsRepo.List(ctx, patientID, limit, cursor)
	if errors.Is(err, domainVitals.ErrInvalidCursor) {
		return nil, appErrors.InvalidRequest("Invalid startAfter cursor", err)
	}
	if err != nil {
		logger.Error("Failed to list vital signs", zap.String("patient_id", patientID), zap.Error(err))
		return nil, appErrors.FromStore("Failed to retrieve vital signs", err)
	}

	page := &domainVitals.Page{Readings: readings}
	if len(readings) == limit {
		last := readings[len(readings)-1].ID
		page.NextCursor = &last
	}

	return ToListResponse(patientID, page), nil
}

// GetLatest returns the first reading of the ListVitals ordering. A patient
// without readings is not an error.
func (s *Service) GetLatest(ctx context.Context, callerUID, patientID string) (*LatestResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.requireDoctor(ctx, callerUID); err != nil {
		return nil, err
	}

	patientID = utils.SanitizeIdentifier(patientID)
	if patientID == "" {
		return nil, appErrors.InvalidRequest("Patient ID is required", nil)
	}

	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	latest, err := s.vitalsRepo.Latest(ctx, patientID)
	if errors.Is(err, domainVitals.ErrReadingNotFound) {
		return &LatestResponse{
			PatientID: patientID,
			Message:   "No vital signs data available",
		}, nil
	}
	if err != nil {
		logger.Error("Failed to get latest vital signs", zap.String("patient_id", patientID), zap.Error(err))
		return nil, appErrors.FromStore("Failed to retrieve latest vital signs", err)
	}

	return &LatestResponse{
		PatientID:    patientID,
		LatestVitals: ToReadingResponse(latest),
		Assessment:   Assess(&latest.Measurements),
	}, nil
}

func (s *Service) parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.InvalidRequest("limit must be an integer", err)
	}
	if limit < 1 {
		return 1, nil
	}
	if limit > s.maxLimit {
		return s.maxLimit, nil
	}
	return limit, nil
}

package vitals

import (
	"context"
	"errors"
	"fmt"
	domainDevice "simhealth/internal/domain/device"
	domainVitals "simhealth/internal/domain/vitals"
	"simhealth/internal/events"
	"simhealth/internal/logger"
	appErrors "simhealth/pkg/errors"
	"simhealth/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// Ingest stores one reading for a registered device and refreshes its liveness.
// The reading is durable before Ingest returns; a failed liveness update is
// logged and does not fail the call.
func (s *Service) Ingest(ctx context.Context, req *IngestRequest) (*IngestResponse, error) {
	req.DeviceID = utils.SanitizeIdentifier(req.DeviceID)
	if req.DeviceID == "" {
		return nil, appErrors.InvalidRequest("Device ID is required", nil)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.InvalidRequest("Invalid vital signs payload", err)
	}
	if len(req.ECGData) > s.maxECGSamples {
		return nil, appErrors.InvalidRequest(
			fmt.Sprintf("ecgData exceeds %d samples", s.maxECGSamples), nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	device, err := s.deviceRepo.GetByID(ctx, req.DeviceID)
	if errors.Is(err, domainDevice.ErrDeviceNotFound) {
		return nil, appErrors.NotFound("ESP32 device not registered")
	}
	if err != nil {
		return nil, appErrors.FromStore("Failed to store vital signs data", err)
	}

	log := logger.ForDevice(device.DeviceID, device.PatientID)

	now := s.now().Truncate(time.Microsecond)
	timestamp := now
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		timestamp = req.Timestamp.UTC().Truncate(time.Microsecond)
	}

	stored, err := s.vitalsRepo.Create(ctx, req.toReading(device.PatientID, timestamp, now))
	duplicate := errors.Is(err, domainVitals.ErrDuplicateReading)
	if err != nil && !duplicate {
		log.Error("Failed to store vital signs", zap.Error(err))
		return nil, appErrors.FromStore("Failed to store vital signs data", err)
	}

	if err := s.deviceRepo.Touch(ctx, device.DeviceID, now, req.BatteryLevel); err != nil {
		log.Warn("Failed to update device liveness", zap.Error(err))
	}

	if duplicate {
		log.Info("Duplicate reading ignored",
			zap.Int64p("sequence", req.Sequence),
			zap.String("vitals_id", stored.ID.String()),
		)
		return &IngestResponse{VitalsID: stored.ID, Duplicate: true}, nil
	}

	assessment := Assess(&stored.Measurements)
	s.publishIngested(ctx, stored, assessment)

	log.Debug("Vital signs stored",
		zap.String("vitals_id", stored.ID.String()),
		zap.String("assessment", string(assessment.Overall)),
		zap.String("event", "vitals_ingested"),
	)

	return &IngestResponse{VitalsID: stored.ID, Assessment: assessment}, nil
}

// publishIngested is best-effort: failures are logged only.
func (s *Service) publishIngested(ctx context.Context, r *domainVitals.Reading, a *Assessment) {
	base := events.Event{
		DeviceID:   r.DeviceID,
		PatientID:  r.PatientID,
		ReadingID:  r.ID.String(),
		OccurredAt: r.CreatedAt,
	}

	ingested := base
	ingested.Type = events.TypeVitalsIngested
	ingested.Payload = ToReadingResponse(r)
	if err := s.publisher.Publish(ctx, ingested); err != nil {
		logger.Warn("Failed to publish event", zap.String("type", ingested.Type), zap.Error(err))
	}

	if !a.IsCritical() {
		return
	}

	alert := base
	alert.Type = events.TypeVitalsAlert
	alert.Payload = a
	if err := s.publisher.Publish(ctx, alert); err != nil {
		logger.Warn("Failed to publish event", zap.String("type", alert.Type), zap.Error(err))
	}

	logger.ForDevice(r.DeviceID, r.PatientID).Warn("Critical vital signs",
		zap.String("vitals_id", r.ID.String()),
		zap.Int("alerts", len(a.Alerts)),
	)
}

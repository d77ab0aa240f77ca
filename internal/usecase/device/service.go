package device

import (
	"context"
	"errors"
	domainDevice "simhealth/internal/domain/device"
	domainDoctor "simhealth/internal/domain/doctor"
	domainPatient "simhealth/internal/domain/patient"
	domainVitals "simhealth/internal/domain/vitals"
	"simhealth/internal/logger"
	appErrors "simhealth/pkg/errors"
	"simhealth/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const defaultPersistenceTimeout = 5 * time.Second

type Options struct {
	LivenessWindow     time.Duration
	PersistenceTimeout time.Duration
}

// Service implements device registration and status use cases
type Service struct {
	deviceRepo  domainDevice.Repository
	vitalsRepo  domainVitals.Repository
	patientRepo domainPatient.Repository
	doctorRepo  domainDoctor.Repository

	livenessWindow time.Duration
	timeout        time.Duration
	now            func() time.Time
}

// NewService creates a new device service
func NewService(
	deviceRepo domainDevice.Repository,
	vitalsRepo domainVitals.Repository,
	patientRepo domainPatient.Repository,
	doctorRepo domainDoctor.Repository,
	opts Options,
) *Service {
	if opts.LivenessWindow <= 0 {
		opts.LivenessWindow = domainDevice.DefaultLivenessWindow
	}
	if opts.PersistenceTimeout <= 0 {
		opts.PersistenceTimeout = defaultPersistenceTimeout
	}
	return &Service{
		deviceRepo:     deviceRepo,
		vitalsRepo:     vitalsRepo,
		patientRepo:    patientRepo,
		doctorRepo:     doctorRepo,
		livenessWindow: opts.LivenessWindow,
		timeout:        opts.PersistenceTimeout,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) LivenessWindow() time.Duration {
	return s.livenessWindow
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	req.DeviceID = utils.SanitizeIdentifier(req.DeviceID)
	req.PatientID = utils.SanitizeIdentifier(req.PatientID)
	if req.DeviceName != nil {
		name := utils.SanitizeString(*req.DeviceName)
		req.DeviceName = &name
	}

	if req.DeviceID == "" || req.PatientID == "" {
		return nil, appErrors.InvalidRequest("Device ID and Patient ID are required", nil)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.InvalidRequest("Invalid registration request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	exists, err := s.patientRepo.Exists(ctx, req.PatientID)
	if err != nil {
		return nil, appErrors.FromStore("Failed to register ESP32 device", err)
	}
	if !exists {
		return nil, appErrors.NotFound("Patient not found")
	}

	existing, err := s.deviceRepo.GetByID(ctx, req.DeviceID)
	if err != nil && !errors.Is(err, domainDevice.ErrDeviceNotFound) {
		return nil, appErrors.FromStore("Failed to register ESP32 device", err)
	}

	reassigned := false
	if existing != nil && existing.PatientID != req.PatientID {
		if err := s.checkReassignment(ctx, existing, req); err != nil {
			return nil, err
		}
		reassigned = true
	}

	now := s.now()
	device := &domainDevice.Device{
		DeviceID:     req.DeviceID,
		PatientID:    req.PatientID,
		DeviceName:   domainDevice.DefaultName(req.DeviceID),
		IsActive:     true,
		LastSeen:     now,
		RegisteredAt: now,
	}
	if req.DeviceName != nil && *req.DeviceName != "" {
		device.DeviceName = *req.DeviceName
	}
	// BatteryLevel stays nil: the store keeps the stored level of an existing
	// device, which Touch may have refreshed since GetByID.
	if existing != nil {
		device.CreatedAt = existing.CreatedAt
	}

	if err := s.deviceRepo.Upsert(ctx, device); err != nil {
		logger.ForDevice(req.DeviceID, req.PatientID).Error("Failed to store device", zap.Error(err))
		return nil, appErrors.FromStore("Failed to register ESP32 device", err)
	}

	if err := s.patientRepo.AttachDevice(ctx, req.PatientID, req.DeviceID); err != nil {
		logger.ForDevice(req.DeviceID, req.PatientID).Warn("Failed to annotate patient with device",
			zap.Error(err),
		)
	}

	if reassigned {
		logger.ForDevice(req.DeviceID, req.PatientID).Warn("Device ownership changed",
			zap.String("previous_patient_id", existing.PatientID),
			zap.String("event", "device_reassigned"),
		)
	}

	logger.ForDevice(device.DeviceID, device.PatientID).Info("ESP32 device registered",
		zap.String("device_name", device.DeviceName),
		zap.String("event", "device_registered"),
	)

	return &RegisterResponse{
		DeviceID:   device.DeviceID,
		PatientID:  device.PatientID,
		DeviceName: device.DeviceName,
		Reassigned: reassigned,
	}, nil
}

func (s *Service) GetStatus(ctx context.Context, callerUID, deviceID string) (*StatusResponse, error) {
	deviceID = utils.SanitizeIdentifier(deviceID)
	if deviceID == "" {
		return nil, appErrors.InvalidRequest("Device ID is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	isDoctor, err := s.doctorRepo.IsDoctor(ctx, callerUID)
	if err != nil {
		return nil, appErrors.FromStore("Failed to get device status", err)
	}

	device, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, domainDevice.ErrDeviceNotFound) {
			if !isDoctor {
				return nil, appErrors.Forbidden("Access to this device is not allowed")
			}
			return nil, appErrors.NotFound("ESP32 device not found")
		}
		return nil, appErrors.FromStore("Failed to get device status", err)
	}

	if err := CanViewDevice(callerUID, isDoctor, device); err != nil {
		return nil, err
	}

	return ToStatusResponse(domainDevice.NewStatus(device, s.now(), s.livenessWindow)), nil
}

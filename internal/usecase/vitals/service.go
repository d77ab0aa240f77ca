package vitals

import (
	"context"
	domainDevice "simhealth/internal/domain/device"
	domainDoctor "simhealth/internal/domain/doctor"
	domainPatient "simhealth/internal/domain/patient"
	domainVitals "simhealth/internal/domain/vitals"
	"simhealth/internal/events"
	"simhealth/internal/logger"
	appErrors "simhealth/pkg/errors"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultLimit         = 100
	MaxLimit             = 1000
	DefaultMaxECGSamples = 5000

	defaultPersistenceTimeout = 5 * time.Second
)

type Options struct {
	DefaultLimit       int
	MaxLimit           int
	MaxECGSamples      int
	PersistenceTimeout time.Duration
}

// Service implements vitals ingestion and query use cases
type Service struct {
	deviceRepo  domainDevice.Repository
	vitalsRepo  domainVitals.Repository
	patientRepo domainPatient.Repository
	doctorRepo  domainDoctor.Repository
	publisher   events.Publisher

	defaultLimit  int
	maxLimit      int
	maxECGSamples int
	timeout       time.Duration
	now           func() time.Time
}

// NewService creates a new vitals service. A nil publisher drops events.
func NewService(
	deviceRepo domainDevice.Repository,
	vitalsRepo domainVitals.Repository,
	patientRepo domainPatient.Repository,
	doctorRepo domainDoctor.Repository,
	publisher events.Publisher,
	opts Options,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = MaxLimit
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	if opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}
	if opts.MaxECGSamples <= 0 {
		opts.MaxECGSamples = DefaultMaxECGSamples
	}
	if opts.PersistenceTimeout <= 0 {
		opts.PersistenceTimeout = defaultPersistenceTimeout
	}

	return &Service{
		deviceRepo:    deviceRepo,
		vitalsRepo:    vitalsRepo,
		patientRepo:   patientRepo,
		doctorRepo:    doctorRepo,
		publisher:     publisher,
		defaultLimit:  opts.DefaultLimit,
		maxLimit:      opts.MaxLimit,
		maxECGSamples: opts.MaxECGSamples,
		timeout:       opts.PersistenceTimeout,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// requireDoctor fails with Forbidden unless callerUID is a registered doctor.
func (s *Service) requireDoctor(ctx context.Context, callerUID string) error {
	if callerUID == "" {
		return appErrors.ErrMissingToken
	}
	ok, err := s.doctorRepo.IsDoctor(ctx, callerUID)
	if err != nil {
		return appErrors.FromStore("Failed to verify doctor access", err)
	}
	if !ok {
		logger.Debug("Doctor access denied", zap.String("uid", callerUID))
		return appErrors.ErrDoctorOnly
	}
	return nil
}

func (s *Service) requirePatient(ctx context.Context, patientID string) error {
	exists, err := s.patientRepo.Exists(ctx, patientID)
	if err != nil {
		return appErrors.FromStore("Failed to look up patient", err)
	}
	if !exists {
		return appErrors.NotFound("Patient not found")
	}
	return nil
}

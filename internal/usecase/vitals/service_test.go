package vitals

import (
	"context"
	"sync"
	"testing"
	"time"

	"simhealth/internal/events"
	"simhealth/internal/mocks"

	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	svc       *Service
	devices   *mocks.MockDeviceRepository
	vitals    *mocks.MockVitalsRepository
	patients  *mocks.MockPatientRepository
	doctors   *mocks.MockDoctorRepository
	publisher *recordingPublisher
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		devices:   mocks.NewMockDeviceRepository(ctrl),
		vitals:    mocks.NewMockVitalsRepository(ctrl),
		patients:  mocks.NewMockPatientRepository(ctrl),
		doctors:   mocks.NewMockDoctorRepository(ctrl),
		publisher: &recordingPublisher{},
		now:       time.Date(2026, 5, 4, 12, 0, 0, 123456789, time.UTC),
	}
	f.svc = NewService(f.devices, f.vitals, f.patients, f.doctors, f.publisher, Options{
		DefaultLimit:       100,
		MaxLimit:           1000,
		MaxECGSamples:      8,
		PersistenceTimeout: time.Second,
	})
	f.svc.now = func() time.Time { return f.now }
	return f
}

func float(v float64) *float64 { return &v }

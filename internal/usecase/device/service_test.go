package device

import (
	"context"
	"errors"
	"testing"
	"time"

	domainDevice "simhealth/internal/domain/device"
	"simhealth/internal/mocks"
	appErrors "simhealth/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      *Service
	devices  *mocks.MockDeviceRepository
	vitals   *mocks.MockVitalsRepository
	patients *mocks.MockPatientRepository
	doctors  *mocks.MockDoctorRepository
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		devices:  mocks.NewMockDeviceRepository(ctrl),
		vitals:   mocks.NewMockVitalsRepository(ctrl),
		patients: mocks.NewMockPatientRepository(ctrl),
		doctors:  mocks.NewMockDoctorRepository(ctrl),
		now:      time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.devices, f.vitals, f.patients, f.doctors, Options{
		LivenessWindow:     2 * time.Minute,
		PersistenceTimeout: time.Second,
	})
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestRegister_NewDevice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.patients.EXPECT().Exists(gomock.Any(), "p1").Return(true, nil)
	f.devices.EXPECT().GetByID(gomock.Any(), "esp32-001").Return(nil, domainDevice.ErrDeviceNotFound)
	f.devices.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *domainDevice.Device) error {
			assert.Equal(t, "ESP32-esp32-001", d.DeviceName)
			assert.True(t, d.IsActive)
			assert.Nil(t, d.BatteryLevel)
			assert.Equal(t, f.now, d.LastSeen)
			return nil
		})
	f.patients.EXPECT().AttachDevice(gomock.Any(), "p1", "esp32-001").Return(nil)

	resp, err := f.svc.Register(ctx, &RegisterRequest{DeviceID: " esp32-001 ", PatientID: "p1"})

	require.NoError(t, err)
	assert.Equal(t, "esp32-001", resp.DeviceID)
	assert.Equal(t, "p1", resp.PatientID)
	assert.False(t, resp.Reassigned)
}

func TestRegister_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), &RegisterRequest{DeviceID: "esp32-001"})

	assert.ErrorIs(t, err, appErrors.ErrInvalidRequest)
	assert.Equal(t, "Device ID and Patient ID are required", appErrors.PublicMessage(err))
}

func TestRegister_PatientNotFound(t *testing.T) {
	f := newFixture(t)

	f.patients.EXPECT().Exists(gomock.Any(), "ghost").Return(false, nil)

	_, err := f.svc.Register(context.Background(), &RegisterRequest{DeviceID: "esp32-001", PatientID: "ghost"})

	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestRegister_ReRegistrationDoesNotWriteBattery(t *testing.T) {
	f := newFixture(t)
	battery := 64
	name := "Bedside monitor"

	f.patients.EXPECT().Exists(gomock.Any(), "p1").Return(true, nil)
	f.devices.EXPECT().GetByID(gomock.Any(), "esp32-001").Return(&domainDevice.Device{
		DeviceID:     "esp32-001",
		PatientID:    "p1",
		BatteryLevel: &battery,
	}, nil)
	f.devices.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *domainDevice.Device) error {
			assert.Nil(t, d.BatteryLevel, "stored battery level must not be overwritten with a stale read")
			assert.Equal(t, "Bedside monitor", d.DeviceName)
			return nil
		})
	f.patients.EXPECT().AttachDevice(gomock.Any(), "p1", "esp32-001").Return(nil)

	_, err := f.svc.Register(context.Background(), &RegisterRequest{DeviceID: "esp32-001", PatientID: "p1", DeviceName: &name})

	require.NoError(t, err)
}

func TestRegister_ReassignmentWithReadingsNeedsConfirmation(t *testing.T) {
	f := newFixture(t)

	f.patients.EXPECT().Exists(gomock.Any(), "p2").Return(true, nil)
	f.devices.EXPECT().GetByID(gomock.Any(), "esp32-001").Return(&domainDevice.Device{DeviceID: "esp32-001", PatientID: "p1"}, nil)
	f.vitals.EXPECT().CountByDevice(gomock.Any(), "esp32-001").Return(int64(3), nil)

	_, err := f.svc.Register(context.Background(), &RegisterRequest{DeviceID: "esp32-001", PatientID: "p2"})

	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestRegister_ConfirmedReassignment(t *testing.T) {
	f := newFixture(t)

	f.patients.EXPECT().Exists(gomock.Any(), "p2").Return(true, nil)
	f.devices.EXPECT().GetByID(gomock.Any(), "esp32-001").Return(&domainDevice.Device{DeviceID: "esp32-001", PatientID: "p1"}, nil)
	f.devices.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	f.patients.EXPECT().AttachDevice(gomock.Any(), "p2", "esp32-001").Return(errors.New("patients table locked"))

	resp, err := f.svc.Register(context.Background(), &RegisterRequest{
		DeviceID:        "esp32-001",
		PatientID:       "p2",
		ConfirmReassign: true,
	})

	require.NoError(t, err, "back-reference failures do not fail registration")
	assert.True(t, resp.Reassigned)
}

func TestRegister_StoreTimeoutIsUnavailable(t *testing.T) {
	f := newFixture(t)

	f.patients.EXPECT().Exists(gomock.Any(), "p1").Return(false, context.DeadlineExceeded)

	_, err := f.svc.Register(context.Background(), &RegisterRequest{DeviceID: "esp32-001", PatientID: "p1"})

	assert.ErrorIs(t, err, appErrors.ErrUnavailable)
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name       string
		caller     string
		isDoctor   bool
		lastSeen   time.Duration
		wantOnline bool
		wantErr    error
	}{
		{name: "doctor sees online device", caller: "doc", isDoctor: true, lastSeen: 30 * time.Second, wantOnline: true},
		{name: "owner sees offline device", caller: "p1", lastSeen: 5 * time.Minute, wantOnline: false},
		{name: "other patient is forbidden", caller: "p9", lastSeen: time.Second, wantErr: appErrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.doctors.EXPECT().IsDoctor(gomock.Any(), tt.caller).Return(tt.isDoctor, nil)
			f.devices.EXPECT().GetByID(gomock.Any(), "esp32-001").Return(&domainDevice.Device{
				DeviceID:  "esp32-001",
				PatientID: "p1",
				LastSeen:  f.now.Add(-tt.lastSeen),
			}, nil)

			status, err := f.svc.GetStatus(context.Background(), tt.caller, "esp32-001")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOnline, status.IsOnline)
			assert.Equal(t, int64(tt.lastSeen/time.Second), status.TimeSinceLastSeen)
		})
	}
}

func TestGetStatus_UnknownDevice(t *testing.T) {
	f := newFixture(t)
	f.doctors.EXPECT().IsDoctor(gomock.Any(), "doc").Return(true, nil)
	f.devices.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, domainDevice.ErrDeviceNotFound)

	_, err := f.svc.GetStatus(context.Background(), "doc", "nope")

	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "ESP32 device not found", appErrors.PublicMessage(err))
}

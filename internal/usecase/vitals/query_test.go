package vitals

import (
	"context"
	"testing"
	"time"

	domainVitals "simhealth/internal/domain/vitals"
	appErrors "simhealth/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func readingsAt(n int, start time.Time) []*domainVitals.Reading {
	out := make([]*domainVitals.Reading, n)
	for i := range out {
		out[i] = &domainVitals.Reading{
			ID:        uuid.New(),
			PatientID: "p1",
			Timestamp: start.Add(-time.Duration(i) * time.Minute),
		}
	}
	return out
}

func TestListVitals_NonDoctorIsForbiddenEvenForUnknownPatient(t *testing.T) {
	f := newFixture(t)
	f.doctors.EXPECT().IsDoctor(gomock.Any(), "patient-uid").Return(false, nil)

	_, err := f.svc.ListVitals(context.Background(), "patient-uid", ListQuery{PatientID: "nobody", Limit: "abc"})

	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Equal(t, "Doctor access required", appErrors.PublicMessage(err))
}

func TestListVitals_UnknownPatient(t *testing.T) {
	f := newFixture(t)
	f.doctors.EXPECT().IsDoctor(gomock.Any(), "doc").Return(true, nil)
	f.patients.EXPECT().Exists(gomock.Any(), "nobody").Return(false, nil)

	_, err := f.svc.ListVitals(context.Background(), "doc", ListQuery{PatientID: "nobody"})

	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestListVitals_LimitHandling(t *testing.T) {
	tests := []struct {
		raw       string
		wantLimit int
	}{
		{"", 100},
		{"10", 10},
		{"0", 1},
		{"-5", 1},
		{"5000", 1000},
	}

	for _, tt := range tests {
		t.Run("limit="+tt.raw, func(t *testing.T) {
			f := newFixture(t)
			f.doctors.EXPECT().IsDoctor(gomock.Any(), "doc").Return(true, nil)
			f.patients.EXPECT().Exists(gomock.Any(), "p1").Return(true, nil)
			f.vitals.EXPECT().List(gomock.Any(), "p1", tt.wantLimit, nil).Return(nil, nil)

			resp, err := f.svc.ListVitals(context.Background(), "doc", ListQuery{PatientID: "p1", Limit: tt.raw})

			require.NoError(t, err)
			assert.Equal(t, 0, resp.Count)
			assert.NotNil(t, resp.Vitals)
			assert.Nil(t, resp.NextCursor)
		})
	}
}

func TestListVitals_BadInput(t *testing.T) {
	tests := []struct {
		name string
		q    ListQuery
	}{
		{"non-numeric limit", ListQuery{PatientID: "p1", Limit: "ten"}},
		{"malformed cursor", ListQuery{PatientID: "p1", StartAfter: "not-a-uuid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.doctors.EXPECT().IsDoctor(gomock.Any(), "doc").Return(true, nil)

			_, err := f.svc.ListVitals(context.Background(), "doc", tt.q)

			assert.ErrorIs(t, err, appErrors.ErrInvalidRequest)
		})
	}
}

func TestListVitals_CursorOfAnotherPatient(t *testing.T) {
	f := newFixture(t)
	cursor := uuid.New()

	f.doctors.EXPECT().IsDoctor(gomock.Any(), "doc").Return(true, nil)
	f.patients.EXPECT().Exists(gomock.Any(), "p1").Return(true, nil)
	f.vitals.EXPECT().List(gomock.Any(), "p1", 100, &cursor).Return(nil, domainVitals.ErrInvalidCursor)

	_, err := f.svc.ListVitals(context.Background(), "doc", ListQuery{PatientID: "p1", StartAfter: cursor.String()})

	assert.ErrorIs(t, err, appErrors.ErrInvalidRequest)
}

func TestListVitals_FullPageCarriesCursor(t *testing.T) {
	f := newFixture(t)
	page := readingsAt(3, f.now)

	f.doctors.EXPECT().IsDoctor(gomock.Any(), "doc").Return(true, nil)
	f.patients.EXPECT().Exists(gomock.Any(), "p1").Return(true, nil)
	f.vitals.EXPECT().List(gomock.Any(), "p1", 3, nil).Return(page, nil)

	resp, err := f.svc.ListVitals(context.Background(), "doc", ListQuery{PatientID: "p1", Limit: "3"})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, page[2].ID, *resp.NextCursor)
	for i := 1; i < len(resp.Vitals); i++ {
		assert.True(t, resp.Vitals[i-1].Timestamp.After(resp.Vitals[i].Timestamp))
	}
}

func TestGetLatest(t *testing.T) {
	f := newFixture(t)
	latest := &domainVitals.Reading{
		ID:           uuid.New(),
		PatientID:    "p1",
		Timestamp:    f.now,
		Measurements: domainVitals.Measurements{HeartRate: float(75)},
	}

	f.doctors.EXPECT().IsDoctor(gomock.Any(), "doc").Return(true, nil)
	f.patients.EXPECT().Exists(gomock.Any(), "p1").Return(true, nil)
	f.vitals.EXPECT().Latest(gomock.Any(), "p1").Return(latest, nil)

	resp, err := f.svc.GetLatest(context.Background(), "doc", "p1")

	require.NoError(t, err)
	require.NotNil(t, resp.LatestVitals)
	assert.Equal(t, latest.ID, resp.LatestVitals.ID)
	assert.Equal(t, 75.0, *resp.LatestVitals.HeartRate)
	assert.Equal(t, StatusNormal, resp.Assessment.Overall)
}

func TestGetLatest_NoData(t *testing.T) {
	f := newFixture(t)

	f.doctors.EXPECT().IsDoctor(gomock.Any(), "doc").Return(true, nil)
	f.patients.EXPECT().Exists(gomock.Any(), "p1").Return(true, nil)
	f.vitals.EXPECT().Latest(gomock.Any(), "p1").Return(nil, domainVitals.ErrReadingNotFound)

	resp, err := f.svc.GetLatest(context.Background(), "doc", "p1")

	require.NoError(t, err)
	assert.Nil(t, resp.LatestVitals)
	assert.Equal(t, "No vital signs data available", resp.Message)
}

func TestGetLatest_NonDoctor(t *testing.T) {
	f := newFixture(t)
	f.doctors.EXPECT().IsDoctor(gomock.Any(), "p1").Return(false, nil)

	_, err := f.svc.GetLatest(context.Background(), "p1", "p1")

	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

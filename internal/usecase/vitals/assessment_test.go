package vitals

import (
	"testing"

	domainVitals "simhealth/internal/domain/vitals"

	"github.com/stretchr/testify/assert"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name        string
		m           domainVitals.Measurements
		wantOverall Status
		wantAlerts  int
	}{
		{
			name:        "nothing measured",
			m:           domainVitals.Measurements{},
			wantOverall: StatusUnknown,
		},
		{
			name:        "all normal",
			m:           domainVitals.Measurements{HeartRate: float(72), Temperature: float(36.6), SpO2: float(98)},
			wantOverall: StatusNormal,
		},
		{
			name:        "tachycardia is a warning",
			m:           domainVitals.Measurements{HeartRate: float(120), SpO2: float(97)},
			wantOverall: StatusWarning,
			wantAlerts:  1,
		},
		{
			name: "critical wins",
			m: domainVitals.Measurements{
				HeartRate:     float(110),
				Temperature:   float(40.5),
				BloodPressure: &domainVitals.BloodPressure{Systolic: 115, Diastolic: 75},
			},
			wantOverall: StatusCritical,
			wantAlerts:  2,
		},
		{
			name:        "low systolic",
			m:           domainVitals.Measurements{BloodPressure: &domainVitals.BloodPressure{Systolic: 65, Diastolic: 40}},
			wantOverall: StatusCritical,
			wantAlerts:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assess(&tt.m)

			assert.Equal(t, tt.wantOverall, a.Overall)
			assert.Len(t, a.Alerts, tt.wantAlerts)
			assert.Len(t, a.Vitals, 4)
		})
	}
}

func TestRuleBoundaries(t *testing.T) {
	assert.Equal(t, StatusNormal, heartRateRule.classify(float(60)))
	assert.Equal(t, StatusNormal, heartRateRule.classify(float(100)))
	assert.Equal(t, StatusWarning, heartRateRule.classify(float(40)))
	assert.Equal(t, StatusCritical, heartRateRule.classify(float(39.9)))
	assert.Equal(t, StatusCritical, spo2Rule.classify(float(100.5)))
	assert.Equal(t, StatusUnknown, temperatureRule.classify(nil))
}

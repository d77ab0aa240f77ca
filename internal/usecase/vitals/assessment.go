package vitals

import (
	"fmt"

	domainVitals "simhealth/internal/domain/vitals"
)

type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

func (s Status) severity() int {
	switch s {
	case StatusCritical:
		return 3
	case StatusWarning:
		return 2
	case StatusNormal:
		return 1
	default:
		return 0
	}
}

type band struct {
	min, max float64
}

func (b band) contains(v float64) bool {
	return v >= b.min && v <= b.max
}

// rule classifies one vital: inside normal is normal, outside critical is
// critical, anything between is a warning.
type rule struct {
	vital    string
	unit     string
	normal   band
	critical band
}

var (
	heartRateRule   = rule{vital: "heartRate", unit: "bpm", normal: band{60, 100}, critical: band{40, 150}}
	temperatureRule = rule{vital: "temperature", unit: "°C", normal: band{36.1, 37.2}, critical: band{35, 40}}
	spo2Rule        = rule{vital: "spo2", unit: "%", normal: band{95, 100}, critical: band{90, 100}}
	systolicRule    = rule{vital: "bloodPressure", unit: "mmHg", normal: band{90, 120}, critical: band{70, 180}}
)

func (r rule) classify(v *float64) Status {
	if v == nil {
		return StatusUnknown
	}
	if !r.critical.contains(*v) {
		return StatusCritical
	}
	if !r.normal.contains(*v) {
		return StatusWarning
	}
	return StatusNormal
}

type Alert struct {
	Vital    string  `json:"vital"`
	Severity Status  `json:"severity"`
	Value    float64 `json:"value"`
	Message  string  `json:"message"`
}

// Assessment grades the headline vitals of one reading.
type Assessment struct {
	Overall Status            `json:"overall"`
	Vitals  map[string]Status `json:"vitals"`
	Alerts  []Alert           `json:"alerts,omitempty"`
}

func (a *Assessment) IsCritical() bool {
	return a != nil && a.Overall == StatusCritical
}

func Assess(m *domainVitals.Measurements) *Assessment {
	a := &Assessment{
		Overall: StatusUnknown,
		Vitals:  make(map[string]Status, 4),
	}

	var systolic *float64
	if m.BloodPressure != nil {
		systolic = &m.BloodPressure.Systolic
	}

	checks := []struct {
		rule  rule
		value *float64
	}{
		{heartRateRule, m.HeartRate},
		{temperatureRule, m.Temperature},
		{spo2Rule, m.SpO2},
		{systolicRule, systolic},
	}

	for _, c := range checks {
		status := c.rule.classify(c.value)
		a.Vitals[c.rule.vital] = status

		if status.severity() > a.Overall.severity() {
			a.Overall = status
		}
		if status == StatusWarning || status == StatusCritical {
			a.Alerts = append(a.Alerts, Alert{
				Vital:    c.rule.vital,
				Severity: status,
				Value:    *c.value,
				Message: fmt.Sprintf("%s %.1f %s is outside the %s range %.1f-%.1f",
					c.rule.vital, *c.value, c.rule.unit, rangeName(status), c.rule.bandFor(status).min, c.rule.bandFor(status).max),
			})
		}
	}

	return a
}

func (r rule) bandFor(status Status) band {
	if status == StatusCritical {
		return r.critical
	}
	return r.normal
}

func rangeName(status Status) string {
	if status == StatusCritical {
		return "safe"
	}
	return "normal"
}

package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamValues(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	values, err := streamValues(Event{
		Type:       TypeVitalsAlert,
		DeviceID:   "esp32-001",
		PatientID:  "p1",
		ReadingID:  "r-1",
		OccurredAt: at,
		Payload:    map[string]string{"status": "critical"},
	})

	require.NoError(t, err)
	assert.Equal(t, "vitals.alert", values["type"])
	assert.Equal(t, "esp32-001", values["device_id"])
	assert.Equal(t, "2026-02-03T04:05:06Z", values["occurred_at"])
	assert.JSONEq(t, `{"status":"critical"}`, values["data"].(string))
}

func TestStreamValues_WithoutPayload(t *testing.T) {
	values, err := streamValues(Event{Type: TypeVitalsIngested})

	require.NoError(t, err)
	assert.NotContains(t, values, "data")
	assert.NotEmpty(t, values["occurred_at"])
}

func TestStreamValues_UnencodablePayload(t *testing.T) {
	_, err := streamValues(Event{Type: TypeVitalsIngested, Payload: make(chan int)})

	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}

	assert.NoError(t, p.Publish(context.Background(), Event{Type: TypeVitalsIngested}))
	assert.NoError(t, p.Close())
}

package ingestion

import (
	"sync"
	"time"
)

// IngestMetrics tracks MQTT ingestion throughput
type IngestMetrics struct {
	MessagesReceived  int64
	MessagesProcessed int64
	// MessagesDuplicate counts redelivered readings that were already stored.
	MessagesDuplicate int64
	// MessagesRejected counts payloads that will never succeed, such as
	// malformed JSON or unregistered devices.
	MessagesRejected      int64
	MessagesFailed        int64
	MessagesDropped       int64
	CriticalReadings      int64
	LastProcessedAt       time.Time
	AverageProcessingTime time.Duration
	BufferSize            int
}

// MetricsTracker provides a goroutine-safe wrapper around IngestMetrics.
type MetricsTracker struct {
	mu      sync.RWMutex
	metrics IngestMetrics
}

// NewMetricsTracker builds a new tracker with zeroed metrics.
func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{}
}

// Update applies a mutation in a thread-safe way.
func (t *MetricsTracker) Update(fn func(*IngestMetrics)) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.metrics)
}

// Snapshot returns a copy of the current metrics.
func (t *MetricsTracker) Snapshot() IngestMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}

// observe folds one processing duration into the moving average.
func (m *IngestMetrics) observe(d time.Duration, at time.Time) {
	m.LastProcessedAt = at
	if m.AverageProcessingTime == 0 {
		m.AverageProcessingTime = d
		return
	}
	m.AverageProcessingTime = (m.AverageProcessingTime + d) / 2
}

package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"simhealth/internal/logger"
	"simhealth/internal/usecase/vitals"
	appErrors "simhealth/pkg/errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Ingester is the vitals use case the processor drives.
type Ingester interface {
	Ingest(ctx context.Context, req *vitals.IngestRequest) (*vitals.IngestResponse, error)
}

// AckFunc is called with the outcome of every processed message.
type AckFunc func(msg *VitalsMessage, payload []byte)

// Processor feeds queued MQTT readings to the ingester with a pool of workers
type Processor struct {
	ingester Ingester
	ack      AckFunc

	workerCount int
	timeout     time.Duration
	msgChan     chan *VitalsMessage

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool

	metrics *MetricsTracker
	log     *zap.Logger
}

// NewProcessor creates a new processor. timeout bounds each Ingest call.
func NewProcessor(ingester Ingester, workerCount, bufferSize int, timeout time.Duration) *Processor {
	if workerCount <= 0 {
		workerCount = 1
	}
	if bufferSize <= 0 {
		bufferSize = 100
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		ingester:    ingester,
		workerCount: workerCount,
		timeout:     timeout,
		msgChan:     make(chan *VitalsMessage, bufferSize),
		ctx:         ctx,
		cancel:      cancel,
		metrics:     NewMetricsTracker(),
		log:         logger.Named("ingestion"),
	}
}

// OnAck registers the callback used to acknowledge readings to devices.
// It must be set before Start.
func (p *Processor) OnAck(fn AckFunc) {
	p.ack = fn
}

// Start starts the processor workers
func (p *Processor) Start() {
	p.log.Info("Starting vitals processor",
		zap.Int("workers", p.workerCount),
		zap.Int("buffer", cap(p.msgChan)),
	)

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop stops accepting messages, drains the queue and waits for the workers.
func (p *Processor) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.msgChan)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()

	m := p.metrics.Snapshot()
	p.log.Info("Vitals processor stopped",
		zap.Int64("received", m.MessagesReceived),
		zap.Int64("processed", m.MessagesProcessed),
		zap.Int64("duplicates", m.MessagesDuplicate),
		zap.Int64("rejected", m.MessagesRejected),
		zap.Int64("failed", m.MessagesFailed),
		zap.Int64("dropped", m.MessagesDropped),
	)
}

// Submit queues msg without blocking. It reports false if the message was dropped.
func (p *Processor) Submit(msg *VitalsMessage) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return false
	}

	select {
	case p.msgChan <- msg:
		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesReceived++
			m.BufferSize = len(p.msgChan)
		})
		return true
	default:
		p.log.Warn("Vitals buffer full, dropping message",
			zap.String("device_id", msg.Request.DeviceID),
			zap.String("topic", msg.Topic),
		)
		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesReceived++
			m.MessagesDropped++
		})
		return false
	}
}

// Reject records a message that could not even be decoded.
func (p *Processor) Reject(topic string, err error) {
	p.log.Warn("Invalid vitals payload", zap.String("topic", topic), zap.Error(err))
	p.metrics.Update(func(m *IngestMetrics) {
		m.MessagesReceived++
		m.MessagesRejected++
	})
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for msg := range p.msgChan {
		p.process(id, msg)
	}
}

func (p *Processor) process(workerID int, msg *VitalsMessage) {
	start := time.Now()

	ctx := p.ctx
	var cancel context.CancelFunc
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.ingester.Ingest(ctx, msg.Request)
	if err != nil {
		permanent := errors.Is(err, appErrors.ErrInvalidRequest) || errors.Is(err, appErrors.ErrNotFound)
		p.log.Warn("Failed to ingest MQTT reading",
			zap.Int("worker", workerID),
			zap.String("device_id", msg.Request.DeviceID),
			zap.Bool("permanent", permanent),
			zap.Error(err),
		)
		p.metrics.Update(func(m *IngestMetrics) {
			if permanent {
				m.MessagesRejected++
			} else {
				m.MessagesFailed++
			}
		})
		p.acknowledge(msg, ackMessage{Error: appErrors.PublicMessage(err), Sequence: msg.Request.Sequence})
		return
	}

	p.metrics.Update(func(m *IngestMetrics) {
		m.MessagesProcessed++
		if resp.Duplicate {
			m.MessagesDuplicate++
		}
		if resp.Assessment.IsCritical() {
			m.CriticalReadings++
		}
		m.BufferSize = len(p.msgChan)
		m.observe(time.Since(start), time.Now())
	})

	p.acknowledge(msg, ackMessage{
		VitalsID:  resp.VitalsID.String(),
		Duplicate: resp.Duplicate,
		Success:   true,
		Sequence:  msg.Request.Sequence,
	})
}

func (p *Processor) acknowledge(msg *VitalsMessage, ack ackMessage) {
	if p.ack == nil {
		return
	}
	payload, err := json.Marshal(ack)
	if err != nil {
		p.log.Error("Failed to encode ack", zap.Error(err))
		return
	}
	p.ack(msg, payload)
}

// GetMetrics returns current metrics
func (p *Processor) GetMetrics() IngestMetrics {
	return p.metrics.Snapshot()
}

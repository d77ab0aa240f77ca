package events

import (
	"context"
	"encoding/json"
	"fmt"
	"simhealth/internal/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	TypeVitalsIngested = "vitals.ingested"
	TypeVitalsAlert    = "vitals.alert"
)

// Event is one entry appended to the vitals stream.
type Event struct {
	Type       string
	DeviceID   string
	PatientID  string
	ReadingID  string
	OccurredAt time.Time
	Payload    interface{}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// RedisPublisher appends events to a Redis stream with XADD.
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewRedisPublisher(ctx context.Context, addr, password string, db int, stream string) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Info("Redis event stream connected",
		zap.String("addr", addr),
		zap.String("stream", stream),
	)

	return &RedisPublisher{client: client, stream: stream, maxLen: 100000}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	values, err := streamValues(event)
	if err != nil {
		return err
	}

	_, err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

func streamValues(event Event) (map[string]interface{}, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	values := map[string]interface{}{
		"type":        event.Type,
		"device_id":   event.DeviceID,
		"patient_id":  event.PatientID,
		"reading_id":  event.ReadingID,
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
	}

	if event.Payload != nil {
		data, err := json.Marshal(event.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", event.Type, err)
		}
		values["data"] = string(data)
	}

	return values, nil
}

// NopPublisher drops every event. Used when no stream is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

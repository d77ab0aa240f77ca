package ingestion

import (
	"errors"
	"fmt"
	pkgmqtt "simhealth/pkg/mqtt"
	"sync"

	"go.uber.org/zap"
)

// MQTTIngestionConfig describes the vitals topic and MQTT connection parameters.
type MQTTIngestionConfig struct {
	ClientConfig *pkgmqtt.Config
	VitalsTopic  string
	QoS          byte
	// PublishAcks sends the ingestion outcome back on the device's ack topic.
	PublishAcks bool
}

// MQTTIngestionClient wires MQTT messages into the ingestion processor.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	client    *pkgmqtt.Client
	processor *Processor
	log       *zap.Logger

	mu      sync.Mutex
	started bool
}

// NewMQTTIngestionClient builds a new MQTT client for ingestion.
func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if cfg.VitalsTopic == "" {
		return nil, errors.New("no MQTT vitals topic configured")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	c := &MQTTIngestionClient{
		cfg:       cfg,
		client:    pkgmqtt.NewClient(cfg.ClientConfig),
		processor: processor,
		log:       processor.log.Named("mqtt"),
	}
	if cfg.PublishAcks {
		processor.OnAck(c.publishAck)
	}
	return c, nil
}

// Start establishes the MQTT connection and subscribes to the vitals topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.VitalsTopic, c.cfg.QoS, c.handleVitalsMessage); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.VitalsTopic, err)
	}

	c.log.Info("Listening for device vitals", zap.String("topic", c.cfg.VitalsTopic))
	c.started = true
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.client.Unsubscribe(c.cfg.VitalsTopic); err != nil {
		c.log.Warn("Failed to unsubscribe from MQTT topic", zap.Error(err))
	}

	c.client.Disconnect()
	c.started = false
}

func (c *MQTTIngestionClient) handleVitalsMessage(topic string, payload []byte) {
	msg, err := ParseVitalsMessage(c.cfg.VitalsTopic, topic, payload)
	if err != nil {
		c.processor.Reject(topic, err)
		return
	}

	c.processor.Submit(msg)
}

func (c *MQTTIngestionClient) publishAck(msg *VitalsMessage, payload []byte) {
	if msg.Request.DeviceID == "" {
		return
	}
	topic := AckTopic(c.cfg.VitalsTopic, msg.Request.DeviceID)
	if err := c.client.Publish(topic, c.cfg.QoS, false, payload); err != nil {
		c.log.Warn("Failed to publish ack",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}

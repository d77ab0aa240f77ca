package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"simhealth/internal/usecase/vitals"
	"strings"
)

// ErrDeviceMismatch is returned for a payload published on another device's topic.
var ErrDeviceMismatch = errors.New("device id does not match topic")

// VitalsMessage is one reading received over MQTT, tagged with its topic.
type VitalsMessage struct {
	Topic   string
	Request *vitals.IngestRequest
}

// ParseVitalsMessage decodes the same JSON body POST /api/esp32/vitals accepts.
// When the body has no deviceId it is taken from the topic segment matched by
// the single-level wildcard in pattern. A body deviceId naming a different
// device than the topic is rejected.
func ParseVitalsMessage(pattern, topic string, payload []byte) (*VitalsMessage, error) {
	var req vitals.IngestRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("decode vitals payload: %w", err)
	}

	topicDeviceID := DeviceIDFromTopic(pattern, topic)
	bodyDeviceID := strings.TrimSpace(req.DeviceID)
	switch {
	case bodyDeviceID == "":
		req.DeviceID = topicDeviceID
	case topicDeviceID != "" && bodyDeviceID != topicDeviceID:
		return nil, fmt.Errorf("%w: payload names %q, topic names %q", ErrDeviceMismatch, bodyDeviceID, topicDeviceID)
	}

	return &VitalsMessage{Topic: topic, Request: &req}, nil
}

// DeviceIDFromTopic returns the topic level at the position of the first "+"
// in pattern, or "" if the topic does not line up with the pattern.
func DeviceIDFromTopic(pattern, topic string) string {
	patternLevels := strings.Split(pattern, "/")
	topicLevels := strings.Split(topic, "/")

	for i, level := range patternLevels {
		if level == "#" {
			return ""
		}
		if i >= len(topicLevels) {
			return ""
		}
		if level == "+" {
			return topicLevels[i]
		}
		if level != topicLevels[i] {
			return ""
		}
	}
	return ""
}

// AckTopic substitutes deviceID for the first "+" of pattern and replaces the
// last level with "ack", e.g. simhealth/esp32/+/vitals -> simhealth/esp32/esp32-001/ack.
func AckTopic(pattern, deviceID string) string {
	levels := strings.Split(pattern, "/")
	for i, level := range levels {
		if level == "+" {
			levels[i] = deviceID
			break
		}
	}
	levels[len(levels)-1] = "ack"
	return strings.Join(levels, "/")
}

type ackMessage struct {
	VitalsID  string `json:"vitalsId,omitempty"`
	Duplicate bool   `json:"duplicate"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Sequence  *int64 `json:"sequence,omitempty"`
}

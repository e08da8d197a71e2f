// Package kafka publishes WellNodal domain events.  Consumers (reporting,
// notification fan-out, downstream data lakes) subscribe to the topics below;
// every message is wrapped in the same envelope.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/WellNodal/pkg/errors"
)

// Topic constants.
const (
	TopicDesignUpdated = "wellbore.design.updated"
	TopicRunCompleted  = "analysis.run.completed"
	TopicRunFailed     = "analysis.run.failed"
)

// envelopeSource identifies this service in event envelopes.
const envelopeSource = "wellnodal"

// EventEnvelope standardizes event messages across topics.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// DesignUpdatedPayload is published on every saved design revision.
type DesignUpdatedPayload struct {
	WellID     string    `json:"well_id"`
	Revision   int64     `json:"revision"`
	NodalPoint float64   `json:"nodal_point"`
	BHARows    int       `json:"bha_rows"`
	CasingRows int       `json:"casing_rows"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RunCompletedPayload is published when the physics engine answers.
type RunCompletedPayload struct {
	RunID             string    `json:"run_id"`
	WellID            string    `json:"well_id"`
	DesignRevision    int64     `json:"design_revision"`
	OperatingRate     float64   `json:"operating_rate"`
	OperatingPressure float64   `json:"operating_pressure"`
	CompletedAt       time.Time `json:"completed_at"`
}

// RunFailedPayload is published when a run fails at any stage.
type RunFailedPayload struct {
	RunID    string    `json:"run_id"`
	WellID   string    `json:"well_id"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

// NewEnvelope wraps a payload for the given topic.  The topic doubles as the
// event type.
func NewEnvelope(topic string, payload interface{}) (*EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event payload")
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     topic,
		Source:        envelopeSource,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "1.0",
		Payload:       raw,
	}, nil
}

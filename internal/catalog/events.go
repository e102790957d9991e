package catalog

import (
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"time"
)

type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"` // catalog.<resource>.<op>
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // <resource>:<id>
	Payload       json.RawMessage `json:"payload"`
}

type ChangePayload struct {
	Resource string          `json:"resource"`
	Op       Op              `json:"op"`
	ID       int64           `json:"id"`
	Record   json.RawMessage `json:"record,omitempty"` // nil on delete
}

func EventType(resource string, op Op) string {
	return fmt.Sprintf("catalog.%s.%s", resource, op)
}

// NewChangeEvent wraps a mutation in a v1 envelope. record may be nil.
func NewChangeEvent(producer, traceID, resource string, op Op, id int64, record any) (Envelope, error) {
	p := ChangePayload{Resource: resource, Op: op, ID: id}
	if record != nil {
		b, err := json.Marshal(record)
		if err != nil {
			return Envelope{}, fmt.Errorf("marshal record: %w", err)
		}
		p.Record = b
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventType(resource, op),
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: string(PartitionKey(resource, id)),
		Payload:       payload,
	}, nil
}

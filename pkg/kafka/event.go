package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// TopicPrefix namespaces every topic published by the console.
const TopicPrefix = "inventory"

// SchemaVersion is stamped on every envelope. Bump it when a payload changes
// incompatibly.
const SchemaVersion = 1

// Message header keys.
const (
	HeaderEventType     = "event_type"
	HeaderSource        = "source"
	HeaderCorrelationID = "correlation_id"
)

// Topic builds "<prefix>.<aggregate>.<action>".
func Topic(aggregate, action string) string {
	return TopicPrefix + "." + aggregate + "." + action
}

// Event is the envelope around every payload the console publishes.
type Event struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	Version       int             `json:"version"`
	Timestamp     time.Time       `json:"timestamp"`
	Source        string          `json:"source"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent wraps data in an envelope with a fresh id and the current time.
func NewEvent(eventType, aggregateID, aggregateType, source string, data any) (*Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	return &Event{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		Version:       SchemaVersion,
		Timestamp:     time.Now().UTC(),
		Source:        source,
		Data:          payload,
	}, nil
}

// WithCorrelationID sets the correlation ID on the event.
func (e *Event) WithCorrelationID(id string) *Event {
	e.CorrelationID = id
	return e
}

// Message encodes the event for topic. The aggregate id is the message key
// so events for one product land on one partition in order.
func (e *Event) Message(topic string) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}

	headers := []kafka.Header{
		{Key: HeaderEventType, Value: []byte(e.EventType)},
		{Key: HeaderSource, Value: []byte(e.Source)},
	}
	if e.CorrelationID != "" {
		headers = append(headers, kafka.Header{Key: HeaderCorrelationID, Value: []byte(e.CorrelationID)})
	}

	return kafka.Message{
		Topic:   topic,
		Key:     []byte(e.AggregateID),
		Value:   value,
		Headers: headers,
	}, nil
}

// DecodeEvent parses an envelope and rejects one without an id or type.
func DecodeEvent(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if event.EventID == "" || event.EventType == "" {
		return nil, errors.New("unmarshal event: missing event_id or event_type")
	}
	return &event, nil
}

// UnmarshalData decodes the payload into target.
func (e *Event) UnmarshalData(target any) error {
	return json.Unmarshal(e.Data, target)
}

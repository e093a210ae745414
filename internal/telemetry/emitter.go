// Package telemetry emits best-effort activity events (logins, guard denials,
// email-worker triggers, request reviews) for downstream shipping to Loki.
package telemetry

import (
	"context"
	"time"
)

// Event is a single activity event. Marshaled to JSON as the Kafka message value.
type Event struct {
	UserID    string            `json:"userId,omitempty"`
	EventType string            `json:"eventType"`
	Source    string            `json:"source"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// EventEmitter emits activity events. Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}

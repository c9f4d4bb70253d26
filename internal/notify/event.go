// Package notify fans resource status changes out to subscribed clients.
package notify

import (
	"context"
	"time"
)

type EventType string

const (
	OrderStatusChanged          EventType = "orderStatusChanged"
	ServiceRequestStatusChanged EventType = "serviceRequestStatusChanged"
)

type Event struct {
	Type       EventType `json:"type"`
	ResourceID uint      `json:"resourceId"`
	Status     string    `json:"status"`
	UserID     uint      `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher is what the domain services depend on.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

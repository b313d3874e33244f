// Package pubsub provides a generic publish/subscribe event broker used
// to surface theme and override changes to hosts without coupling the
// core to any UI toolkit.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the kind of change being published.
type EventType string

const (
	ThemeChangedEvent     EventType = "theme_changed"
	OverridesChangedEvent EventType = "overrides_changed"
	CreatedEvent          EventType = "created"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

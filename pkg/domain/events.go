package domain

import (
	"context"
	"time"
)

// EventType defines the category of an observability event.
type EventType string

const (
	EventPress   EventType = "press"
	EventResolve EventType = "resolve"
	EventError   EventType = "error"
)

// EventBase contains common fields for all observability events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// PressEvent is emitted after every processed button press.
type PressEvent struct {
	EventBase
	Kind    EventKind `json:"kind"`
	Label   string    `json:"label"`
	Display string    `json:"display"` // display after the press
}

// ResolveEvent is emitted when a pending operation is applied.
type ResolveEvent struct {
	EventBase
	Operator Operator `json:"operator"`
	Left     float64  `json:"left"`
	Right    float64  `json:"right"`
	Result   float64  `json:"result"`
}

// ErrorEvent is emitted when a press fails and the state is reset.
type ErrorEvent struct {
	EventBase
	Kind EventKind `json:"kind"`
	Err  error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability. Hooks run
// synchronously on the pressing goroutine; keep them cheap.
type LifecycleHooks struct {
	OnPress   func(context.Context, *PressEvent)
	OnResolve func(context.Context, *ResolveEvent)
	OnError   func(context.Context, *ErrorEvent)
}

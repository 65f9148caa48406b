package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventResolve EventType = "resolve"
	EventReport  EventType = "report"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Flow      string    `json:"flow,omitempty"`
}

// ResolveEvent is emitted after every lookup.
type ResolveEvent struct {
	EventBase
	Query    string        `json:"query"`
	StepID   string        `json:"step_id,omitempty"`
	Kind     MatchKind     `json:"kind"`
	Score    float64       `json:"score"`
	Steps    int           `json:"steps"`
	Duration time.Duration `json:"duration"`
}

// ReportEvent is emitted when the engine answers in report mode.
type ReportEvent struct {
	EventBase
	Steps int `json:"steps"`
}

// LookupHooks defines callbacks for engine observability.
type LookupHooks struct {
	OnResolve func(context.Context, *ResolveEvent)
	OnReport  func(context.Context, *ReportEvent)
}

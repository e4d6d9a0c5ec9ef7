package model

import "time"

// Event type classification. Events have a concrete start and end time;
// tasks only carry a due date and are treated as all-day.
const (
	TypeEvent = "event"
	TypeTask  = "task"
)

// CandidateEvent is the untrusted, backend-produced event descriptor prior
// to normalization. Every field except Type and Recurring is free text under
// the backend's control; Type values other than "event"/"task" default to
// "event" during normalization.
type CandidateEvent struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	StartText   string  `json:"start_text"`
	EndText     string  `json:"end_text"`
	Location    *string `json:"location"`
	Description string  `json:"description"`
	Recurring   bool    `json:"recurring"`
}

// DateSpan is a resolved start/end timestamp pair. End >= Start always;
// Start == End is the explicit encoding of an all-day or instantaneous event.
type DateSpan struct {
	Start time.Time
	End   time.Time
}

// AllDay reports whether the span encodes an all-day event.
func (s DateSpan) AllDay() bool {
	return s.Start.Equal(s.End)
}

// Event is the canonical output type: the contract the rest of the system
// consumes. Immutable within the pipeline once produced; timestamps serialize
// as ISO-8601 (RFC 3339) via encoding/json.
type Event struct {
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	Location    *string   `json:"location"`
	Type        string    `json:"type"`
	AllDay      bool      `json:"all_day"`
	Recurring   bool      `json:"recurring"`
}

// Valid reports whether the event satisfies the materialization invariant:
// non-all-day events must have Start strictly before End. Violations cause
// that single event to be skipped downstream, never the whole batch.
func (e Event) Valid() bool {
	if e.Title == "" {
		return false
	}
	if e.AllDay {
		return !e.End.Before(e.Start)
	}
	return e.Start.Before(e.End)
}

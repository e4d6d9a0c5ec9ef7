package syllacal

import "time"

// Event is a normalized calendar event.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Event struct {
	Title       string    `json:"title"`                 // Short event name
	Start       time.Time `json:"start"`                 // Event start
	End         time.Time `json:"end"`                   // Event end; equals Start for all-day events
	Description string    `json:"description,omitempty"` // Source text the event was derived from
	Location    string    `json:"location,omitempty"`    // Venue, if stated
	Type        string    `json:"type"`                  // "event" or "task"
	AllDay      bool      `json:"all_day"`               // Date-only event without a time of day
	Recurring   bool      `json:"recurring"`             // Repeats weekly
	RRule       string    `json:"rrule,omitempty"`       // Weekly recurrence rule, set when Recurring
}

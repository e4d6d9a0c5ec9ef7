// Package gcal builds Google Calendar API event bodies from materialized
// events. It produces the JSON shape accepted by events.insert; callers own
// authentication and transport.
package gcal

import (
	"errors"

	"github.com/hamza-els/CalHacks/internal/model"
	"github.com/hamza-els/CalHacks/internal/recurrence"
)

// ErrInvalidEvent indicates an event whose span would be rejected by the
// Calendar API.
var ErrInvalidEvent = errors.New("gcal: event end precedes start")

// EventDateTime is one endpoint of an event span. Exactly one of Date or
// DateTime is set.
type EventDateTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// EventBody is the request body for events.insert.
type EventBody struct {
	Summary     string        `json:"summary"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
	Recurrence  []string      `json:"recurrence,omitempty"`
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// BuildEventBody converts one event into an insertable body. All-day events
// use date-valued endpoints with an exclusive end one day after the start;
// timed events carry the given IANA time zone. Recurring events get a weekly
// RRULE bounded by horizonWeeks.
func BuildEventBody(ev model.Event, timeZone string, horizonWeeks int) (EventBody, error) {
	if !ev.Valid() {
		return EventBody{}, ErrInvalidEvent
	}

	body := EventBody{
		Summary:     ev.Title,
		Description: ev.Description,
	}
	if ev.Location != nil {
		body.Location = *ev.Location
	}

	if ev.AllDay {
		body.Start = EventDateTime{Date: ev.Start.Format(dateLayout)}
		body.End = EventDateTime{Date: ev.Start.AddDate(0, 0, 1).Format(dateLayout)}
	} else {
		body.Start = EventDateTime{DateTime: ev.Start.Format(dateTimeLayout), TimeZone: timeZone}
		body.End = EventDateTime{DateTime: ev.End.Format(dateTimeLayout), TimeZone: timeZone}
	}

	if ev.Recurring {
		rule := recurrence.Build(ev, horizonWeeks)
		body.Recurrence = []string{"RRULE:" + rule.Encode()}
	}
	return body, nil
}

// Package icsfile writes materialized events to an iCalendar file for
// import into Apple Calendar and friends.
package icsfile

import (
	"context"
	"fmt"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/hamza-els/CalHacks/internal/model"
	"github.com/hamza-els/CalHacks/internal/recurrence"
)

const productID = "-//syllacal//event export//EN"

// Output accumulates events and serializes the calendar on Close.
type Output struct {
	path         string
	calName      string
	horizonWeeks int
	cal          *ics.Calendar
	now          func() time.Time
}

// Option configures an Output.
type Option func(*Output)

// WithCalendarName sets the calendar display name.
func WithCalendarName(name string) Option {
	return func(o *Output) { o.calName = name }
}

// WithHorizonWeeks bounds recurrence rules attached to recurring events.
func WithHorizonWeeks(weeks int) Option {
	return func(o *Output) { o.horizonWeeks = weeks }
}

// New creates an ICS file output targeting path.
func New(path string, opts ...Option) *Output {
	o := &Output{
		path:         path,
		horizonWeeks: recurrence.DefaultHorizonWeeks,
		cal:          ics.NewCalendar(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.cal.SetMethod(ics.MethodPublish)
	o.cal.SetProductId(productID)
	if o.calName != "" {
		o.cal.SetName(o.calName)
	}
	return o
}

// Write adds one event to the calendar. All-day events use date-valued
// start/end spanning a single day; recurring events carry a weekly RRULE
// bounded by the configured horizon.
func (o *Output) Write(_ context.Context, event model.Event) error {
	ve := o.cal.AddEvent(uuid.NewString() + "@syllacal")
	ve.SetDtStampTime(o.now())
	ve.SetSummary(event.Title)
	if event.Description != "" {
		ve.SetDescription(event.Description)
	}
	if event.Location != nil && *event.Location != "" {
		ve.SetLocation(*event.Location)
	}

	if event.AllDay {
		ve.SetAllDayStartAt(event.Start)
		ve.SetAllDayEndAt(event.Start.AddDate(0, 0, 1))
	} else {
		ve.SetStartAt(event.Start)
		ve.SetEndAt(event.End)
	}

	if event.Recurring {
		rule := recurrence.Build(event, o.horizonWeeks)
		ve.AddRrule(rule.Encode())
	}
	return nil
}

// Close serializes the accumulated calendar to the target path.
func (o *Output) Close() error {
	if err := os.WriteFile(o.path, []byte(o.cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("icsfile output: %w", err)
	}
	return nil
}

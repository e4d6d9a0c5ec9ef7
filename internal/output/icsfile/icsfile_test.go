package icsfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hamza-els/CalHacks/internal/model"
)

func writeCalendar(t *testing.T, events []model.Event, opts ...Option) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.ics")
	o := New(path, opts...)
	o.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	for _, ev := range events {
		if err := o.Write(context.Background(), ev); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := o.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(data)
}

func TestWriteTimedEvent(t *testing.T) {
	loc := "Dwinelle 155"
	out := writeCalendar(t, []model.Event{{
		Title:       "Midterm 1",
		Start:       time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 3, 5, 16, 0, 0, 0, time.UTC),
		Description: "Covers weeks 1-6",
		Location:    &loc,
		Type:        model.TypeEvent,
	}})

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"SUMMARY:Midterm 1",
		"DTSTART:20260305T140000Z",
		"DTEND:20260305T160000Z",
		"LOCATION:Dwinelle 155",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("serialized calendar missing %q", want)
		}
	}
}

func TestWriteAllDayEvent(t *testing.T) {
	start := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	out := writeCalendar(t, []model.Event{{
		Title:  "Essay due",
		Start:  start,
		End:    start,
		Type:   model.TypeTask,
		AllDay: true,
	}})

	if !strings.Contains(out, "DTSTART;VALUE=DATE:20261010") {
		t.Errorf("all-day start not date-valued:\n%s", out)
	}
	if !strings.Contains(out, "DTEND;VALUE=DATE:20261011") {
		t.Errorf("all-day end should be the following date:\n%s", out)
	}
}

func TestWriteRecurringEvent(t *testing.T) {
	out := writeCalendar(t, []model.Event{{
		Title:       "Lecture",
		Start:       time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC),
		Description: "MWF",
		Type:        model.TypeEvent,
		Recurring:   true,
	}}, WithHorizonWeeks(4))

	if !strings.Contains(out, "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR;UNTIL=20260402T140000Z") {
		t.Errorf("missing bounded weekly rule:\n%s", out)
	}
}

func TestCalendarName(t *testing.T) {
	out := writeCalendar(t, nil, WithCalendarName("CS 61A"))
	if !strings.Contains(out, "NAME:CS 61A") {
		t.Errorf("calendar name not serialized:\n%s", out)
	}
}

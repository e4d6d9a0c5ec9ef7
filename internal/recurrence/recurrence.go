// Package recurrence infers bounded weekly recurrence rules from an event's
// description and start date.
package recurrence

import (
	"regexp"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/hamza-els/CalHacks/internal/model"
)

// DefaultHorizonWeeks bounds a rule to roughly one academic term.
const DefaultHorizonWeeks = 16

// Rule is a weekly, by-weekday, until-bounded recurrence derived from one
// event. It is computed on demand and never persisted by the pipeline.
type Rule struct {
	Weekdays []rrule.Weekday
	Until    time.Time
	Start    time.Time
	AllDay   bool
}

// compactLetters maps the single-letter schedule code used in compact tokens
// like "MWF". T always means Tuesday here; Thursday is R.
var compactLetters = map[rune]rrule.Weekday{
	'M': rrule.MO,
	'T': rrule.TU,
	'W': rrule.WE,
	'R': rrule.TH,
	'F': rrule.FR,
}

// wordPattern matches whole-word weekday names and abbreviations longer than
// two characters, longest alternatives first.
var wordPattern = regexp.MustCompile(`\b(MONDAY|TUESDAY|WEDNESDAY|THURSDAY|FRIDAY|SATURDAY|SUNDAY|THURS|TUES|THUR|MON|TUE|WED|FRI|SAT|SUN)\b`)

var wordDays = map[string]rrule.Weekday{
	"MON": rrule.MO, "MONDAY": rrule.MO,
	"TUE": rrule.TU, "TUES": rrule.TU, "TUESDAY": rrule.TU,
	"WED": rrule.WE, "WEDNESDAY": rrule.WE,
	"THUR": rrule.TH, "THURS": rrule.TH, "THURSDAY": rrule.TH,
	"FRI": rrule.FR, "FRIDAY": rrule.FR,
	"SAT": rrule.SA, "SATURDAY": rrule.SA,
	"SUN": rrule.SU, "SUNDAY": rrule.SU,
}

var startWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Build derives the weekly rule for a recurring event. Weekday inference, in
// priority order: a compact M/T/W/R/F token (at most 5 characters), then
// whole-word weekday names in the description, then the start date's own
// weekday. horizonWeeks <= 0 selects DefaultHorizonWeeks.
func Build(ev model.Event, horizonWeeks int) Rule {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}

	days := compactWeekdays(ev.Description)
	if len(days) == 0 {
		days = wordWeekdays(ev.Description)
	}
	if len(days) == 0 {
		days = []rrule.Weekday{startWeekdays[ev.Start.Weekday()]}
	}

	return Rule{
		Weekdays: days,
		Until:    ev.Start.AddDate(0, 0, horizonWeeks*7),
		Start:    ev.Start,
		AllDay:   ev.AllDay,
	}
}

// compactWeekdays handles tokens like "MWF" or "TR": at most 5 characters,
// every character one of M,T,W,R,F. Anything longer (including "TTH"-style
// six-character strings once uppercased with surrounding words) falls
// through to word matching.
func compactWeekdays(description string) []rrule.Weekday {
	token := strings.ToUpper(strings.TrimSpace(description))
	if token == "" || len(token) > 5 {
		return nil
	}
	var days []rrule.Weekday
	for _, r := range token {
		day, ok := compactLetters[r]
		if !ok {
			return nil
		}
		days = appendUnique(days, day)
	}
	return days
}

// wordWeekdays scans for whole-word weekday names, preserving first-seen
// order and deduplicating codes.
func wordWeekdays(description string) []rrule.Weekday {
	var days []rrule.Weekday
	for _, token := range wordPattern.FindAllString(strings.ToUpper(description), -1) {
		days = appendUnique(days, wordDays[token])
	}
	return days
}

func appendUnique(days []rrule.Weekday, day rrule.Weekday) []rrule.Weekday {
	for _, d := range days {
		if d == day {
			return days
		}
	}
	return append(days, day)
}

// Encode renders the rule as an RRULE property value (without the "RRULE:"
// prefix). All-day rules bound UNTIL with a bare date; timed rules use a UTC
// date-time.
func (r Rule) Encode() string {
	codes := make([]string, len(r.Weekdays))
	for i, d := range r.Weekdays {
		codes[i] = d.String()
	}

	var until string
	if r.AllDay {
		until = r.Until.Format("20060102")
	} else {
		until = r.Until.UTC().Format("20060102T150405Z")
	}

	return "FREQ=WEEKLY;BYDAY=" + strings.Join(codes, ",") + ";UNTIL=" + until
}

// RRule materializes the rule for occurrence expansion.
func (r Rule) RRule() (*rrule.RRule, error) {
	return rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   r.Start,
		Until:     r.Until,
		Byweekday: r.Weekdays,
	})
}

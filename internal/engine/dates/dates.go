// Package dates resolves natural-language date/time phrases into concrete
// timestamps. It wraps the dateparser library behind two small helpers so
// the rest of the engine never touches parser configuration directly.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/markusmobius/go-dateparser"

	"github.com/hamza-els/CalHacks/internal/model"
)

// ErrUnparseable is returned when no date can be derived from a phrase.
// Callers must treat this as "drop the candidate", never as a batch failure.
var ErrUnparseable = errors.New("dates: no date could be derived")

func parserConfig(ref time.Time) *dateparser.Configuration {
	if ref.IsZero() {
		ref = time.Now()
	}
	return &dateparser.Configuration{
		CurrentTime:         ref,
		PreferredDateSource: dateparser.Future,
	}
}

// Parse resolves a single phrase with a prefer-future bias relative to ref
// (current time when ref is zero). Phrases with non-date filler ("due
// Friday Oct 10") resolve through a scan of the phrase when direct parsing
// rejects them.
func Parse(text string, ref time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrUnparseable
	}
	dt, err := dateparser.Parse(parserConfig(ref), text)
	if err == nil && !dt.Time.IsZero() {
		return dt.Time, nil
	}
	if matches := Search(text, ref); len(matches) > 0 {
		return matches[0].Time, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, text)
}

// Match is one date-like substring located in free text.
type Match struct {
	Text string
	Time time.Time
}

// Search scans free text for every date/time mention, preserving the order
// the underlying scanner returns. Matches without any digit, month, or
// weekday token are discarded: the scanner happily reads stray words like
// "to" as dates. A text with no date-like substrings yields an empty slice,
// not an error.
func Search(text string, ref time.Time) []Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_, results, err := dateparser.Search(parserConfig(ref), text)
	if err != nil {
		return nil
	}
	matches := make([]Match, 0, len(results))
	for _, r := range results {
		if !plausibleDate(r.Text) {
			continue
		}
		matches = append(matches, Match{Text: r.Text, Time: r.Date.Time})
	}
	return matches
}

// dateWords are the month/weekday/relative tokens that qualify a digit-free
// match as a real date mention.
var dateWords = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "sept": true, "oct": true,
	"nov": true, "dec": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"mon": true, "tue": true, "tues": true, "wed": true, "thu": true,
	"thur": true, "thurs": true, "fri": true, "sat": true, "sun": true,
	"today": true, "tomorrow": true, "tonight": true, "yesterday": true,
}

func plausibleDate(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	for _, f := range strings.Fields(strings.ToLower(s)) {
		if dateWords[strings.Trim(f, ".,;:")] {
			return true
		}
	}
	return false
}

// Resolver converts a start/end phrase pair plus a type into a DateSpan.
type Resolver struct{}

// Resolve parses startText with a prefer-future bias and derives the end
// timestamp per type-specific rules:
//
//   - tasks are instantaneous: end == start
//   - endText "0" or "none" marks an all-day event: end == start
//   - an hour-unit endText ("2 hours", "~1hr") adds that many hours
//   - anything else is parsed as an independent phrase, defaulting to
//     start+1h when unparseable
//
// Returns ErrUnparseable when startText yields no date.
func (Resolver) Resolve(startText, endText, eventType string, ref time.Time) (model.DateSpan, error) {
	start, err := Parse(startText, ref)
	if err != nil {
		return model.DateSpan{}, err
	}

	if eventType == model.TypeTask {
		return model.DateSpan{Start: start, End: start}, nil
	}

	end := resolveEnd(start, endText, ref)
	if end.Before(start) {
		// End >= start always holds on a DateSpan; a backwards end phrase
		// degrades to the default duration.
		end = start.Add(time.Hour)
	}
	return model.DateSpan{Start: start, End: end}, nil
}

func resolveEnd(start time.Time, endText string, ref time.Time) time.Time {
	trimmed := strings.TrimSpace(endText)
	lower := strings.ToLower(trimmed)

	switch {
	case trimmed == "0" || lower == "none":
		return start
	case strings.Contains(lower, "hour") || strings.Contains(lower, "hr"):
		return start.Add(time.Duration(leadingHours(trimmed)) * time.Hour)
	}

	end, err := Parse(trimmed, ref)
	if err != nil {
		return start.Add(time.Hour)
	}
	return end
}

// leadingHours extracts the digit characters of the first whitespace token,
// tolerating non-numeric prefixes ("~2" -> 2). No digits means 1 hour.
func leadingHours(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 1
	}
	var digits strings.Builder
	for _, r := range fields[0] {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

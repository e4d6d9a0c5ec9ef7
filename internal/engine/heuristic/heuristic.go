// Package heuristic implements the fallback extraction path: a semantic-free
// scan for date-like substrings, one event per match. It intentionally does
// not group or deduplicate references to the same real-world occasion.
package heuristic

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hamza-els/CalHacks/internal/engine/dates"
	"github.com/hamza-els/CalHacks/internal/model"
)

// maxTitleRunes is the line length beyond which the title is clipped to the
// text before the first period.
const maxTitleRunes = 140

// Extractor turns raw text into default one-hour events, one per date match.
type Extractor struct{}

// Extract scans text for date/time mentions and synthesizes one event per
// match, in the order the scanner returns them. The containing line serves
// as both title and description. Text without any date-like substring yields
// an empty result, never an error.
func (Extractor) Extract(text string, ref time.Time) []model.Event {
	matches := dates.Search(text, ref)
	if len(matches) == 0 {
		return nil
	}

	events := make([]model.Event, 0, len(matches))
	for _, m := range matches {
		title := contextLine(text, m.Text)
		if title == "" {
			title = m.Text
		}

		events = append(events, model.Event{
			Title:       title,
			Start:       m.Time,
			End:         m.Time.Add(time.Hour),
			Description: title,
			Location:    nil,
			Type:        model.TypeEvent,
			AllDay:      false,
			Recurring:   false,
		})
	}
	return events
}

// contextLine returns the line containing the first occurrence of match,
// trimmed, clipped to the text before the first period when it exceeds
// maxTitleRunes.
func contextLine(text, match string) string {
	idx := strings.Index(text, match)
	if idx < 0 {
		return strings.TrimSpace(match)
	}

	left := strings.LastIndex(text[:idx], "\n")
	if left < 0 {
		left = 0
	} else {
		left++
	}
	right := strings.Index(text[idx+len(match):], "\n")
	if right < 0 {
		right = len(text)
	} else {
		right += idx + len(match)
	}

	line := strings.TrimSpace(text[left:right])
	if utf8.RuneCountInString(line) > maxTitleRunes {
		line, _, _ = strings.Cut(line, ".")
	}
	return line
}

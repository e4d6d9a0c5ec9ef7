// Package normalize converts untrusted candidate descriptors into canonical
// events, applying the defaulting and all-day rules of the event contract.
package normalize

import (
	"log/slog"
	"time"

	"github.com/hamza-els/CalHacks/internal/engine/dates"
	"github.com/hamza-els/CalHacks/internal/model"
)

// Normalizer resolves candidate date phrases and fills contract defaults.
type Normalizer struct {
	resolver dates.Resolver
}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize converts candidates to events in input order. Candidates whose
// start phrase cannot be resolved are dropped silently; the returned skip
// count is the only trace they leave. A dropped candidate never aborts the
// batch.
func (n *Normalizer) Normalize(candidates []model.CandidateEvent, ref time.Time) (events []model.Event, skipped int) {
	events = make([]model.Event, 0, len(candidates))

	for _, c := range candidates {
		eventType := c.Type
		if eventType != model.TypeTask {
			eventType = model.TypeEvent
		}

		span, err := n.resolver.Resolve(c.StartText, c.EndText, eventType, ref)
		if err != nil {
			skipped++
			slog.Debug("candidate dropped", "title", c.Title, "start_text", c.StartText, "error", err)
			continue
		}

		title := c.Title
		if title == "" {
			title = "Event"
		}

		events = append(events, model.Event{
			Title:       title,
			Start:       span.Start,
			End:         span.End,
			Description: c.Description,
			Location:    c.Location,
			Type:        eventType,
			AllDay:      eventType == model.TypeTask || span.AllDay(),
			Recurring:   c.Recurring,
		})
	}
	return events, skipped
}

// Package pipeline connects document intake, event extraction, and outputs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hamza-els/CalHacks/internal/model"
	"github.com/hamza-els/CalHacks/internal/output"
)

// Extractor turns one document into calendar events. *engine.Engine is the
// production implementation.
type Extractor interface {
	Extract(ctx context.Context, doc model.RawDocument, ref time.Time) []model.Event
}

// Pipeline runs one document through the engine and delivers the resulting
// events to an output.
type Pipeline struct {
	engine Extractor
	output output.Output
}

// New creates a Pipeline from the given components.
func New(eng Extractor, out output.Output) *Pipeline {
	return &Pipeline{
		engine: eng,
		output: out,
	}
}

// Run extracts events from the document relative to ref and writes each
// valid event to the output. Events whose span fails validation are skipped
// with a warning rather than aborting the batch. Returns the number of
// events written.
func (p *Pipeline) Run(ctx context.Context, doc model.RawDocument, ref time.Time) (int, error) {
	events := p.engine.Extract(ctx, doc, ref)

	written := 0
	for _, ev := range events {
		if !ev.Valid() {
			slog.Warn("skipping event with invalid span",
				"title", ev.Title, "start", ev.Start, "end", ev.End)
			continue
		}
		if err := p.output.Write(ctx, ev); err != nil {
			return written, fmt.Errorf("pipeline output: %w", err)
		}
		written++
	}
	return written, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}

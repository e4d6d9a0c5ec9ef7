// Package engine orchestrates the extraction pipeline: the structured
// language-model path when a backend is configured, with unconditional
// fallback to the heuristic date scanner on any failure there.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hamza-els/CalHacks/internal/engine/heuristic"
	"github.com/hamza-els/CalHacks/internal/engine/normalize"
	"github.com/hamza-els/CalHacks/internal/engine/structured"
	"github.com/hamza-els/CalHacks/internal/model"
)

// Engine runs one extraction per call. Calls are independent: no state is
// shared across invocations.
type Engine struct {
	structured *structured.Client // nil when no backend is configured
	heuristic  heuristic.Extractor
	normalizer *normalize.Normalizer
}

// New creates an Engine. A nil structured client means the heuristic path
// runs directly.
func New(sc *structured.Client) *Engine {
	return &Engine{
		structured: sc,
		normalizer: normalize.New(),
	}
}

// Extract produces the canonical event list for one document. The structured
// path is attempted first when configured; any failure there (no backend,
// exhausted cascade, malformed output) falls back to the heuristic scan of
// the same text. The fallback itself cannot fail: a document without any
// date-like text yields an empty list, never an error.
func (e *Engine) Extract(ctx context.Context, doc model.RawDocument, ref time.Time) []model.Event {
	if ref.IsZero() {
		ref = time.Now()
	}

	candidates, err := e.structured.Extract(ctx, doc, ref)
	if err == nil {
		events, skipped := e.normalizer.Normalize(candidates, ref)
		slog.Info("structured extraction completed",
			"candidates", len(candidates), "events", len(events), "skipped", skipped)
		return events
	}

	if errors.Is(err, structured.ErrNoBackend) {
		slog.Debug("no backend configured, using heuristic extractor")
	} else {
		slog.Warn("structured extraction failed, falling back to heuristic", "error", err)
	}

	events := e.heuristic.Extract(doc.Text(), ref)
	slog.Info("heuristic extraction completed", "events", len(events))
	return events
}

// SuggestCalendarName proxies to the structured client, degrading to its
// default when no backend is configured.
func (e *Engine) SuggestCalendarName(ctx context.Context, doc model.RawDocument) string {
	return e.structured.SuggestCalendarName(ctx, doc.Text())
}

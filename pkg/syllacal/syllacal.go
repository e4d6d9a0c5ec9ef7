package syllacal

import (
	"context"
	"fmt"
	"time"

	"github.com/hamza-els/CalHacks/internal/config"
	"github.com/hamza-els/CalHacks/internal/document"
	"github.com/hamza-els/CalHacks/internal/engine"
	"github.com/hamza-els/CalHacks/internal/engine/structured"
	"github.com/hamza-els/CalHacks/internal/model"
	"github.com/hamza-els/CalHacks/internal/recurrence"

	// Registers the Gemini backend for WithGemini.
	_ "github.com/hamza-els/CalHacks/internal/backend/gemini"
)

// Extractor turns documents into normalized calendar events.
// Safe for concurrent use.
type Extractor struct {
	engine        *engine.Engine
	referenceTime time.Time
	horizonWeeks  int
}

// New creates an Extractor. With no backend option the extractor runs in
// heuristic-only mode and never calls out over the network.
func New(opts ...Option) (*Extractor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backendErr != nil {
		return nil, fmt.Errorf("syllacal: %w", o.backendErr)
	}

	var sc *structured.Client
	if o.backend != nil {
		models := o.models
		if len(models) == 0 {
			models = config.DefaultModels
		}
		var scOpts []structured.Option
		if o.attemptTimeout > 0 {
			scOpts = append(scOpts, structured.WithAttemptTimeout(o.attemptTimeout))
		}
		sc = structured.New(o.backend, models, scOpts...)
	}

	return &Extractor{
		engine:        engine.New(sc),
		referenceTime: o.referenceTime,
		horizonWeeks:  o.horizonWeeks,
	}, nil
}

// ExtractText extracts events from plain text. Extraction degrades rather
// than fails: when the structured backend is absent or exhausted, the
// result comes from heuristic date scanning.
func (x *Extractor) ExtractText(ctx context.Context, text string) []Event {
	doc := model.RawDocument{Content: []byte(text), Kind: model.KindText}
	return x.convert(x.engine.Extract(ctx, doc, x.ref()))
}

// ExtractImage extracts events from image bytes. mime may be empty, in
// which case it is sniffed from the data. Images require a configured
// backend; without one the result is empty.
func (x *Extractor) ExtractImage(ctx context.Context, data []byte, mime string) []Event {
	doc := model.RawDocument{Content: data, Kind: model.KindImage, MIME: mime}
	return x.convert(x.engine.Extract(ctx, doc, x.ref()))
}

// ExtractFile detects the document kind from the file name and content,
// then extracts events from it. Binary PDFs are rejected; run text
// extraction first and pass the result.
func (x *Extractor) ExtractFile(ctx context.Context, name string, data []byte) ([]Event, error) {
	doc, err := document.Detect(name, data)
	if err != nil {
		return nil, fmt.Errorf("syllacal: %w", err)
	}
	return x.convert(x.engine.Extract(ctx, doc, x.ref())), nil
}

// SuggestCalendarName asks the backend for a short calendar name describing
// the document. Degrades to a generic default when no backend is configured
// or the suggestion is unusable.
func (x *Extractor) SuggestCalendarName(ctx context.Context, text string) string {
	doc := model.RawDocument{Content: []byte(text), Kind: model.KindText}
	return x.engine.SuggestCalendarName(ctx, doc)
}

func (x *Extractor) ref() time.Time {
	if !x.referenceTime.IsZero() {
		return x.referenceTime
	}
	return time.Now()
}

// convert maps internal events to the public type, attaching an encoded
// weekly rule to recurring events.
func (x *Extractor) convert(events []model.Event) []Event {
	out := make([]Event, len(events))
	for i, ev := range events {
		pe := Event{
			Title:       ev.Title,
			Start:       ev.Start,
			End:         ev.End,
			Description: ev.Description,
			Type:        string(ev.Type),
			AllDay:      ev.AllDay,
			Recurring:   ev.Recurring,
		}
		if ev.Location != nil {
			pe.Location = *ev.Location
		}
		if ev.Recurring {
			pe.RRule = recurrence.Build(ev, x.horizonWeeks).Encode()
		}
		out[i] = pe
	}
	return out
}

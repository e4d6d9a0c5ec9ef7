package syllacal

import (
	"time"

	"github.com/hamza-els/CalHacks/internal/backend"
	"github.com/hamza-els/CalHacks/internal/recurrence"
)

type options struct {
	backend        backend.Backend
	backendErr     error
	models         []string
	attemptTimeout time.Duration
	referenceTime  time.Time
	horizonWeeks   int
}

// Option configures an Extractor.
type Option func(*options)

// WithGemini configures the Gemini structured extraction backend with the
// given API key. Without a backend option the extractor runs in
// heuristic-only mode.
func WithGemini(apiKey string) Option {
	return func(o *options) {
		ctor, err := backend.Get("gemini")
		if err != nil {
			o.backendErr = err
			return
		}
		o.backend, o.backendErr = ctor(backend.Settings{APIKey: apiKey})
	}
}

// WithBackend sets a custom structured extraction backend.
func WithBackend(b backend.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithModels sets the model cascade tried in order until one yields a
// parseable response. Default: the Gemini cascade from fastest to most
// capable.
func WithModels(models []string) Option {
	return func(o *options) { o.models = models }
}

// WithAttemptTimeout bounds each per-model extraction attempt. Default: 5m.
func WithAttemptTimeout(d time.Duration) Option {
	return func(o *options) { o.attemptTimeout = d }
}

// WithReferenceTime anchors relative date expressions like "next Friday".
// Default: time.Now() at each extraction call.
func WithReferenceTime(ref time.Time) Option {
	return func(o *options) { o.referenceTime = ref }
}

// WithHorizonWeeks bounds recurrence rules attached to recurring events.
// Default: 16.
func WithHorizonWeeks(weeks int) Option {
	return func(o *options) { o.horizonWeeks = weeks }
}

func defaultOptions() options {
	return options{
		horizonWeeks: recurrence.DefaultHorizonWeeks,
	}
}

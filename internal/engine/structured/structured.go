// Package structured implements the language-model extraction path: a fixed
// instruction template sent through an ordered cascade of backend model
// identifiers, with tolerant parsing of the JSON candidate array.
package structured

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hamza-els/CalHacks/internal/backend"
	"github.com/hamza-els/CalHacks/internal/model"
)

var (
	// ErrNoBackend means no language-model backend is configured. Callers
	// fall back to the heuristic extractor; this is not surfaced as an error.
	ErrNoBackend = errors.New("structured: no backend configured")

	// ErrAllBackendsFailed means every configured model identifier was tried
	// and none produced a parseable response.
	ErrAllBackendsFailed = errors.New("structured: all backend models failed")

	// ErrMalformedResponse marks a response that is not valid JSON after
	// code-fence stripping. It fails one model attempt, not the cascade.
	ErrMalformedResponse = errors.New("structured: response is not valid JSON")
)

const defaultAttemptTimeout = 300 * time.Second

// defaultCalendarName is used when no course name can be extracted.
const defaultCalendarName = "Syllabus Events"

// Client drives the backend cascade for one document at a time. Each call is
// independent; a Client may be shared across extractions.
type Client struct {
	backend        backend.Backend
	models         []string
	attemptTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithAttemptTimeout bounds a single model attempt. Default: 300s.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

// New creates a Client over the given backend and ordered model cascade.
func New(b backend.Backend, models []string, opts ...Option) *Client {
	c := &Client{
		backend:        b,
		models:         models,
		attemptTimeout: defaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract sends the document through the cascade and returns the candidate
// descriptors from the first model that yields parseable JSON. Attempts are
// strictly sequential: one identifier runs to completion (success, failure,
// or timeout) before the next is contacted.
func (c *Client) Extract(ctx context.Context, doc model.RawDocument, ref time.Time) ([]model.CandidateEvent, error) {
	if c == nil || c.backend == nil || len(c.models) == 0 {
		return nil, ErrNoBackend
	}
	if ref.IsZero() {
		ref = time.Now()
	}

	req := backend.Request{}
	if doc.IsImage() {
		data, mime, err := prepareImage(doc.Content, doc.MIME)
		if err != nil {
			return nil, err
		}
		req.Prompt = imagePrompt(ref)
		req.ImageData = data
		req.ImageMIME = mime
	} else {
		req.Prompt = textPrompt(doc.Text(), ref)
	}

	raw, err := c.cascade(ctx, req, func(response string) error {
		_, perr := parseCandidates(response)
		return perr
	})
	if err != nil {
		return nil, err
	}
	candidates, _ := parseCandidates(raw)
	return candidates, nil
}

// SuggestCalendarName asks the cascade for a short course code or title from
// the first ~1300 characters of the document. Failure degrades to a default
// name; it never aborts the pipeline.
func (c *Client) SuggestCalendarName(ctx context.Context, docText string) string {
	if c == nil || c.backend == nil || len(c.models) == 0 {
		return defaultCalendarName
	}

	snippet := docText
	if len(snippet) > 1300 {
		snippet = snippet[:1300]
	}

	raw, err := c.cascade(ctx, backend.Request{Prompt: namingPrompt(snippet)}, func(response string) error {
		if _, ok := validCalendarName(response); !ok {
			return errors.New("structured: unusable calendar name")
		}
		return nil
	})
	if err != nil {
		slog.Debug("calendar naming degraded to default", "error", err)
		return defaultCalendarName
	}
	name, _ := validCalendarName(raw)
	return name
}

// cascade tries each model identifier in order, short-circuiting on the
// first response that satisfies accept. Every failure mode (transport
// error, timeout, rate limit, rejected response) moves to the next
// identifier; only exhaustion raises ErrAllBackendsFailed.
func (c *Client) cascade(ctx context.Context, req backend.Request, accept func(string) error) (string, error) {
	var lastErr error
	for _, name := range c.models {
		attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		raw, err := c.backend.Generate(attemptCtx, name, req)
		cancel()

		if err != nil {
			slog.Warn("backend model attempt failed", "model", name, "error", err)
			lastErr = err
			continue
		}
		if err := accept(raw); err != nil {
			slog.Warn("backend response rejected", "model", name, "error", err)
			lastErr = err
			continue
		}

		slog.Debug("backend model succeeded", "model", name)
		return raw, nil
	}
	return "", fmt.Errorf("%w (tried %d): %v", ErrAllBackendsFailed, len(c.models), lastErr)
}

// parseCandidates strips code-fence markup and unmarshals the JSON array.
func parseCandidates(response string) ([]model.CandidateEvent, error) {
	cleaned := stripCodeFences(response)

	var candidates []model.CandidateEvent
	if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return candidates, nil
}

// stripCodeFences removes an enclosing ```json ... ``` (or bare ```) wrapper
// that models emit despite instructions.
func stripCodeFences(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

// validCalendarName trims and validates a suggested name: max 30 characters
// and none of the generic placeholders.
func validCalendarName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, `"'`)
	if name == "" || len(name) > 30 {
		return "", false
	}
	switch strings.ToLower(name) {
	case "syllabus", "course", "class", "schedule":
		return "", false
	}
	return name, true
}

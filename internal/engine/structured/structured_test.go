package structured

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamza-els/CalHacks/internal/backend"
	"github.com/hamza-els/CalHacks/internal/model"
)

var ref = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

const validJSON = `[{"type":"task","title":"Problem Set 3","start_text":"due Friday Oct 10","end_text":"0","description":"Assignment Friday","recurring":false}]`

// fakeBackend scripts a response or error per model identifier.
type fakeBackend struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
	block     bool // when true, Generate blocks until ctx is done
}

func (f *fakeBackend) Generate(ctx context.Context, model string, req backend.Request) (string, error) {
	f.calls = append(f.calls, model)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err, ok := f.errs[model]; ok {
		return "", err
	}
	return f.responses[model], nil
}

func textDoc(s string) model.RawDocument {
	return model.RawDocument{Content: []byte(s), Kind: model.KindText}
}

func TestExtractNoBackend(t *testing.T) {
	var c *Client
	if _, err := c.Extract(context.Background(), textDoc("x"), ref); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("nil client: expected ErrNoBackend, got %v", err)
	}

	c = New(nil, nil)
	if _, err := c.Extract(context.Background(), textDoc("x"), ref); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("empty client: expected ErrNoBackend, got %v", err)
	}
}

func TestExtractCascadeFallsThroughToThirdModel(t *testing.T) {
	fb := &fakeBackend{
		errs:      map[string]error{"m1": errors.New("rate limited"), "m2": errors.New("timeout")},
		responses: map[string]string{"m3": validJSON},
	}
	c := New(fb, []string{"m1", "m2", "m3"})

	candidates, err := c.Extract(context.Background(), textDoc("syllabus"), ref)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Title != "Problem Set 3" {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
	if len(fb.calls) != 3 {
		t.Fatalf("expected 3 sequential attempts, got %v", fb.calls)
	}
	// No partial output from the failed attempts may leak through.
	if candidates[0].Type != model.TypeTask {
		t.Fatalf("expected the third model's payload, got %+v", candidates[0])
	}
}

func TestExtractAllModelsExhausted(t *testing.T) {
	fb := &fakeBackend{errs: map[string]error{
		"m1": errors.New("boom"),
		"m2": errors.New("boom"),
	}}
	c := New(fb, []string{"m1", "m2"})

	_, err := c.Extract(context.Background(), textDoc("syllabus"), ref)
	if !errors.Is(err, ErrAllBackendsFailed) {
		t.Fatalf("expected ErrAllBackendsFailed, got %v", err)
	}
}

func TestExtractMalformedJSONFailsThatModel(t *testing.T) {
	fb := &fakeBackend{responses: map[string]string{
		"m1": "I could not find any events, sorry!",
		"m2": validJSON,
	}}
	c := New(fb, []string{"m1", "m2"})

	candidates, err := c.Extract(context.Background(), textDoc("syllabus"), ref)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected the second model's candidates, got %+v", candidates)
	}
}

func TestExtractStripsCodeFences(t *testing.T) {
	cases := map[string]string{
		"json fence": "```json\n" + validJSON + "\n```",
		"bare fence": "```\n" + validJSON + "\n```",
		"prose then fence": "Here you go:\n```json\n" + validJSON + "\n```\nLet me know!",
	}
	for name, response := range cases {
		fb := &fakeBackend{responses: map[string]string{"m": response}}
		c := New(fb, []string{"m"})
		candidates, err := c.Extract(context.Background(), textDoc("x"), ref)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if len(candidates) != 1 {
			t.Errorf("%s: expected 1 candidate, got %d", name, len(candidates))
		}
	}
}

func TestExtractAttemptTimeoutMovesOn(t *testing.T) {
	blocking := &fakeBackend{block: true}
	c := New(blocking, []string{"m1"}, WithAttemptTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := c.Extract(context.Background(), textDoc("x"), ref)
	if !errors.Is(err, ErrAllBackendsFailed) {
		t.Fatalf("expected ErrAllBackendsFailed after timeout, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("attempt was not bounded by the per-attempt timeout")
	}
}

func TestSuggestCalendarName(t *testing.T) {
	fb := &fakeBackend{responses: map[string]string{"m": `"CS 61A"`}}
	c := New(fb, []string{"m"})
	if got := c.SuggestCalendarName(context.Background(), "CS 61A: Structure and Interpretation"); got != "CS 61A" {
		t.Fatalf("expected CS 61A, got %q", got)
	}
}

func TestSuggestCalendarNameDegradesToDefault(t *testing.T) {
	cases := map[string]*fakeBackend{
		"generic answer": {responses: map[string]string{"m": "syllabus"}},
		"too long":       {responses: map[string]string{"m": "An Extremely Long Course Title That Overflows"}},
		"backend error":  {errs: map[string]error{"m": errors.New("boom")}},
	}
	for name, fb := range cases {
		c := New(fb, []string{"m"})
		if got := c.SuggestCalendarName(context.Background(), "content"); got != defaultCalendarName {
			t.Errorf("%s: expected default name, got %q", name, got)
		}
	}
}

func TestStripCodeFencesPassthrough(t *testing.T) {
	if got := stripCodeFences("  [1,2]  "); got != "[1,2]" {
		t.Fatalf("expected trimmed passthrough, got %q", got)
	}
}

package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hamza-els/CalHacks/internal/backend"
	"github.com/hamza-els/CalHacks/internal/engine/structured"
	"github.com/hamza-els/CalHacks/internal/model"
)

var ref = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

type scriptedBackend struct {
	response string
	err      error
}

func (s *scriptedBackend) Generate(ctx context.Context, model string, req backend.Request) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func textDoc(s string) model.RawDocument {
	return model.RawDocument{Content: []byte(s), Kind: model.KindText}
}

func TestExtractNoBackendUsesHeuristic(t *testing.T) {
	e := New(nil)
	events := e.Extract(context.Background(), textDoc("Midterm exam on March 5, 2026 at 2pm, Room 101"), ref)
	if len(events) == 0 {
		t.Fatal("expected heuristic events")
	}
	if !strings.Contains(events[0].Title, "Midterm exam") {
		t.Errorf("unexpected title %q", events[0].Title)
	}
	if events[0].Start.Hour() != 14 || events[0].End.Sub(events[0].Start) != time.Hour {
		t.Errorf("unexpected span %v..%v", events[0].Start, events[0].End)
	}
}

func TestExtractStructuredPath(t *testing.T) {
	sb := &scriptedBackend{response: `[
		{"type":"task","title":"Problem Set 3","start_text":"due Friday Oct 10","end_text":"0","description":"Assignment Friday","recurring":false},
		{"type":"event","title":"","start_text":"","end_text":"1 hour"}
	]`}
	e := New(structured.New(sb, []string{"m"}))

	events := e.Extract(context.Background(), textDoc("syllabus text"), ref)
	if len(events) != 1 {
		t.Fatalf("expected 1 event (second candidate dropped), got %d", len(events))
	}
	ev := events[0]
	if ev.Title != "Problem Set 3" || !ev.AllDay || !ev.Start.Equal(ev.End) {
		t.Fatalf("unexpected normalized task: %+v", ev)
	}
}

func TestExtractFallsBackWhenCascadeExhausted(t *testing.T) {
	sb := &scriptedBackend{err: errors.New("unreachable")}
	e := New(structured.New(sb, []string{"m1", "m2"}))

	events := e.Extract(context.Background(), textDoc("Quiz on March 5, 2026 at 2pm"), ref)
	if len(events) == 0 {
		t.Fatal("expected heuristic fallback events")
	}
	if events[0].End.Sub(events[0].Start) != time.Hour {
		t.Error("fallback events carry the heuristic default duration")
	}
}

func TestExtractFallbackCannotFail(t *testing.T) {
	sb := &scriptedBackend{response: "not json at all"}
	e := New(structured.New(sb, []string{"m"}))

	events := e.Extract(context.Background(), textDoc("no dates in this text"), ref)
	if len(events) != 0 {
		t.Fatalf("expected empty result, got %+v", events)
	}
}

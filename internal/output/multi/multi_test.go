package multi

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hamza-els/CalHacks/internal/model"
)

// mockOutput records calls for test assertions.
type mockOutput struct {
	events []model.Event
	closed bool
	err    error // if set, Write and Close return this error
}

func (m *mockOutput) Write(_ context.Context, event model.Event) error {
	m.events = append(m.events, event)
	return m.err
}

func (m *mockOutput) Close() error {
	m.closed = true
	return m.err
}

func testEvent(title string) model.Event {
	return model.Event{
		Title: title,
		Start: time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC),
		Type:  model.TypeEvent,
	}
}

func TestFanOutDeliversToAll(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	c := &mockOutput{}
	m := New(a, b, c)

	ev := testEvent("Midterm 1")
	if err := m.Write(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, out := range []*mockOutput{a, b, c} {
		if len(out.events) != 1 {
			t.Errorf("output %d: got %d events, want 1", i, len(out.events))
		}
		if out.events[0].Title != "Midterm 1" {
			t.Errorf("output %d: got title %q, want %q", i, out.events[0].Title, "Midterm 1")
		}
	}
}

func TestErrorDoesNotPreventDelivery(t *testing.T) {
	failing := &mockOutput{err: errors.New("disk full")}
	healthy := &mockOutput{}
	m := New(failing, healthy)

	err := m.Write(context.Background(), testEvent("Final"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// Healthy output still received the event despite earlier failure.
	if len(healthy.events) != 1 {
		t.Fatalf("healthy output got %d events, want 1", len(healthy.events))
	}
	if len(failing.events) != 1 {
		t.Fatalf("failing output got %d events, want 1", len(failing.events))
	}
}

func TestCloseCallsAllOutputs(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	m := New(a, b)

	if err := m.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.closed || !b.closed {
		t.Errorf("Close not called on all outputs: a=%v b=%v", a.closed, b.closed)
	}
}

func TestWriteStopsOnCancelledContext(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	m := New(a, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Write(ctx, testEvent("Lecture"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(a.events) != 0 || len(b.events) != 0 {
		t.Error("no output should receive events after cancellation")
	}
}

func TestErrorsNameTheFailingOutput(t *testing.T) {
	failing := &mockOutput{err: errors.New("disk full")}
	m := New(&mockOutput{}, failing)

	err := m.Write(context.Background(), testEvent("Final"))
	if err == nil || !strings.Contains(err.Error(), "output 1") {
		t.Fatalf("expected error naming output 1, got %v", err)
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	a := &mockOutput{err: errors.New("err-a")}
	b := &mockOutput{err: errors.New("err-b")}
	m := New(a, b)

	err := m.Close()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !a.closed || !b.closed {
		t.Error("Close should be called on all outputs even when errors occur")
	}
}

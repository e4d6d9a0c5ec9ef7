package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hamza-els/CalHacks/internal/model"
)

func TestWriteEncodesOneEventPerLine(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, false)

	events := []model.Event{
		{Title: "Midterm 1", Start: time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC), End: time.Date(2026, 3, 5, 16, 0, 0, 0, time.UTC), Type: model.TypeEvent},
		{Title: "Essay due", Start: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), Type: model.TypeTask, AllDay: true},
	}
	for _, ev := range events {
		if err := out.Write(context.Background(), ev); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var got model.Event
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if got.Title != "Midterm 1" || got.Type != model.TypeEvent {
		t.Errorf("decoded event = %+v", got)
	}
}

func TestPrettyOutputIsIndented(t *testing.T) {
	var buf bytes.Buffer
	out := NewWriter(&buf, true)

	ev := model.Event{
		Title: "Final",
		Start: time.Date(2026, 5, 12, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 5, 12, 11, 0, 0, 0, time.UTC),
		Type:  model.TypeEvent,
	}
	if err := out.Write(context.Background(), ev); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if !strings.Contains(buf.String(), "\n  \"title\"") {
		t.Errorf("pretty output not indented:\n%s", buf.String())
	}
}

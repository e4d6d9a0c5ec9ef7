package output

import (
	"context"

	"github.com/hamza-els/CalHacks/internal/model"
)

// Output defines the interface for materialized event destinations.
type Output interface {
	Write(ctx context.Context, event model.Event) error
	Close() error
}

// Package multi fans events out to several sinks at once, so one extraction
// run can feed stdout, an ICS file, and a webhook together.
package multi

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamza-els/CalHacks/internal/model"
	"github.com/hamza-els/CalHacks/internal/output"
)

// Multi delivers each event to every wrapped output sequentially. A failing
// output does not stop delivery to the others; its error is collected and
// annotated with the output's position.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers the event to every wrapped output, stopping early only when
// ctx is cancelled. Collected errors are joined.
func (m *Multi) Write(ctx context.Context, event model.Event) error {
	var errs []error
	for i, o := range m.outputs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := o.Write(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

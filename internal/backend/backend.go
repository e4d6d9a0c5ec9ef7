// Package backend defines the language-model backend boundary: a uniform
// completion call that the structured extraction cascade drives with an
// ordered list of model identifiers. Providers register themselves the same
// way log connectors do in a pluggable pipeline.
package backend

import (
	"context"
	"fmt"
)

// Request carries one extraction attempt to a backend. ImageData is nil for
// text-only documents; when set, the provider must make a multimodal call.
type Request struct {
	Prompt    string
	ImageData []byte
	ImageMIME string
}

// Backend is a language-model completion service. Generate runs a single
// attempt against one model identifier and returns the raw response text.
// Implementations must honor ctx cancellation and deadline; a hung network
// call may never outlive the caller's per-attempt budget.
type Backend interface {
	Generate(ctx context.Context, model string, req Request) (string, error)
}

// Settings holds provider connection settings.
type Settings struct {
	APIKey string
	// Endpoint overrides the provider's default API base URL.
	Endpoint string
}

// Constructor creates a Backend from settings.
type Constructor func(s Settings) (Backend, error)

var registry = map[string]Constructor{}

// Register adds a backend constructor under the given provider name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the backend constructor for the given provider name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend provider: %s", name)
	}
	return ctor, nil
}

// Providers returns the names of all registered backend providers.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Package grounding resolves natural-language spatial descriptions into
// concrete on-screen positions by calling an external locator service.
package grounding

import (
	"context"

	"github.com/uiact/actiongraph/pkg/schema"
)

// Locator resolves a target description plus an observation to a position.
type Locator interface {
	Locate(ctx context.Context, description string, obs *schema.Observation) (schema.Point, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context, description string, obs *schema.Observation) (schema.Point, error)

// Locate calls the wrapped function.
func (f LocatorFunc) Locate(ctx context.Context, description string, obs *schema.Observation) (schema.Point, error) {
	return f(ctx, description, obs)
}

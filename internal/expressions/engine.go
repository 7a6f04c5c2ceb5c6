package expressions

import "context"

// Engine evaluates expressions against an argument scope.
// Two implementations: Expr (render templates), GoJQ (descriptor extraction).
type Engine interface {
	Name() string
	Evaluate(ctx context.Context, expression string, data map[string]any) (any, error)
}

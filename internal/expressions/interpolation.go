package expressions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uiact/actiongraph/pkg/schema"
)

// Interpolator resolves ${{...}} references in render templates. The inner
// expression is evaluated by the Expr engine against a scope exposing the
// current argument values under "args".
type Interpolator struct {
	engine Engine
}

// NewInterpolator creates an Interpolator backed by a fresh Expr engine.
func NewInterpolator() *Interpolator {
	return &Interpolator{engine: NewExprEngine()}
}

// Resolve scans template for ${{...}} tokens and replaces each with the value
// of the inner expression evaluated against args. Plain text passes through
// untouched.
func (interp *Interpolator) Resolve(ctx context.Context, template string, args map[string]any) (string, error) {
	var result strings.Builder
	result.Grow(len(template))

	scope := map[string]any{"args": args}

	i := 0
	for i < len(template) {
		idx := strings.Index(template[i:], "${{")
		if idx == -1 {
			result.WriteString(template[i:])
			break
		}

		result.WriteString(template[i : i+idx])
		start := i + idx + 3 // skip "${{".

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			return "", schema.NewError(schema.ErrCodeInterpolation, "unclosed ${{ expression")
		}
		end += start

		expr := strings.TrimSpace(template[start:end])
		if expr == "" {
			return "", schema.NewError(schema.ErrCodeInterpolation, "empty variable reference: ${{  }}")
		}
		if strings.Contains(expr, "${{") {
			return "", schema.NewError(schema.ErrCodeInterpolation,
				"nested interpolation not allowed: ${{...}} cannot contain ${{")
		}

		val, err := interp.engine.Evaluate(ctx, expr, scope)
		if err != nil {
			return "", err
		}

		result.WriteString(marshalInline(val))
		i = end + 2 // skip "}}".
	}

	return result.String(), nil
}

// HasInterpolation checks if a template contains any ${{...}} references.
func HasInterpolation(template string) bool {
	return strings.Contains(template, "${{")
}

// marshalInline converts a resolved value into its inline text representation.
// Strings are embedded without extra quotes; complex types are JSON-encoded.
func marshalInline(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%v", v)
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

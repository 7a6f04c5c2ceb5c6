package catalog

import (
	"context"
	"encoding/json"

	"github.com/uiact/actiongraph/internal/expressions"
	"github.com/uiact/actiongraph/pkg/schema"
)

// Extractor pulls action descriptors out of arbitrary task documents with a
// jq query, for producers that wrap descriptors in their own envelopes.
type Extractor struct {
	engine *expressions.GoJQEngine
}

// NewExtractor creates an Extractor with a fresh jq engine.
func NewExtractor() *Extractor {
	return &Extractor{engine: expressions.NewGoJQEngine()}
}

// Extract evaluates query against the JSON document and returns the matching
// descriptor mappings. The query may yield a single object, an array of
// objects, or a stream of objects.
func (x *Extractor) Extract(ctx context.Context, doc []byte, query string) ([]map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(doc, &data); err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeCatalog,
			"task document parse failed: %s", err.Error()).WithCause(err)
	}

	out, err := x.engine.Evaluate(ctx, query, data)
	if err != nil {
		return nil, err
	}

	return collectDescriptors(out)
}

// collectDescriptors normalizes a jq result into a descriptor list.
func collectDescriptors(out any) ([]map[string]any, error) {
	switch v := out.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		descs := make([]map[string]any, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, schema.NewErrorf(schema.ErrCodeCatalog,
					"query result %d is %T, want object", i, item)
			}
			descs = append(descs, m)
		}
		return descs, nil
	default:
		return nil, schema.NewErrorf(schema.ErrCodeCatalog,
			"query result is %T, want object or array of objects", out)
	}
}

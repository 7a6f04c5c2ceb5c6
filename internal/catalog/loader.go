package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/uiact/actiongraph/internal/action"
	"github.com/uiact/actiongraph/internal/graph"
	"github.com/uiact/actiongraph/pkg/schema"
)

// Loader turns recipe documents into composite actions using an action
// registry for descriptor dispatch. Safe for concurrent use once built.
type Loader struct {
	registry *action.Registry
	alloc    action.Allocator
	schema   *jsonschema.Schema
}

// NewLoader creates a Loader with the recipe schema pre-compiled.
// The allocator is handed to every composite the loader builds.
func NewLoader(registry *action.Registry, alloc action.Allocator) (*Loader, error) {
	c := jsonschema.NewCompiler()

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(recipeSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal recipe schema: %w", err)
	}
	if err := c.AddResource("https://actiongraph.dev/schemas/recipe.json", doc); err != nil {
		return nil, fmt.Errorf("add recipe schema resource: %w", err)
	}
	compiled, err := c.Compile("https://actiongraph.dev/schemas/recipe.json")
	if err != nil {
		return nil, fmt.Errorf("compile recipe schema: %w", err)
	}

	return &Loader{registry: registry, alloc: alloc, schema: compiled}, nil
}

// LoadYAML parses, validates and builds a composite from a YAML recipe
// document.
func (l *Loader) LoadYAML(data []byte) (*graph.Composite, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeCatalog,
			"recipe YAML parse failed: %s", err.Error()).WithCause(err)
	}
	return l.load(raw)
}

// LoadJSON parses, validates and builds a composite from a JSON recipe
// document.
func (l *Loader) LoadJSON(data []byte) (*graph.Composite, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeCatalog,
			"recipe JSON parse failed: %s", err.Error()).WithCause(err)
	}
	return l.load(raw)
}

// load validates a raw document and builds the composite.
func (l *Loader) load(raw map[string]any) (*graph.Composite, error) {
	if err := l.validate(raw); err != nil {
		return nil, err
	}

	var recipe Recipe
	if err := mapstructure.Decode(raw, &recipe); err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeCatalog,
			"recipe decode failed: %s", err.Error()).WithCause(err)
	}
	return l.Build(&recipe)
}

// Build constructs a composite from an already-decoded recipe: one AddPath
// call per branch, each step dispatched through the registry.
func (l *Loader) Build(recipe *Recipe) (*graph.Composite, error) {
	opts := []graph.CompositeOption{graph.WithDescription(recipe.Description)}
	if l.alloc != nil {
		opts = append(opts, graph.WithAllocator(l.alloc))
	}
	c := graph.NewComposite(recipe.Name, opts...)

	for _, branch := range recipe.Branches {
		seq := make([]graph.Node, 0, len(branch.Steps))
		for _, step := range branch.Steps {
			p, err := l.registry.FromDescriptor(step)
			if err != nil {
				return nil, schema.NewErrorf(schema.ErrCodeCatalog,
					"recipe %q branch %q: %s", recipe.Name, branch.Label, err.Error()).WithCause(err)
			}
			seq = append(seq, p)
		}
		if err := c.AddPath(branch.Label, seq...); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// validate checks a raw document against the recipe JSON Schema.
// Numbers are normalized through a JSON round-trip so YAML integers
// validate the same way JSON ones do.
func (l *Loader) validate(raw map[string]any) error {
	doc, err := toJSONValue(raw)
	if err != nil {
		return schema.NewError(schema.ErrCodeCatalog, "recipe serialization failed").WithCause(err)
	}
	if err := l.schema.Validate(doc); err != nil {
		return schema.NewErrorf(schema.ErrCodeCatalog,
			"recipe validation failed: %s", err.Error()).WithCause(err)
	}
	return nil
}

// toJSONValue round-trips a value through JSON into the representation the
// jsonschema package validates.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
}

package action

import (
	"log/slog"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/uiact/actiongraph/pkg/schema"
)

// Constructor builds a Primitive from flattened descriptor fields.
type Constructor func(fields map[string]any) (*Primitive, error)

// Registry maps action kinds to constructors. Unknown kinds dispatch to a
// fallback constructor so malformed descriptors degrade instead of aborting
// ingestion. Thread-safe.
type Registry struct {
	mu       sync.RWMutex
	ctors    map[string]Constructor
	fallback Constructor
	ignore   map[string]bool
	alloc    Allocator
	logger   *slog.Logger
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// WithAllocator sets the allocator handed to the default constructors.
func WithAllocator(alloc Allocator) RegistryOption {
	return func(r *Registry) { r.alloc = alloc }
}

// WithIgnoreFields sets the bookkeeping field names stripped from descriptors
// before dispatch.
func WithIgnoreFields(names ...string) RegistryOption {
	return func(r *Registry) {
		r.ignore = make(map[string]bool, len(names))
		for _, n := range names {
			r.ignore[n] = true
		}
	}
}

// WithFallback replaces the default unknown-kind constructor.
func WithFallback(ctor Constructor) RegistryOption {
	return func(r *Registry) { r.fallback = ctor }
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry creates a Registry. Without options it uses the shared
// allocator, a default ignore-set, and an unknown-kind fallback that keeps
// the descriptor fields on a Primitive of kind "unknown".
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		ctors:  make(map[string]Constructor),
		ignore: map[string]bool{"source": true, "timestamp": true, "trace_id": true},
		alloc:  DefaultAllocator(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fallback == nil {
		r.fallback = func(fields map[string]any) (*Primitive, error) {
			return NewPrimitive(KindUnknown, r.alloc, fields), nil
		}
	}
	return r
}

// Register records ctor under kind. The last registration for a kind wins.
func (r *Registry) Register(kind string, ctor Constructor) error {
	if kind == "" {
		return schema.NewError(schema.ErrCodeValidation, "action kind is empty")
	}
	if ctor == nil {
		return schema.NewError(schema.ErrCodeValidation, "constructor is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ctors[kind]; exists {
		r.logger.Debug("overriding registered action kind", slog.String("kind", kind))
	}
	r.ctors[kind] = ctor
	return nil
}

// RegisterDefault records a plain constructor for kind: every field becomes a
// value slot and the given template drives rendering.
func (r *Registry) RegisterDefault(kind, template string) error {
	return r.Register(kind, func(fields map[string]any) (*Primitive, error) {
		return NewPrimitive(kind, r.alloc, fields, WithTemplate(template)), nil
	})
}

// New constructs a Primitive of the given kind. Unrecognized kinds dispatch
// to the fallback constructor instead of failing.
func (r *Registry) New(kind string, fields map[string]any) (*Primitive, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[kind]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug("unknown action kind, using fallback", slog.String("kind", kind))
		return r.fallback(fields)
	}
	return ctor(fields)
}

// FromDescriptor decodes a raw descriptor mapping, merges any nested
// "arguments" into the top-level fields, strips the ignore-set, and
// dispatches on the "kind" field.
func (r *Registry) FromDescriptor(raw map[string]any) (*Primitive, error) {
	var desc schema.Descriptor
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &desc,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"descriptor decoder: %s", err.Error()).WithCause(err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"malformed descriptor: %s", err.Error()).WithCause(err)
	}
	if desc.Kind == "" {
		return nil, schema.NewError(schema.ErrCodeValidation, "descriptor has no kind")
	}

	fields := desc.Fields()
	for name := range fields {
		if r.ignore[name] {
			delete(fields, name)
		}
	}

	return r.New(desc.Kind, fields)
}

// Has checks if a kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[kind]
	return ok
}

// Kinds returns registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		kinds = append(kinds, k)
	}
	sortStrings(kinds)
	return kinds
}

// sortStrings sorts a slice of strings in-place using insertion sort.
// Used for small slices to avoid importing sort package.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		key := s[i]
		j := i - 1
		for j >= 0 && s[j] > key {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = key
	}
}

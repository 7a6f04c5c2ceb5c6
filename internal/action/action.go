// Package action provides the primitive automation step model: identity
// allocation, argument slots, the kind-keyed constructor registry, and the
// grounding/render hooks that connect a step to its external collaborators.
package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/uiact/actiongraph/internal/expressions"
	"github.com/uiact/actiongraph/internal/slot"
	"github.com/uiact/actiongraph/pkg/schema"
)

// Names never wrapped as argument slots.
var reservedNames = map[string]bool{
	"kind": true,
	"id":   true,
	"name": true,
}

// PositionArg is the spatial argument name grounding resolution writes to.
const PositionArg = "position"

// Locator resolves a natural-language target description plus an observation
// into a concrete on-screen position. Implemented by the grounding package.
type Locator interface {
	Locate(ctx context.Context, description string, obs *schema.Observation) (schema.Point, error)
}

// RenderFunc turns current argument values into a host-automation snippet.
type RenderFunc func(args map[string]any) (string, error)

// Primitive is an indivisible automation step: identity, kind, named argument
// slots, and a render hook.
type Primitive struct {
	id       string
	kind     string
	name     string
	args     map[string]*slot.Slot
	argOrder []string
	template string
	renderFn RenderFunc
}

// Option configures a Primitive at construction time.
type Option func(*Primitive)

// WithName overrides the default name (the id).
func WithName(name string) Option {
	return func(p *Primitive) { p.name = name }
}

// WithTemplate sets the render template. ${{args.x}} references resolve to
// current argument values at render time.
func WithTemplate(template string) Option {
	return func(p *Primitive) { p.template = template }
}

// WithRenderFunc sets a custom render hook, taking precedence over a template.
func WithRenderFunc(fn RenderFunc) Option {
	return func(p *Primitive) { p.renderFn = fn }
}

// WithSlot installs a pre-built slot for one argument, replacing the plain
// wrapping a fields entry would get.
func WithSlot(arg string, s *slot.Slot) Option {
	return func(p *Primitive) {
		if _, exists := p.args[arg]; !exists {
			p.argOrder = append(p.argOrder, arg)
		}
		p.args[arg] = s
	}
}

// NewPrimitive creates a Primitive of the given kind. Every non-reserved
// fields entry is wrapped as a value slot; the allocator assigns the id.
func NewPrimitive(kind string, alloc Allocator, fields map[string]any, opts ...Option) *Primitive {
	if alloc == nil {
		alloc = DefaultAllocator()
	}

	p := &Primitive{
		id:   alloc.Next(kind),
		kind: kind,
		args: make(map[string]*slot.Slot, len(fields)),
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if reservedNames[name] {
			continue
		}
		names = append(names, name)
	}
	sortStrings(names)

	for _, name := range names {
		p.args[name] = slot.New(fields[name], name)
		p.argOrder = append(p.argOrder, name)
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.name == "" {
		p.name = p.id
	}
	return p
}

// ID returns the action identity (kind + ordinal).
func (p *Primitive) ID() string { return p.id }

// Kind returns the action kind.
func (p *Primitive) Kind() string { return p.kind }

// Name returns the action name; defaults to the id.
func (p *Primitive) Name() string { return p.name }

// Arg returns the slot for the named argument, or nil when absent.
func (p *Primitive) Arg(name string) *slot.Slot {
	return p.args[name]
}

// Args returns argument names in deterministic order.
func (p *Primitive) Args() []string {
	out := make([]string, len(p.argOrder))
	copy(out, p.argOrder)
	return out
}

// ArgValues returns a snapshot of current argument values.
func (p *Primitive) ArgValues() map[string]any {
	vals := make(map[string]any, len(p.args))
	for name, s := range p.args {
		vals[name] = s.Get()
	}
	return vals
}

// RequiresGrounding reports whether the spatial argument exists but is unset.
func (p *Primitive) RequiresGrounding() bool {
	s, ok := p.args[PositionArg]
	return ok && !s.IsSet()
}

// Resolve asks the locator for a position matching the spatial argument's
// description and writes it into the slot. Locator errors surface untouched.
func (p *Primitive) Resolve(ctx context.Context, locator Locator, obs *schema.Observation) error {
	s, ok := p.args[PositionArg]
	if !ok {
		return schema.NewErrorf(schema.ErrCodeNotFound,
			"action %s has no %q argument", p.id, PositionArg).WithNode(p.id)
	}
	pt, err := locator.Locate(ctx, s.Description(), obs)
	if err != nil {
		return err
	}
	return s.Set(pt)
}

var renderInterp = expressions.NewInterpolator()

// Render produces the host-automation snippet for current argument values.
// Precedence: custom hook, then template interpolation, then a canonical
// kind(arg=value, ...) form. Pure with respect to the action's state.
func (p *Primitive) Render(ctx context.Context) (string, error) {
	vals := p.ArgValues()

	if p.renderFn != nil {
		out, err := p.renderFn(vals)
		if err != nil {
			return "", schema.NewErrorf(schema.ErrCodeRender,
				"render hook failed: %s", err.Error()).WithNode(p.id).WithCause(err)
		}
		return out, nil
	}

	if p.template != "" {
		out, err := renderInterp.Resolve(ctx, p.template, vals)
		if err != nil {
			return "", err
		}
		return out, nil
	}

	parts := make([]string, 0, len(p.argOrder))
	for _, name := range p.argOrder {
		parts = append(parts, fmt.Sprintf("%s=%v", name, vals[name]))
	}
	return fmt.Sprintf("%s(%s)", p.kind, strings.Join(parts, ", ")), nil
}

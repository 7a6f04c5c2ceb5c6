// Package slot provides the described value holder used for primitive action
// arguments. A Slot wraps one value with a human-readable description and an
// optional immutability guard; graph construction creates slots once and later
// stages (grounding, template rendering) read or overwrite their contents.
package slot

import (
	"fmt"
	"reflect"

	"github.com/uiact/actiongraph/pkg/schema"
)

// Slot holds one argument value with its description.
// A frozen slot rejects value writes but keeps its description mutable.
type Slot struct {
	value       any
	description string
	immutable   bool
}

// Option configures a Slot at construction time.
type Option func(*Slot)

// Immutable marks the slot frozen: subsequent Set calls fail.
func Immutable() Option {
	return func(s *Slot) { s.immutable = true }
}

// Mutable clears an inherited freeze in From.
func Mutable() Option {
	return func(s *Slot) { s.immutable = false }
}

// New creates a Slot holding value with the given description.
func New(value any, description string, opts ...Option) *Slot {
	s := &Slot{value: value, description: description}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// From creates a Slot inheriting value, description and immutability from an
// existing slot. Non-nil overrides replace the inherited fields.
func From(src *Slot, opts ...Option) *Slot {
	if src == nil {
		return New(nil, "", opts...)
	}
	s := &Slot{value: src.value, description: src.description, immutable: src.immutable}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithValue overrides the inherited value in From.
func WithValue(value any) Option {
	return func(s *Slot) { s.value = value }
}

// WithDescription overrides the inherited description in From.
func WithDescription(description string) Option {
	return func(s *Slot) { s.description = description }
}

// Get returns the wrapped value.
func (s *Slot) Get() any {
	return s.value
}

// Set replaces the wrapped value. Fails when the slot is frozen.
func (s *Slot) Set(value any) error {
	if s.immutable {
		return schema.NewErrorf(schema.ErrCodeImmutable,
			"slot %q is immutable", s.description)
	}
	s.value = value
	return nil
}

// Description returns the slot description.
func (s *Slot) Description() string {
	return s.description
}

// SetDescription updates the description. Allowed on frozen slots.
func (s *Slot) SetDescription(description string) {
	s.description = description
}

// Immutable reports whether the slot is frozen.
func (s *Slot) Immutable() bool {
	return s.immutable
}

// IsSet reports whether the slot holds a non-nil value.
func (s *Slot) IsSet() bool {
	return s.value != nil
}

// Equal compares the underlying value against other. When other is itself a
// *Slot the two wrapped values are compared, so slot-vs-slot and slot-vs-raw
// comparisons behave identically.
func (s *Slot) Equal(other any) bool {
	if o, ok := other.(*Slot); ok {
		other = o.value
	}
	return reflect.DeepEqual(s.value, other)
}

// String returns the wrapped value formatted as text, or "" for nil.
func (s *Slot) String() string {
	if s.value == nil {
		return ""
	}
	if str, ok := s.value.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", s.value)
}

// Float returns the wrapped value as a float64.
func (s *Slot) Float() (float64, bool) {
	switch v := s.value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Point returns the wrapped value as a schema.Point.
func (s *Slot) Point() (schema.Point, bool) {
	switch v := s.value.(type) {
	case schema.Point:
		return v, true
	case *schema.Point:
		if v != nil {
			return *v, true
		}
	}
	return schema.Point{}, false
}

// Strings returns the wrapped value as a string slice.
func (s *Slot) Strings() ([]string, bool) {
	switch v := s.value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

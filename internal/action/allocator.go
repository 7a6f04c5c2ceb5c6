package action

import (
	"fmt"
	"sync"
)

// Allocator hands out action IDs. IDs are unique per kind for the lifetime of
// the allocator: "click0", "click1", "type0", ...
// Injected at construction time so independent graph builds do not share
// counters; a process-wide default exists for convenience.
type Allocator interface {
	Next(kind string) string
}

// KindAllocator is the concrete thread-safe Allocator keyed by kind.
type KindAllocator struct {
	mu       sync.Mutex
	ordinals map[string]int
}

// NewKindAllocator creates an empty KindAllocator.
func NewKindAllocator() *KindAllocator {
	return &KindAllocator{
		ordinals: make(map[string]int),
	}
}

// Next returns the next ID for kind and advances its ordinal.
func (a *KindAllocator) Next(kind string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.ordinals[kind]
	a.ordinals[kind] = n + 1
	return fmt.Sprintf("%s%d", kind, n)
}

var defaultAllocator = NewKindAllocator()

// DefaultAllocator returns the shared process-wide allocator.
// Concurrent builds that need isolation should inject their own.
func DefaultAllocator() Allocator {
	return defaultAllocator
}

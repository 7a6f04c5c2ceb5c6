package action

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindAllocator_MonotonicPerKind(t *testing.T) {
	alloc := NewKindAllocator()

	assert.Equal(t, "click0", alloc.Next("click"))
	assert.Equal(t, "click1", alloc.Next("click"))
	assert.Equal(t, "type0", alloc.Next("type"))
	assert.Equal(t, "click2", alloc.Next("click"))
}

func TestKindAllocator_IndependentInstances(t *testing.T) {
	a := NewKindAllocator()
	b := NewKindAllocator()

	assert.Equal(t, "click0", a.Next("click"))
	assert.Equal(t, "click0", b.Next("click"))
}

func TestKindAllocator_ConcurrentUnique(t *testing.T) {
	alloc := NewKindAllocator()
	const n = 200

	var mu sync.Mutex
	seen := make(map[string]bool, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			id := alloc.Next("click")
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

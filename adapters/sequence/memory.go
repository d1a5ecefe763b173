package sequence

import (
	"context"
	"sync"

	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// MemoryAllocator is an in-process implementation of the SequenceAllocator
// interface, for tests and the memory backend. It only guards against
// concurrent goroutines, not concurrent processes.
type MemoryAllocator struct {
	counters map[string]int64
	mu       sync.Mutex
}

var _ ports.SequenceAllocator = (*MemoryAllocator)(nil)

// NewMemoryAllocator creates a new in-memory allocator.
func NewMemoryAllocator() *MemoryAllocator {
	return &MemoryAllocator{
		counters: make(map[string]int64),
	}
}

// Next returns the next value for the named counter.
func (a *MemoryAllocator) Next(ctx context.Context, name string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counters[name]++
	return a.counters[name], nil
}

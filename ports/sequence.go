package ports

import "context"

// SequenceAllocator mints strictly increasing surrogate IDs per named
// counter. The first allocation for a new name returns 1. Concurrent callers
// for the same name never receive the same value; the backing store performs
// the read-increment-return as one atomic operation.
type SequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
}

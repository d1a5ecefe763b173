package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// RedisAllocator implements the SequenceAllocator interface with INCR, which
// is natively atomic: the key is created at 0 on first touch and the
// post-increment value is returned, so the first allocation yields 1.
type RedisAllocator struct {
	client *redis.Client
	prefix string
}

var _ ports.SequenceAllocator = (*RedisAllocator)(nil)

// NewRedisAllocator creates a new Redis-backed allocator.
func NewRedisAllocator(client *redis.Client) *RedisAllocator {
	return &RedisAllocator{
		client: client,
		prefix: "seq:",
	}
}

// Next returns the next value for the named counter.
func (a *RedisAllocator) Next(ctx context.Context, name string) (int64, error) {
	value, err := a.client.Incr(ctx, a.prefix+name).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate %q: %w", name, core.ErrSequenceUnavailable)
	}
	return value, nil
}

package priors

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sharedStoreKey is the single key the table is published and read under.
// One key is enough: the table is small and every sibling matchup in a
// benchmark run shares the same built-in defaults plus the latest refresh.
const sharedStoreKey = "arena:priors:table"

// sharedStoreTTL bounds how long a published table stays valid; a stale
// entry is treated as absent rather than served forever.
const sharedStoreTTL = 10 * time.Minute

// SharedStore publishes and loads a Table through Redis so separate matchup
// child processes can see a prior table refreshed by a sibling, without any
// shared in-process state. This is
// additive: a Cache works identically, only slower to converge across
// processes, when SharedStore is nil.
type SharedStore struct {
	client *redis.Client
}

// NewSharedStore builds a SharedStore against a Redis endpoint, e.g.
// "localhost:6379". Connectivity is not verified until first use.
func NewSharedStore(addr string) *SharedStore {
	return &SharedStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Store publishes table, replacing whatever was previously stored.
func (s *SharedStore) Store(ctx context.Context, table Table) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("priors: encode shared table: %w", err)
	}
	if err := s.client.Set(ctx, sharedStoreKey, data, sharedStoreTTL).Err(); err != nil {
		return fmt.Errorf("priors: publish shared table: %w", err)
	}
	return nil
}

// Load reads the currently published table. ok is false if nothing has been
// published yet or the entry expired; callers should keep their existing
// table in that case.
func (s *SharedStore) Load(ctx context.Context) (table Table, ok bool, err error) {
	data, err := s.client.Get(ctx, sharedStoreKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("priors: load shared table: %w", err)
	}
	var decoded Table
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, false, fmt.Errorf("priors: decode shared table: %w", err)
	}
	return decoded, true, nil
}

// Close releases the underlying Redis connection pool.
func (s *SharedStore) Close() error {
	return s.client.Close()
}

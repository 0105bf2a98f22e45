package redisstate

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const scanPageSize = 100

// scanKeys walks every key matching pattern using the stateful SCAN cursor,
// invoking fn with each page as it arrives, until the server reports cursor
// zero. SCAN may revisit keys under concurrent mutation; callers that need
// uniqueness must deduplicate.
func scanKeys(ctx context.Context, client redis.UniversalClient, pattern string, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := client.Scan(ctx, cursor, pattern, scanPageSize).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

package redisstate

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wastate"
)

// TeardownFlat removes every record stored under a flat-layout session
// prefix. A flat session's key count is unbounded (one key per signal key
// ever seen), so this walks the keyspace in SCAN pages and unlinks each page
// as it arrives rather than issuing one blocking pattern delete that would
// stall the server. On failure the deletion stops where it stands — it is
// not rolled back, and re-running converges to the same end state.
func TeardownFlat(ctx context.Context, client redis.UniversalClient, prefix string) error {
	return scanKeys(ctx, client, prefix+":*", func(keys []string) error {
		if err := client.Unlink(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		return nil
	})
}

// TeardownGrouped removes a grouped-layout session. All fields live inside
// one hash, so a single unlink removes the session atomically.
func TeardownGrouped(ctx context.Context, client redis.UniversalClient, prefix string) error {
	if err := client.Unlink(ctx, wastate.GroupKey(prefix)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

package redisstate

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wastate"
)

// ListFlatSessions enumerates the prefixes of every flat-layout session by
// scanning for credentials keys. The scan may revisit a key under concurrent
// mutation, so results are deduplicated before returning. Order is
// unspecified; the call is side-effect free and safe to repeat.
func ListFlatSessions(ctx context.Context, client redis.UniversalClient) ([]string, error) {
	suffix := ":" + wastate.CredsField

	seen := make(map[string]struct{})
	prefixes := make([]string, 0)
	err := scanKeys(ctx, client, "*"+suffix, func(keys []string) error {
		for _, key := range keys {
			prefix := strings.TrimSuffix(key, suffix)
			if _, dup := seen[prefix]; dup {
				continue
			}
			seen[prefix] = struct{}{}
			prefixes = append(prefixes, prefix)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prefixes, nil
}

// ListGroupedSessions enumerates the prefixes of every grouped-layout
// session by scanning for session hashes. The grouped layout keeps exactly
// one key per session, so no deduplication is applied.
func ListGroupedSessions(ctx context.Context, client redis.UniversalClient) ([]string, error) {
	suffix := ":" + wastate.GroupSuffix

	prefixes := make([]string, 0)
	err := scanKeys(ctx, client, "*"+suffix, func(keys []string) error {
		for _, key := range keys {
			prefixes = append(prefixes, strings.TrimSuffix(key, suffix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prefixes, nil
}

package redisstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wastate"
)

// GroupedStore persists an entire session inside one Redis hash at
// {prefix}:auth, with credentials and key records as named fields.
type GroupedStore struct {
	client redis.UniversalClient
	prefix string
	creds  *wastate.Credentials
	opts   storeOptions
}

var _ Store = (*GroupedStore)(nil)

// OpenGrouped opens a grouped-layout session. Semantics mirror [OpenFlat];
// the credentials live in the creds field of the session hash.
func OpenGrouped(ctx context.Context, client redis.UniversalClient, prefix string, opts ...Option) (*GroupedStore, error) {
	if prefix == "" {
		prefix = wastate.DefaultPrefix
	}
	o := newStoreOptions(opts)

	if err := openConn(ctx, client, prefix, o); err != nil {
		return nil, err
	}

	raw, err := client.HGet(ctx, wastate.GroupKey(prefix), wastate.CredsField).Bytes()
	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		raw = nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	creds, err := wastate.DecodeCredentials(raw)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		creds, err = wastate.NewCredentials()
		if err != nil {
			return nil, err
		}
		o.logger.Debug("initialized fresh credentials", "prefix", prefix)
	}

	return &GroupedStore{client: client, prefix: prefix, creds: creds, opts: o}, nil
}

// Creds returns the session credentials held by this store.
func (s *GroupedStore) Creds() *wastate.Credentials {
	return s.creds
}

// Client returns the underlying Redis connection.
func (s *GroupedStore) Client() redis.UniversalClient {
	return s.client
}

// Prefix returns the session prefix this store was opened with.
func (s *GroupedStore) Prefix() string {
	return s.prefix
}

// GetKeys reads the records for ids of one category via pipelined hash
// reads against the session hash. Absent ids are omitted; any failure
// aborts the whole call.
func (s *GroupedStore) GetKeys(ctx context.Context, category string, ids []string) (map[string]any, error) {
	out := make(map[string]any, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	s.opts.metrics.observe(layoutGrouped, opGetKeys)

	key := wastate.GroupKey(s.prefix)
	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGet(ctx, key, wastate.FieldName(category, id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		s.opts.metrics.observeError(layoutGrouped, opGetKeys)
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	for i, cmd := range cmds {
		raw, cmdErr := cmd.Bytes()
		if cmdErr != nil {
			if errors.Is(cmdErr, redis.Nil) {
				continue
			}
			s.opts.metrics.observeError(layoutGrouped, opGetKeys)
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, cmdErr)
		}

		value, decErr := wastate.Decode(raw, category)
		if decErr != nil {
			s.opts.metrics.observeError(layoutGrouped, opGetKeys)
			return nil, decErr
		}
		out[ids[i]] = value
	}

	return out, nil
}

// SetKeys writes and deletes fields of the session hash via a single
// pipeline. Nil values delete their field; first failure surfaces, applied
// writes stand.
func (s *GroupedStore) SetKeys(ctx context.Context, data map[string]map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	s.opts.metrics.observe(layoutGrouped, opSetKeys)

	key := wastate.GroupKey(s.prefix)
	pipe := s.client.Pipeline()
	for category, records := range data {
		for id, value := range records {
			field := wastate.FieldName(category, id)
			if value == nil {
				pipe.HDel(ctx, key, field)
				continue
			}

			encoded, err := wastate.Encode(value)
			if err != nil {
				return err
			}
			pipe.HSet(ctx, key, field, encoded)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		s.opts.metrics.observeError(layoutGrouped, opSetKeys)
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// SaveCreds re-encodes the in-memory credentials and writes the creds field
// of the session hash.
func (s *GroupedStore) SaveCreds(ctx context.Context) error {
	s.opts.metrics.observe(layoutGrouped, opSaveCreds)

	encoded, err := wastate.Encode(s.creds)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, wastate.GroupKey(s.prefix), wastate.CredsField, encoded).Err(); err != nil {
		s.opts.metrics.observeError(layoutGrouped, opSaveCreds)
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

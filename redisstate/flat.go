package redisstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wastate"
)

// FlatStore persists one Redis key per logical field under a session prefix.
type FlatStore struct {
	client redis.UniversalClient
	prefix string
	creds  *wastate.Credentials
	opts   storeOptions
}

var _ Store = (*FlatStore)(nil)

// OpenFlat opens a flat-layout session. The connection is verified and
// labeled, then the credentials record at {prefix}:creds is loaded; a prefix
// with no stored credentials gets a fresh default record (persisted only on
// the first SaveCreds). An empty prefix falls back to
// [wastate.DefaultPrefix].
func OpenFlat(ctx context.Context, client redis.UniversalClient, prefix string, opts ...Option) (*FlatStore, error) {
	if prefix == "" {
		prefix = wastate.DefaultPrefix
	}
	o := newStoreOptions(opts)

	if err := openConn(ctx, client, prefix, o); err != nil {
		return nil, err
	}

	raw, err := client.Get(ctx, wastate.FlatKey(prefix, wastate.CredsField)).Bytes()
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

	return &FlatStore{client: client, prefix: prefix, creds: creds, opts: o}, nil
}

// Creds returns the session credentials held by this store.
func (s *FlatStore) Creds() *wastate.Credentials {
	return s.creds
}

// Client returns the underlying Redis connection.
func (s *FlatStore) Client() redis.UniversalClient {
	return s.client
}

// Prefix returns the session prefix this store was opened with.
func (s *FlatStore) Prefix() string {
	return s.prefix
}

// GetKeys reads the records for ids of one category via a single pipeline.
// Absent ids are omitted from the result; any transport or decode failure
// aborts the whole call without partial results.
func (s *FlatStore) GetKeys(ctx context.Context, category string, ids []string) (map[string]any, error) {
	out := make(map[string]any, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	s.opts.metrics.observe(layoutFlat, opGetKeys)

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, wastate.FlatKey(s.prefix, wastate.FieldName(category, id)))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		s.opts.metrics.observeError(layoutFlat, opGetKeys)
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	for i, cmd := range cmds {
		raw, cmdErr := cmd.Bytes()
		if cmdErr != nil {
			if errors.Is(cmdErr, redis.Nil) {
				continue
			}
			s.opts.metrics.observeError(layoutFlat, opGetKeys)
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, cmdErr)
		}

		value, decErr := wastate.Decode(raw, category)
		if decErr != nil {
			s.opts.metrics.observeError(layoutFlat, opGetKeys)
			return nil, decErr
		}
		out[ids[i]] = value
	}

	return out, nil
}

// SetKeys writes and deletes key records via a single pipeline. Nil values
// delete their field. All commands are issued together; the first failure
// surfaces and already-applied writes stand.
func (s *FlatStore) SetKeys(ctx context.Context, data map[string]map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	s.opts.metrics.observe(layoutFlat, opSetKeys)

	pipe := s.client.Pipeline()
	for category, records := range data {
		for id, value := range records {
			key := wastate.FlatKey(s.prefix, wastate.FieldName(category, id))
			if value == nil {
				pipe.Del(ctx, key)
				continue
			}

			encoded, err := wastate.Encode(value)
			if err != nil {
				return err
			}
			pipe.Set(ctx, key, encoded, s.opts.keyTTL)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		s.opts.metrics.observeError(layoutFlat, opSetKeys)
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// SaveCreds re-encodes the in-memory credentials and writes them to
// {prefix}:creds. Credentials never carry a TTL; only teardown removes them.
func (s *FlatStore) SaveCreds(ctx context.Context) error {
	s.opts.metrics.observe(layoutFlat, opSaveCreds)

	encoded, err := wastate.Encode(s.creds)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, wastate.FlatKey(s.prefix, wastate.CredsField), encoded, 0).Err(); err != nil {
		s.opts.metrics.observeError(layoutFlat, opSaveCreds)
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

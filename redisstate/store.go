package redisstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wastate"
)

// ErrRedisUnavailable is returned when the backing Redis connection fails.
var ErrRedisUnavailable = errors.New("redis unavailable")

const connNamePrefix = "wastate:"

// Store is the authentication-state contract a messaging client consumes.
// Both layouts satisfy it.
type Store interface {
	// Creds returns the session credentials, loaded at open time or freshly
	// initialized when the prefix had none. Never nil on an opened store.
	Creds() *wastate.Credentials

	// GetKeys reads the key records for the given ids of one category.
	// Ids with no stored record are omitted from the result map.
	GetKeys(ctx context.Context, category string, ids []string) (map[string]any, error)

	// SetKeys writes or deletes key records across categories. A nil value
	// deletes the field; anything else overwrites it.
	SetKeys(ctx context.Context, data map[string]map[string]any) error

	// SaveCreds persists the current in-memory credentials. Mutating the
	// credentials object alone has no durable effect until this is called.
	SaveCreds(ctx context.Context) error

	// Client exposes the underlying connection so the caller can invoke
	// teardown and discovery at the right point in the client's lifecycle.
	Client() redis.UniversalClient
}

// Option configures a store at open time.
type Option func(*storeOptions)

type storeOptions struct {
	logger  hclog.Logger
	metrics *Metrics
	keyTTL  time.Duration
}

// WithLogger sets the diagnostic sink. Diagnostics are best-effort and
// never affect operation outcomes. Defaults to a null logger.
func WithLogger(logger hclog.Logger) Option {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// WithMetrics wires operation counters into the store.
func WithMetrics(m *Metrics) Option {
	return func(o *storeOptions) {
		o.metrics = m
	}
}

// WithKeyTTL sets a per-field expiry on key records. Only the flat layout
// honors it — hash fields cannot expire individually. Credentials never
// expire regardless.
func WithKeyTTL(ttl time.Duration) Option {
	return func(o *storeOptions) {
		o.keyTTL = ttl
	}
}

func newStoreOptions(opts []Option) storeOptions {
	o := storeOptions{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// openConn verifies the connection and applies a best-effort session label
// for operator visibility. A failed label is logged, never propagated; a
// failed ping is fatal to the open.
func openConn(ctx context.Context, client redis.UniversalClient, prefix string, o storeOptions) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	name := connNamePrefix + wastate.SanitizeID(prefix)
	if err := client.Do(ctx, "client", "setname", name).Err(); err != nil {
		o.logger.Debug("could not label redis connection", "name", name, "error", err)
	}
	return nil
}

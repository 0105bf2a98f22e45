package redisstate

import (
	"context"
	"reflect"
	"testing"

	"github.com/MrEthical07/wastate"
)

func TestOpenGroupedSaveCredsDirectRead(t *testing.T) {
	rdb, done := newRedisTest(t)
	defer done()
	ctx := context.Background()

	store, err := OpenGrouped(ctx, rdb, "t2")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Creds() == nil {
		t.Fatal("opened store must never expose nil credentials")
	}

	if err := store.SaveCreds(ctx); err != nil {
		t.Fatalf("save creds: %v", err)
	}

	raw, err := rdb.HGet(ctx, "t2:auth", "creds").Bytes()
	if err != nil {
		t.Fatalf("read creds field: %v", err)
	}
	decoded, err := wastate.DecodeCredentials(raw)
	if err != nil {
		t.Fatalf("decode creds field: %v", err)
	}
	if !reflect.DeepEqual(decoded, store.Creds()) {
		t.Fatal("stored creds field does not match in-memory credentials")
	}
}

func TestGroupedSetGetDelete(t *testing.T) {
	rdb, done := newRedisTest(t)
	defer done()
	ctx := context.Background()

	store, err := OpenGrouped(ctx, rdb, "t2")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := store.SetKeys(ctx, map[string]map[string]any{
		"pre-key": {
			"1": map[string]any{"x": float64(1)},
			"2": map[string]any{"x": float64(2)},
		},
		"sender-key": {
			"g/1:0": map[string]any{"chain": wastate.Binary{0x01}},
		},
	}); err != nil {
		t.Fatalf("set keys: %v", err)
	}

	// All fields live inside the one session hash.
	if fields := rdb.HLen(ctx, "t2:auth").Val(); fields != 3 {
		t.Fatalf("expected 3 hash fields, got %d", fields)
	}
	if ok := rdb.HExists(ctx, "t2:auth", "sender-key-g__1-0").Val(); !ok {
		t.Fatal("expected sanitized hash field name")
	}

	got, err := store.GetKeys(ctx, "pre-key", []string{"1", "2", "3"})
	if err != nil {
		t.Fatalf("get keys: %v", err)
	}
	want := map[string]any{
		"1": map[string]any{"x": float64(1)},
		"2": map[string]any{"x": float64(2)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("get keys = %#v, want %#v", got, want)
	}

	if err := store.SetKeys(ctx, map[string]map[string]any{
		"pre-key": {"1": nil},
	}); err != nil {
		t.Fatalf("delete via nil: %v", err)
	}
	if ok := rdb.HExists(ctx, "t2:auth", "pre-key-1").Val(); ok {
		t.Fatal("nil value must delete the hash field")
	}
}

func TestGroupedTeardownRemovesSession(t *testing.T) {
	rdb, done := newRedisTest(t)
	defer done()
	ctx := context.Background()

	store, err := OpenGrouped(ctx, rdb, "t2")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.SaveCreds(ctx); err != nil {
		t.Fatalf("save creds: %v", err)
	}
	if err := store.SetKeys(ctx, map[string]map[string]any{
		"pre-key": {"1": map[string]any{"x": float64(1)}},
	}); err != nil {
		t.Fatalf("set keys: %v", err)
	}

	if err := TeardownGrouped(ctx, rdb, "t2"); err != nil {
		t.Fatalf("teardown: %v", err)
	}
	if exists := rdb.Exists(ctx, "t2:auth").Val(); exists != 0 {
		t.Fatal("expected session hash removed")
	}
}

func TestGroupedReopenLoadsCredentials(t *testing.T) {
	rdb, done := newRedisTest(t)
	defer done()
	ctx := context.Background()

	first, err := OpenGrouped(ctx, rdb, "t2")
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Creds().AccountSyncCounter = 9
	if err := first.SaveCreds(ctx); err != nil {
		t.Fatalf("save creds: %v", err)
	}

	second, err := OpenGrouped(ctx, rdb, "t2")
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if second.Creds().AccountSyncCounter != 9 {
		t.Fatalf("reopened credentials lost state, counter=%d", second.Creds().AccountSyncCounter)
	}
}

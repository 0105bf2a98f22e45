// Package redisstate persists wastate authentication state in Redis.
//
// Two layouts implement the same [Store] contract:
//
//   - [FlatStore]: one Redis key per logical field ({prefix}:creds,
//     {prefix}:{category}-{id}). Generic Redis tooling can inspect and expire
//     individual fields, at the cost of one key per signal key ever seen —
//     potentially thousands per session.
//   - [GroupedStore]: one Redis hash per session ({prefix}:auth) with every
//     field inside it. Bounds the keyspace to one key per session, trading
//     away per-field expiry.
//
// # Design
//
// Bulk operations issue one pipelined command per field and observe join-all
// semantics: every command is sent, and the first failure is reported to the
// caller. There is no cross-field transaction and no rollback — all field
// writes are idempotent, so re-issuing a failed SetKeys or Teardown converges
// to the same end state. Retry and backoff belong to the owning client's
// reconnection loop, never to this package.
//
// # What this package must NOT do
//
//   - Retry, back off, or time out on its own; the Redis client's behavior
//     is the only transport policy.
//   - Default a corrupt stored value; decode failures are fatal.
//   - Tear a session down on its own. The owning client's logout signal does
//     not reach this package — the caller watches the client's connection
//     state and invokes [TeardownFlat] or [TeardownGrouped] at the right
//     point.
package redisstate

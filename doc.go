// Package wastate provides the value types, codec, and key-naming rules for
// persisting the authentication state of a stateful messaging client: the
// long-lived credentials blob plus the open-ended set of signal-protocol key
// records accumulated over a session's lifetime.
//
// The package is transport-agnostic. Redis-backed stores that implement the
// persistence contract live in the redisstate sub-package; this package only
// defines what gets stored (Credentials, AppStateSyncKey, generic key
// records), how values are serialized ([Encode], [Decode] with tagged binary
// payloads), and how logical records map to physical names ([SanitizeID],
// [FieldName], [FlatKey], [GroupKey]).
//
// # Architecture boundaries
//
// wastate is the shared vocabulary between the stores and their consumers.
// Everything here is pure: no I/O, no Redis types, no logging.
//
// # What this package must NOT do
//
//   - Import redisstate or any other sub-package (no import cycles).
//   - Perform network or filesystem I/O.
//   - Validate or enumerate key categories — categories are opaque tags owned
//     by the messaging protocol, except for the single category that requires
//     typed rehydration ([KeyAppStateSyncKey]).
package wastate

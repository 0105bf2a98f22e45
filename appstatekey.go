package wastate

import (
	"encoding/json"
	"fmt"
)

// AppStateSyncKeyFingerprint identifies which devices an app-state sync key
// applies to.
type AppStateSyncKeyFingerprint struct {
	RawID         uint32   `json:"rawId"`
	CurrentIndex  uint32   `json:"currentIndex"`
	DeviceIndexes []uint32 `json:"deviceIndexes"`
}

// AppStateSyncKey is the typed record behind the [KeyAppStateSyncKey]
// category. Its consumers operate on the constructed type, not on a generic
// decoded map, which is why [Decode] routes that category through
// [NewAppStateSyncKey].
type AppStateSyncKey struct {
	KeyData     Binary                     `json:"keyData"`
	Fingerprint AppStateSyncKeyFingerprint `json:"fingerprint"`
	Timestamp   int64                      `json:"timestamp"`
}

// NewAppStateSyncKey rebuilds the typed record from a revived generic value
// as produced by [Decode].
func NewAppStateSyncKey(v any) (*AppStateSyncKey, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: app state sync key must decode to an object, got %T", ErrCorruptValue, v)
	}

	key := &AppStateSyncKey{}
	if b, ok := m["keyData"].(Binary); ok {
		key.KeyData = b
	}
	if ts, ok := asInt64(m["timestamp"]); ok {
		key.Timestamp = ts
	}
	if fp, ok := m["fingerprint"].(map[string]any); ok {
		if n, ok := asInt64(fp["rawId"]); ok {
			key.Fingerprint.RawID = uint32(n)
		}
		if n, ok := asInt64(fp["currentIndex"]); ok {
			key.Fingerprint.CurrentIndex = uint32(n)
		}
		if list, ok := fp["deviceIndexes"].([]any); ok {
			key.Fingerprint.DeviceIndexes = make([]uint32, 0, len(list))
			for _, item := range list {
				if n, ok := asInt64(item); ok {
					key.Fingerprint.DeviceIndexes = append(key.Fingerprint.DeviceIndexes, uint32(n))
				}
			}
		}
	}
	return key, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

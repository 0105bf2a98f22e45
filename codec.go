package wastate

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Encode serializes a value for storage. Raw []byte payloads nested inside
// generic maps and slices are replaced with [Binary] before marshalling so
// they come back as bytes instead of opaque base64 strings; typed values
// (Credentials, AppStateSyncKey) already carry Binary fields and marshal
// correctly on their own.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(replaceBinary(v))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Decode is the inverse of [Encode]. Tagged binary objects are revived into
// [Binary]; everything else decodes into generic JSON values. A nil raw means
// the record was absent and yields (nil, nil), not an error. When category is
// [KeyAppStateSyncKey] the revived value is passed through
// [NewAppStateSyncKey], because that category's consumers expect a typed
// record rather than a plain map.
func Decode(raw []byte, category string) (any, error) {
	if raw == nil {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptValue, err)
	}
	v = reviveBinary(v)

	if category == KeyAppStateSyncKey {
		return NewAppStateSyncKey(v)
	}
	return v, nil
}

// DecodeCredentials decodes a stored credentials record. A nil raw yields
// (nil, nil) so callers can distinguish "never paired" from corruption.
func DecodeCredentials(raw []byte) (*Credentials, error) {
	if raw == nil {
		return nil, nil
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptValue, err)
	}
	return &creds, nil
}

func replaceBinary(v any) any {
	switch val := v.(type) {
	case []byte:
		return Binary(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = replaceBinary(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = replaceBinary(item)
		}
		return out
	default:
		return v
	}
}

func reviveBinary(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if b, ok := reviveTagged(val); ok {
			return b
		}
		for k, item := range val {
			val[k] = reviveBinary(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = reviveBinary(item)
		}
		return val
	default:
		return v
	}
}

func reviveTagged(m map[string]any) (Binary, bool) {
	if len(m) != 2 {
		return nil, false
	}
	tag, ok := m["type"].(string)
	if !ok || tag != binaryTypeTag {
		return nil, false
	}
	data, ok := m["data"].(string)
	if !ok {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, false
	}
	return Binary(raw), true
}

package wastate

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const binaryTypeTag = "Buffer"

// Binary is a byte payload that survives JSON round-trips intact. It marshals
// as a tagged object {"type":"Buffer","data":"<base64>"} instead of a bare
// string, so decoded values can be told apart from ordinary strings and
// rehydrated back into bytes.
type Binary []byte

type taggedBinary struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// MarshalJSON implements json.Marshaler. A nil Binary marshals as null so
// that unset payloads round-trip as absent rather than as empty buffers.
func (b Binary) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	return json.Marshal(taggedBinary{
		Type: binaryTypeTag,
		Data: base64.StdEncoding.EncodeToString(b),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Binary) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}

	var tagged taggedBinary
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptValue, err)
	}
	if tagged.Type != binaryTypeTag {
		return fmt.Errorf("%w: unexpected binary tag %q", ErrCorruptValue, tagged.Type)
	}
	raw, err := base64.StdEncoding.DecodeString(tagged.Data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptValue, err)
	}
	*b = raw
	return nil
}

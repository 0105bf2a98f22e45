package wastate

import "errors"

// ErrCorruptValue is returned when a stored value cannot be decoded. A
// partially decoded credential or signal key would desynchronize the owning
// client's protocol state, so decode failures are always fatal and never
// silently defaulted.
var ErrCorruptValue = errors.New("stored value corrupt")

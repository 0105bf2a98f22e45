package wastate

import "strings"

const (
	// DefaultPrefix is the session prefix used when the caller does not
	// choose one.
	DefaultPrefix = "wastate"

	// CredsField is the field name holding the credentials record, both as
	// the flat-layout key suffix and as the grouped-layout hash field.
	CredsField = "creds"

	// GroupSuffix is the key suffix of the single hash holding an entire
	// session under the grouped layout.
	GroupSuffix = "auth"

	// KeyAppStateSyncKey is the one key category whose records decode into
	// a typed [AppStateSyncKey] instead of a generic map. All other
	// categories pass through this package opaquely.
	KeyAppStateSyncKey = "app-state-sync-key"
)

var idSanitizer = strings.NewReplacer("/", "__", ":", "-")

// SanitizeID rewrites characters that are unsafe inside a Redis key name:
// path separators become a double underscore, namespace separators become a
// hyphen. The mapping is deterministic and deliberately lossy — two raw IDs
// differing only in separator choice collapse to the same sanitized form.
func SanitizeID(id string) string {
	return idSanitizer.Replace(id)
}

// FieldName derives the physical field name for a (category, id) key record.
func FieldName(category, id string) string {
	return category + "-" + SanitizeID(id)
}

// FlatKey builds the flat-layout physical key for a field within a session.
func FlatKey(prefix, field string) string {
	return prefix + ":" + field
}

// GroupKey builds the grouped-layout physical key holding all of a session's
// fields.
func GroupKey(prefix string) string {
	return prefix + ":" + GroupSuffix
}

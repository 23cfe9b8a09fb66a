package keypath

import "strings"

// Separator is the token separating segments in a path key.
const Separator = "__"

// Split splits a path key into its segments.
// An empty key yields a single empty segment, which addresses a direct
// string value stored immediately under a namespace.
func Split(key string) []string {
	return strings.Split(key, Separator)
}

// Join joins segments back into a single path key. It is the inverse of
// Split and is used for flattened keys and diagnostic formatting.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Cut splits a key into its first segment and the remainder.
// found reports whether the separator was present.
func Cut(key string) (head, rest string, found bool) {
	return strings.Cut(key, Separator)
}

package core

import "strings"

// Slugify derives the storage key for a company from its display name.
// The normalization is deterministic and lossy: lowercase, runs of
// non-alphanumeric characters collapse to a single hyphen, and leading
// and trailing hyphens are trimmed.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

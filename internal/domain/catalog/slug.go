package catalog

import "strings"

// Slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming leading and trailing hyphens.
// A product's slug is set once at creation and never recomputed on rename.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

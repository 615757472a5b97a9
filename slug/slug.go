// Package slug derives URL-safe identifiers from business names.
package slug

import (
	"strconv"
	"strings"
)

// DefaultBase is used when a name normalizes to nothing at all.
const DefaultBase = "business"

// maxLen caps slugs so booking links stay short.
const maxLen = 40

// Normalize converts free text to a slug: lowercase, "&" spelled out as
// "and", apostrophes dropped ("Ana's" becomes "anas"), every remaining run
// of characters outside [a-z0-9] collapsed to one hyphen, no leading or
// trailing hyphen, at most 40 characters. Input that is empty or all
// punctuation normalizes to "". Normalize is idempotent.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, "&", " and ")
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, "’", "")

	var b strings.Builder
	pendingHyphen := false
	for _, r := range text {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !ok {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	s := b.String()
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s
}

// Uniquify resolves base against already-assigned slugs. An empty base falls
// back to DefaultBase. If the candidate is taken, numeric suffixes -2, -3, …
// are tried until a free slug is found. Deterministic for a given taken set.
func Uniquify(base string, taken func(string) bool) string {
	if base == "" {
		base = DefaultBase
	}
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}

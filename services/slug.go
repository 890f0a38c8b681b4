package services

import (
	"regexp"
	"strings"
)

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe department key from a display name. The
// transform is deterministic and idempotent: slugs double as stable lookup
// keys across runs, so the mapping must never change.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonSlugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

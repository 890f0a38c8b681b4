package services

import (
	"regexp"
	"strings"
)

// stopWords are common English function words plus domain noise that carry no
// search value. Keywords back a plain substring search, so the list stays
// intentionally coarse.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "in": {}, "on": {}, "of": {}, "for": {},
	"and": {}, "or": {}, "to": {}, "with": {}, "by": {}, "from": {}, "at": {},
	"as": {}, "into": {}, "about": {}, "over": {}, "under": {}, "between": {},
	"through": {}, "without": {}, "within": {}, "across": {}, "is": {},
	"are": {}, "be": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"overview": {},
}

var nonTokenRe = regexp.MustCompile(`[^a-z0-9]+`)

// ExtractKeywords derives the lowercased keyword set of a publication title:
// tokens longer than two characters that are not stop words, deduplicated in
// first-occurrence order.
func ExtractKeywords(title string) []string {
	cleaned := nonTokenRe.ReplaceAllString(strings.ToLower(title), " ")
	seen := make(map[string]struct{})
	result := []string{}
	for _, t := range strings.Fields(cleaned) {
		if len(t) <= 2 {
			continue
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	return result
}

package services

import (
	"regexp"
	"strings"
)

var (
	lineBreakRe  = regexp.MustCompile(`\r?\n`)
	enumPrefixRe = regexp.MustCompile(`^\s*\d+\.\s*`)
)

// ParseAffiliationList splits a raw departmental-affiliation cell into distinct
// department names. Fragments are separated by line breaks and commas; the
// result keeps first-seen order and drops empty fragments. Empty input yields
// an empty list.
func ParseAffiliationList(raw string) []string {
	var parts []string
	for _, line := range lineBreakRe.Split(raw, -1) {
		for _, sub := range strings.Split(line, ",") {
			if s := strings.TrimSpace(sub); s != "" {
				parts = append(parts, s)
			}
		}
	}
	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, s := range parts {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}

// ParsePublicationTitles splits an article/conference-paper cell into titles.
// Lines may carry an enumeration prefix ("1. Title") which is stripped. Order
// is preserved and no dedup happens here; dedup is the graph builder's job.
func ParsePublicationTitles(raw string) []string {
	normalized := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(raw, "\r\n", "\n"), "\r", "\n"))
	if normalized == "" {
		return []string{}
	}
	titles := make([]string, 0, 4)
	for _, line := range strings.Split(normalized, "\n") {
		cleaned := strings.TrimSpace(enumPrefixRe.ReplaceAllString(line, ""))
		if cleaned != "" {
			titles = append(titles, cleaned)
		}
	}
	return titles
}

package util

import "strings"

// CleanText collapses whitespace (including NBSP) in scraped text.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeQuery turns a dictionary query into a lookup key: surrounding
// whitespace is trimmed and the rest is Unicode case-folded. Inner
// whitespace is kept as typed, so "ice  cream" will not match "ice cream".
func NormalizeQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", ErrEmptyQuery
	}
	// A Caser holds state, so one is built per call.
	return cases.Fold().String(trimmed), nil
}

// DisplayQuery trims a query but keeps its original case, for sources that
// echo the user's spelling back.
func DisplayQuery(query string) string {
	return strings.TrimSpace(query)
}

// SectionID converts a navigation label into a section identifier:
// "Live Classes" becomes "live-classes".
func SectionID(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "-")
}

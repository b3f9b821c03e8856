package domain

import (
	"fmt"
	"strings"
)

// FilterMode selects the predicate and sort order applied to the article list.
type FilterMode string

const (
	FilterRising    FilterMode = "rising"
	FilterHot       FilterMode = "hot"
	FilterBullish   FilterMode = "bullish"
	FilterBearish   FilterMode = "bearish"
	FilterImportant FilterMode = "important"
	FilterSaved     FilterMode = "saved"
)

// AllFilterModes returns every mode in display order.
func AllFilterModes() []FilterMode {
	return []FilterMode{FilterHot, FilterRising, FilterBullish, FilterBearish, FilterImportant, FilterSaved}
}

// ParseFilterMode resolves a mode name case-insensitively.
func ParseFilterMode(s string) (FilterMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range AllFilterModes() {
		if string(m) == s {
			return m, nil
		}
	}
	valid := make([]string, 0, len(AllFilterModes()))
	for _, m := range AllFilterModes() {
		valid = append(valid, string(m))
	}
	return "", fmt.Errorf("unknown filter %q (valid: %s)", s, strings.Join(valid, ", "))
}

// Label is the human readable tab name.
func (m FilterMode) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

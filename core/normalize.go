package core

import "strings"

// CommonBrandToken is the sentinel brand tag marking a group as applicable
// across all brands. Groups carrying it always rank first.
const CommonBrandToken = "shared"

// Normalize canonicalizes query and alias text for comparison: trims,
// lowercases, and collapses interior whitespace runs to single spaces.
// It is pure, total, and idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// HasCommonBrand reports whether a comma-separated brand list contains the
// case-insensitive CommonBrandToken.
func HasCommonBrand(brands string) bool {
	for _, part := range strings.Split(brands, ",") {
		if strings.EqualFold(strings.TrimSpace(part), CommonBrandToken) {
			return true
		}
	}
	return false
}

// SplitAliases splits an alias list on ';' and '|' separators, trimming each
// entry and dropping empties. This is the import format for alias columns.
func SplitAliases(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == '|'
	})
	var aliases []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			aliases = append(aliases, p)
		}
	}
	return aliases
}

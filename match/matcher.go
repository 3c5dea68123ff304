package match

import (
	"strings"

	"github.com/poiesic/glassmatch/core"
)

// ClassifyAlias assigns the tier of one alias entry against a normalized
// query. The rules are mutually exclusive; the first that applies wins:
// exact equality, prefix, substring. Returns TierNone when none applies.
func ClassifyAlias(normalizedAlias, normalizedQuery string) core.MatchTier {
	switch {
	case normalizedAlias == normalizedQuery:
		return core.TierAliasExact
	case strings.HasPrefix(normalizedAlias, normalizedQuery):
		return core.TierAliasPrefix
	case strings.Contains(normalizedAlias, normalizedQuery):
		return core.TierAliasContains
	default:
		return core.TierNone
	}
}

// ClassifyName assigns the tier of one glass name against the raw trimmed
// query, case-insensitively. Equality beats containment; both exclude the
// alias tiers by construction (names and aliases are classified separately).
func ClassifyName(name, trimmedQuery string) core.MatchTier {
	if strings.EqualFold(name, trimmedQuery) {
		return core.TierNameExact
	}
	if strings.Contains(strings.ToLower(name), strings.ToLower(trimmedQuery)) {
		return core.TierNameContains
	}
	return core.TierNone
}

// Scan matches a raw query against the corpus and returns candidates in
// ascending tier order. Every corpus entry contributes to at most one tier.
// An empty normalized query is invalid input and fails fast with
// ErrEmptyQuery.
func Scan(corpus *core.Corpus, query string) ([]core.Candidate, error) {
	trimmed := strings.TrimSpace(query)
	normalized := core.Normalize(query)
	if normalized == "" {
		return nil, ErrEmptyQuery
	}

	// Buckets keep emission in tier order regardless of corpus order, which
	// makes the downstream first-seen tie-break deterministic.
	var tiers [5][]core.Candidate

	for _, alias := range corpus.Aliases {
		tier := ClassifyAlias(alias.Normalized, normalized)
		if tier == core.TierNone {
			continue
		}
		tiers[tier] = append(tiers[tier], core.Candidate{
			Tier:        tier,
			GroupId:     alias.GroupId,
			MatchedName: alias.GlassName,
		})
	}

	for _, glass := range corpus.Glasses {
		tier := ClassifyName(glass.Name, trimmed)
		if tier == core.TierNone {
			continue
		}
		tiers[tier] = append(tiers[tier], core.Candidate{
			Tier:        tier,
			GroupId:     glass.GroupId,
			MatchedName: glass.Name,
		})
	}

	var candidates []core.Candidate
	for _, bucket := range tiers {
		candidates = append(candidates, bucket...)
	}
	return candidates, nil
}

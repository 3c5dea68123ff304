package match

import "github.com/poiesic/glassmatch/core"

// Aggregate reduces candidates to the single best match per group.
// A candidate replaces the group's recorded best only when its tier is
// strictly lower, so the invariant bestTier = min(tier over the group's
// candidates) holds for any iteration order; with the matcher's tier-ordered
// emission this degenerates to first-wins within a group.
func Aggregate(candidates []core.Candidate) map[core.ID]core.GroupMatch {
	best := make(map[core.ID]core.GroupMatch)
	for _, c := range candidates {
		current, ok := best[c.GroupId]
		if !ok || c.Tier < current.Tier {
			best[c.GroupId] = core.GroupMatch{
				Tier:        c.Tier,
				MatchedName: c.MatchedName,
			}
		}
	}
	return best
}

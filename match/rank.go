package match

import (
	"sort"

	"github.com/poiesic/glassmatch/core"
)

// rankKey is the composite sort key for group ordering. The order of the
// fields is the order of comparison; new tie-breaks go after tier and
// before id.
type rankKey struct {
	common  int            // 0 when the group carries the shared-brand token
	tier    core.MatchTier // best match tier for the group
	groupId core.ID        // stable numeric tie-break
}

func (k rankKey) less(other rankKey) bool {
	if k.common != other.common {
		return k.common < other.common
	}
	if k.tier != other.tier {
		return k.tier < other.tier
	}
	return k.groupId < other.groupId
}

// Rank orders the matched groups. Groups carrying the shared-brand token
// always precede brand-specific ones regardless of match tier; within each
// class better tiers come first, then group ID. Matches whose group is not
// in the provided active-group list are silently dropped (the group may
// have gone inactive since the corpus snapshot was taken).
func Rank(matches map[core.ID]core.GroupMatch, groups []*core.GlassGroup) []core.ID {
	byId := make(map[core.ID]*core.GlassGroup, len(groups))
	for _, g := range groups {
		byId[g.Id] = g
	}

	keys := make([]rankKey, 0, len(matches))
	for id, m := range matches {
		group, ok := byId[id]
		if !ok {
			continue
		}
		common := 1
		if core.HasCommonBrand(group.Brands) {
			common = 0
		}
		keys = append(keys, rankKey{common: common, tier: m.Tier, groupId: id})
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].less(keys[j])
	})

	ids := make([]core.ID, len(keys))
	for i, k := range keys {
		ids[i] = k.groupId
	}
	return ids
}

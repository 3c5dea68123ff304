package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	id1 := IDFromContent("(12,a13)")
	id2 := IDFromContent("(12,a13)")
	if id1 != id2 {
		t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
	}

	if IDFromContent("(12,a13)") == IDFromContent("(12,a13 5g)") {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestGlassAliasKey(t *testing.T) {
	a := &GlassAlias{GlassId: 12, Alias: "a13 5g"}
	if got := a.Key(); got != "(12,a13 5g)" {
		t.Errorf("Key() = %q", got)
	}
}

func TestMatchTierValid(t *testing.T) {
	for tier := TierAliasExact; tier <= TierNameContains; tier++ {
		if !tier.Valid() {
			t.Errorf("tier %d should be valid", tier)
		}
	}
	if TierNone.Valid() {
		t.Error("TierNone should not be valid")
	}
	if MatchTier(5).Valid() {
		t.Error("tier 5 should not be valid")
	}
}

func TestCorpusGlassNames(t *testing.T) {
	c := &Corpus{
		Glasses: []CorpusGlass{
			{Name: "A13", GroupId: 1},
			{Name: "A13 5G", GroupId: 1},
			{Name: "A13", GroupId: 1}, // duplicate
			{Name: "Redmi 9A", GroupId: 2},
		},
	}

	names := c.GlassNames(1)
	if len(names) != 2 || names[0] != "A13" || names[1] != "A13 5G" {
		t.Errorf("GlassNames(1) = %v", names)
	}
	if names := c.GlassNames(3); names != nil {
		t.Errorf("GlassNames(3) = %v, want nil", names)
	}
}

func TestUserPremiumActiveAt(t *testing.T) {
	now := time.Now()

	u := &User{}
	if u.PremiumActiveAt(now) {
		t.Error("zero PremiumUntil should not be active")
	}

	u.PremiumUntil = now.Add(time.Hour)
	if !u.PremiumActiveAt(now) {
		t.Error("future PremiumUntil should be active")
	}

	u.PremiumUntil = now.Add(-time.Hour)
	if u.PremiumActiveAt(now) {
		t.Error("past PremiumUntil should not be active")
	}
}

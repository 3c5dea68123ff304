// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package render

import (
	"fmt"
	"strings"

	"github.com/poiesic/glassmatch/core"
)

// Wording holds every presentation string the renderer emits. Only the
// counts and the presence or absence of lines are contractual; the text
// itself is configuration.
type Wording struct {
	Header           string // first line of a found result, query appended
	CallToAction     string // shown once to free-tier users
	BrandsLabel      string // prefix for the brand tag line
	ItemBullet       string // prefix for each item name line
	LockedFormat     string // fmt string taking the hidden item count
	EmptyPlaceholder string // rendered when a group has no items
	SummaryFormat    string // fmt string taking (shown, total, remaining)
	NotFoundFormat   string // fmt string taking the echoed query
	NotFoundGuidance string // follow-up line of the not-found block
	Ellipsis         string // appended to truncated descriptions
}

// Config controls the renderer's caps and wording.
type Config struct {
	// FreeItemLimit is the number of item names shown per group to
	// non-premium users.
	FreeItemLimit int
	// MaxGroups caps how many top-ranked groups are rendered.
	MaxGroups int
	// DescriptionLimit is the description character budget, in runes.
	DescriptionLimit int
	Wording          Wording
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		FreeItemLimit:    3,
		MaxGroups:        5,
		DescriptionLimit: 300,
		Wording: Wording{
			Header:           "Compatible screen protectors for:",
			CallToAction:     "Upgrade to premium to see every compatible protector.",
			BrandsLabel:      "Brands: ",
			ItemBullet:       "- ",
			LockedFormat:     "+ %d more with premium",
			EmptyPlaceholder: "(empty)",
			SummaryFormat:    "Shown %d of %d groups, %d more available.",
			NotFoundFormat:   "Nothing found for %q.",
			NotFoundGuidance: "Try the model name printed on the box, e.g. \"A13\" or \"Redmi 9A\".",
			Ellipsis:         "…",
		},
	}
}

// Renderer turns a search response into text blocks, applying the free-tier
// truncation policy and the group-count cap.
type Renderer struct {
	config Config
}

// NewRenderer creates a renderer with the given config. Zero caps fall back
// to the defaults.
func NewRenderer(config Config) *Renderer {
	defaults := DefaultConfig()
	if config.FreeItemLimit <= 0 {
		config.FreeItemLimit = defaults.FreeItemLimit
	}
	if config.MaxGroups <= 0 {
		config.MaxGroups = defaults.MaxGroups
	}
	if config.DescriptionLimit <= 0 {
		config.DescriptionLimit = defaults.DescriptionLimit
	}
	return &Renderer{config: config}
}

// Render produces the block sequence for a response. A not-found response is
// a valid render, not a failure.
func (r *Renderer) Render(response *core.SearchResponse, premium bool) []Block {
	if response == nil || !response.Found {
		return []Block{r.notFound(response)}
	}

	blocks := []Block{{
		Kind:  BlockHeader,
		Lines: []string{r.config.Wording.Header + " " + response.Query},
	}}
	if !premium {
		blocks = append(blocks, Block{
			Kind:  BlockCallToAction,
			Lines: []string{r.config.Wording.CallToAction},
		})
	}

	shown := len(response.Results)
	if shown > r.config.MaxGroups {
		shown = r.config.MaxGroups
	}
	for i, result := range response.Results[:shown] {
		blocks = append(blocks, r.groupBlock(i+1, result, premium))
	}

	if total := len(response.Results); total > shown {
		blocks = append(blocks, Block{
			Kind:  BlockSummary,
			Lines: []string{fmt.Sprintf(r.config.Wording.SummaryFormat, shown, total, total-shown)},
		})
	}
	return blocks
}

func (r *Renderer) notFound(response *core.SearchResponse) Block {
	query := ""
	if response != nil {
		query = strings.TrimSpace(response.Query)
	}
	lines := []string{
		fmt.Sprintf(r.config.Wording.NotFoundFormat, query),
		r.config.Wording.NotFoundGuidance,
	}
	return Block{Kind: BlockNotFound, Lines: lines}
}

func (r *Renderer) groupBlock(ordinal int, result *core.GroupResult, premium bool) Block {
	lines := []string{fmt.Sprintf("%d. %s", ordinal, result.MatchedName)}

	group := result.Group
	if group != nil {
		if group.Name != "" && group.Name != result.MatchedName {
			lines = append(lines, group.Name)
		}
		if group.Brands != "" {
			lines = append(lines, r.config.Wording.BrandsLabel+group.Brands)
		}
		if desc := truncate(group.Description, r.config.DescriptionLimit, r.config.Wording.Ellipsis); desc != "" {
			lines = append(lines, desc)
		}
	}

	items := result.CompatibleGlasses
	if len(items) == 0 {
		lines = append(lines, r.config.Wording.EmptyPlaceholder)
		return Block{Kind: BlockGroup, Lines: lines}
	}

	visible := len(items)
	if !premium && visible > r.config.FreeItemLimit {
		visible = r.config.FreeItemLimit
	}
	for _, name := range items[:visible] {
		lines = append(lines, r.config.Wording.ItemBullet+name)
	}
	if hidden := len(items) - visible; hidden > 0 {
		lines = append(lines, fmt.Sprintf(r.config.Wording.LockedFormat, hidden))
	}
	return Block{Kind: BlockGroup, Lines: lines}
}

// truncate cuts s to limit runes, appending the ellipsis marker when it cut
// anything.
func truncate(s string, limit int, ellipsis string) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

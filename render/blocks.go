package render

import "strings"

// BlockKind identifies the structural role of a rendered block. The chunker
// splits between blocks, so the kind also marks the preferred split points.
type BlockKind int

const (
	BlockHeader BlockKind = iota
	BlockCallToAction
	BlockGroup
	BlockSummary
	BlockNotFound
)

// Block is one self-contained unit of rendered output. Blocks are joined
// with a blank line when serialized.
type Block struct {
	Kind  BlockKind
	Lines []string
}

// Text serializes the block's lines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Join serializes a block sequence into a single payload. The result is not
// size-bounded; Chunk enforces the transport limit.
func Join(blocks []Block) string {
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text()
	}
	return strings.Join(texts, "\n\n")
}

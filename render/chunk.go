package render

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkLimit is the transport message budget in runes, kept under the
// Telegram hard cap of 4096 to leave room for transport framing.
const DefaultChunkLimit = 3900

// Chunk serializes the blocks into transport-sized payloads. When everything
// fits within the limit a single chunk is returned. Otherwise splits happen
// at block boundaries; a block that alone exceeds the limit is split at line
// boundaries, never inside a line. A limit <= 0 means DefaultChunkLimit.
func Chunk(blocks []Block, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}

	whole := Join(blocks)
	if utf8.RuneCountInString(whole) <= limit {
		if whole == "" {
			return nil
		}
		return []string{whole}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}
	appendPart := func(part string, sep string) {
		partLen := utf8.RuneCountInString(part)
		sepLen := utf8.RuneCountInString(sep)
		if currentLen > 0 && currentLen+sepLen+partLen > limit {
			flush()
		}
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += sepLen
		}
		current.WriteString(part)
		currentLen += partLen
	}

	for _, block := range blocks {
		text := block.Text()
		if utf8.RuneCountInString(text) <= limit {
			appendPart(text, "\n\n")
			continue
		}
		// Oversized block: line-level fallback. A single line longer than
		// the limit still goes out whole.
		flush()
		for _, line := range strings.Split(text, "\n") {
			appendPart(line, "\n")
		}
		flush()
	}
	flush()
	return chunks
}

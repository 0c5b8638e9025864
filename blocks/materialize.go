package blocks

import (
	"unicode/utf8"

	"github.com/arjunmahishi/fimgen/types"
)

// Materialize cuts the sample for n out of text.
//
// The middle is text[n.Start:n.End]. The context budget left by the middle,
// maxChunkLen - len(middle), is halved with integer division (floor for a
// non-negative budget) and spent on each side, clamped to the file. A budget
// below zero yields empty prefix and suffix. Context bounds that land inside
// a multi-byte UTF-8 sequence move inward to the next rune boundary.
func Materialize(filePath, text string, n *Node, maxChunkLen int) types.Sample {
	start := clamp(n.Start, 0, len(text))
	end := clamp(n.End, start, len(text))

	half := (maxChunkLen - (end - start)) / 2
	if half < 0 {
		half = 0
	}

	prefixStart := max(0, start-half)
	for prefixStart < start && !utf8.RuneStart(text[prefixStart]) {
		prefixStart++
	}

	suffixEnd := min(len(text), end+half)
	for suffixEnd > end && suffixEnd < len(text) && !utf8.RuneStart(text[suffixEnd]) {
		suffixEnd--
	}

	return types.Sample{
		FilePath: filePath,
		Prefix:   text[prefixStart:start],
		Middle:   text[start:end],
		Suffix:   text[end:suffixEnd],
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

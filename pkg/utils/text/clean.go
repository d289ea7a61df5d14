// ABOUTME: Text utilities shared by the Markdown renderers
// ABOUTME: Strips invisible characters and applies cosmetic line indentation

package text

import (
	"strings"
)

const (
	// ZeroWidthSpace is U+200B
	ZeroWidthSpace = "\u200B"

	// ByteOrderMark is U+FEFF
	ByteOrderMark = "\uFEFF"
)

var invisibleReplacer = strings.NewReplacer(
	ZeroWidthSpace, "",
	ByteOrderMark, "",
)

// StripInvisible removes zero-width spaces and byte-order marks anywhere in s
func StripInvisible(s string) string {
	return invisibleReplacer.Replace(s)
}

// IndentLines prefixes every non-empty line of s with prefix.
// Empty lines stay empty so no trailing whitespace is introduced.
func IndentLines(s, prefix string) string {
	if prefix == "" || s == "" {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// LongestRun returns the length of the longest run of r in s
func LongestRun(s string, r rune) int {
	longest, current := 0, 0
	for _, c := range s {
		if c == r {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}
	return longest
}

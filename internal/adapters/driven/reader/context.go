// Package reader holds helpers shared by the Reader adapters in its
// subpackages.
package reader

import (
	"strings"
	"unicode"
)

// ContextAround returns content[start:end] plus up to window bytes on each
// side, trimmed back to whitespace so no word is cut in half.
func ContextAround(content string, start, end, window int) string {
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	if start > end {
		start = end
	}

	left := start - window
	if left <= 0 {
		left = 0
	} else if idx := strings.IndexFunc(content[left:start], unicode.IsSpace); idx >= 0 {
		left += idx + 1
	} else {
		left = start
	}

	right := end + window
	if right >= len(content) {
		right = len(content)
	} else if idx := strings.LastIndexFunc(content[end:right], unicode.IsSpace); idx >= 0 {
		right = end + idx
	} else {
		right = end
	}

	return strings.TrimSpace(content[left:right])
}

package extractive

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type span struct {
	start, end int
}

// splitSpans splits text into sentence spans, cutting sentences longer
// than maxSpanWords. Offsets are byte offsets into text and never include
// surrounding whitespace.
func splitSpans(text string) []span {
	var out []span
	for _, s := range splitSentences(text) {
		out = append(out, capWords(text, s, maxSpanWords)...)
	}
	return out
}

// splitSentences ends a sentence after '.', '!' or '?' when followed by
// whitespace or the end of text, and at line breaks.
func splitSentences(text string) []span {
	var out []span
	start := -1
	for i, r := range text {
		if start < 0 {
			if !unicode.IsSpace(r) {
				start = i
			}
			continue
		}
		if r == '\n' {
			out = append(out, trimmed(text, start, i))
			start = -1
			continue
		}
		if r == '.' || r == '!' || r == '?' {
			next := i + utf8.RuneLen(r)
			if next >= len(text) || isSpaceAt(text, next) {
				out = append(out, span{start, next})
				start = -1
			}
		}
	}
	if start >= 0 {
		out = append(out, trimmed(text, start, len(text)))
	}

	result := out[:0]
	for _, s := range out {
		if s.end > s.start {
			result = append(result, s)
		}
	}
	return result
}

// capWords cuts s into pieces of at most limit words.
func capWords(text string, s span, limit int) []span {
	var (
		out       []span
		words     int
		pieceFrom = s.start
		lastEnd   = s.start
		inWord    bool
	)
	for i, r := range text[s.start:s.end] {
		pos := s.start + i
		if unicode.IsSpace(r) {
			if inWord {
				inWord = false
				lastEnd = pos
				if words == limit {
					out = append(out, span{pieceFrom, lastEnd})
					words = 0
					pieceFrom = -1
				}
			}
			continue
		}
		if !inWord {
			inWord = true
			words++
			if pieceFrom < 0 {
				pieceFrom = pos
			}
		}
	}
	if pieceFrom >= 0 && words > 0 {
		out = append(out, span{pieceFrom, s.end})
	}
	return out
}

func trimmed(text string, start, end int) span {
	seg := text[start:end]
	return span{start, start + len(strings.TrimRightFunc(seg, unicode.IsSpace))}
}

func isSpaceAt(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return unicode.IsSpace(r)
}

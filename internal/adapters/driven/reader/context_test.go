package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextAround(t *testing.T) {
	content := "alpha beta gamma delta TARGET epsilon zeta eta theta"
	start := strings.Index(content, "TARGET")
	end := start + len("TARGET")

	tests := []struct {
		name     string
		window   int
		expected string
	}{
		{"zero window", 0, "TARGET"},
		{"snaps to whole words", 9, "delta TARGET epsilon"},
		{"window covers everything", 500, content},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ContextAround(content, start, end, tc.window))
		})
	}
}

func TestContextAround_ClampsOffsets(t *testing.T) {
	assert.Equal(t, "abc", ContextAround("abc", -5, 99, 0))
	assert.Equal(t, "", ContextAround("abc", 3, 1, 0))
}

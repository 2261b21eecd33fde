package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

func TestStage_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := New(dir)

	path, err := s.Stage(context.Background(), "week1.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_week1.pdf"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should be renamed, not left behind")
}

func TestStage_SameNameDoesNotCollide(t *testing.T) {
	s := New(t.TempDir())

	first, err := s.Stage(context.Background(), "notes.md", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := s.Stage(context.Background(), "notes.md", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStage_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	path, err := s.Stage(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_passwd"))
}

func TestStage_EmptyName(t *testing.T) {
	_, err := New(t.TempDir()).Stage(context.Background(), "", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStage_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(dir).Stage(ctx, "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"slides.pptx":       "slides.pptx",
		`C:\docs\notes.txt`: "notes.txt",
		"a:b?.txt":          "a_b_.txt",
		"..":                "",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitize(in), "input %q", in)
	}
}

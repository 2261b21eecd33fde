package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
courses:
  - title: " Algebra 101 "
    links:
      - https://algebra.example/syllabus
    files:
      - week1.pdf
      - /abs/slides.pptx
  - title: Biology 200
    files: [cells.md]
`)
	dir := filepath.Dir(path)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Courses, 2)

	entries := m.Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, filepath.Join(dir, "week1.pdf"), entries[0].Path)
	assert.Equal(t, "Algebra 101", entries[0].CourseTitle)
	assert.Equal(t, []string{"https://algebra.example/syllabus"}, entries[0].UsefulLinks)

	assert.Equal(t, "/abs/slides.pptx", entries[1].Path)

	assert.Equal(t, "Biology 200", entries[2].CourseTitle)
	assert.Empty(t, entries[2].UsefulLinks)
	assert.NotNil(t, entries[2].UsefulLinks)
}

func TestEntries_LinksNotShared(t *testing.T) {
	m := &Manifest{Courses: []Course{{Title: "C", Links: []string{"a"}, Files: []string{"x", "y"}}}}

	entries := m.Entries()
	entries[0].UsefulLinks[0] = "changed"
	assert.Equal(t, "a", entries[1].UsefulLinks[0])
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no courses", "courses: []"},
		{"missing title", "courses:\n  - files: [a.pdf]"},
		{"no files", "courses:\n  - title: Algebra"},
		{"malformed yaml", "courses: [unclosed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tc.content))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

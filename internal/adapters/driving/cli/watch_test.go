package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_RequiresDir(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestWatchCmd_Once(t *testing.T) {
	env := setupTestServices(t)
	root := t.TempDir()
	writeFile(t, root, "Algebra 101/matrices.txt", matrixNotes)
	writeFile(t, root, "Algebra 101/links.json", `["https://example.edu/algebra"]`)
	writeFile(t, root, "Physics/newton.md", "Force equals mass times acceleration.")

	out, err := execute(t, "watch", "--once", root)

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 files from "+root)

	courses, err := env.services.Courses.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Algebra 101", "Physics"}, courses)

	all, err := env.store.ListAll(context.Background())
	require.NoError(t, err)
	for _, p := range all {
		if p.Metadata.CourseTitle == "Algebra 101" {
			assert.Equal(t, []string{"https://example.edu/algebra"}, p.Metadata.UsefulLinks)
		}
	}
}

func TestWatchCmd_OnceMissingDir(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "watch", "--once", filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan failed")
}

func TestWatchCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "watch", "--once", t.TempDir())

	assert.EqualError(t, err, "watch service not configured")
}

package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoursesCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "courses")

	require.NoError(t, err)
	assert.Contains(t, out, "No courses indexed yet.")
}

func TestCoursesCmd_Lists(t *testing.T) {
	env := setupTestServices(t)
	seedCourse(t, env, "Physics", "Force equals mass times acceleration.")
	seedCourse(t, env, "Algebra 101", matrixNotes)

	out, err := execute(t, "courses")

	require.NoError(t, err)
	assert.Equal(t, "Algebra 101\nPhysics\n", out)
}

func TestCoursesCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	seedCourse(t, env, "Physics", "Force equals mass times acceleration.")

	out, err := execute(t, "courses", "--json")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"Physics"}, got["courses"])
}

func TestCoursesCmd_ListsToStdout(t *testing.T) {
	env := setupTestServices(t)
	seedCourse(t, env, "Physics", "Force equals mass times acceleration.")

	stdout, stderr, err := executeStreams(t, "courses")

	require.NoError(t, err)
	assert.Equal(t, "Physics\n", stdout)
	assert.Empty(t, stderr)
}

func TestCoursesCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "courses")

	assert.EqualError(t, err, "course service not configured")
}

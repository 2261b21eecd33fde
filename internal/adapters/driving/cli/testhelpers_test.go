package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lectern/internal/adapters/driven/reader/extractive"
	"github.com/custodia-labs/lectern/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/services"
	"github.com/custodia-labs/lectern/internal/extractors"
	"github.com/custodia-labs/lectern/internal/postprocessors"
)

// testEnv is a fully wired in-memory lectern.
type testEnv struct {
	store    *memory.PassageStore
	config   *memory.ConfigStore
	services *Services
}

// setupTestServices wires real services over in-memory adapters and
// registers a cleanup that restores the package state.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	settings := domain.DefaultSettings()
	registry, err := extractors.NewDefaultRegistry(settings.Extract)
	require.NoError(t, err)
	pipeline, err := postprocessors.NewDefaultPipeline(settings.Preprocess)
	require.NoError(t, err)

	store := memory.NewPassageStore()
	config := memory.NewConfigStore()
	ingest := services.NewIngestService(registry, services.NewPreprocessor(pipeline), store, nil)

	svcs := &Services{
		QA:       services.NewQAService(services.NewRetriever(store), extractive.New(), settings.QA),
		Ingest:   ingest,
		Courses:  services.NewCourseService(store),
		Watcher:  services.NewWatchService(ingest, registry, 0),
		Settings: services.NewSettingsService(config),
	}
	SetServices(svcs)

	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
	})

	return &testEnv{store: store, config: config, services: svcs}
}

// resetFlags restores flag variables that persist between Execute calls.
func resetFlags() {
	askCourse, askJSON = "", false
	coursesJSON = false
	ingestCourse, ingestLinks, ingestManifest = "", nil, ""
	serveAddr = ""
	watchOnce = false
	verbose, configDir = false, ""
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := executeStreams(t, args...)
	return stdout, err
}

// executeStreams runs the root command with args and returns stdout and
// stderr separately.
func executeStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// seedCourse indexes one text file into a course.
func seedCourse(t *testing.T, env *testEnv, course, text string, links ...string) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "notes.txt", text)
	_, err := env.services.Ingest.IngestFile(context.Background(), path, domain.Metadata{
		CourseTitle: course,
		UsefulLinks: links,
	})
	require.NoError(t, err)
}

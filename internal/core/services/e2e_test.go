package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lectern/internal/adapters/driven/reader/extractive"
	"github.com/custodia-labs/lectern/internal/adapters/driven/staging/filesystem"
	"github.com/custodia-labs/lectern/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lectern/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/extractors"
)

func TestPipeline_QuadraticFormula(t *testing.T) {
	const formula = "x = (-b ± √(b²-4ac)) / 2a"

	stores := []struct {
		name string
		open func(t *testing.T) driven.PassageStore
	}{
		{"memory", func(*testing.T) driven.PassageStore { return memory.NewPassageStore() }},
		{"sqlite", func(t *testing.T) driven.PassageStore {
			store, err := sqlite.NewStore(t.TempDir())
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })
			return store
		}},
	}
	linkSources := []domain.LinkSource{domain.LinkSourceAnswer, domain.LinkSourceFirstRetrieved}

	for _, st := range stores {
		for _, source := range linkSources {
			t.Run(st.name+"/"+source.String(), func(t *testing.T) {
				ctx := context.Background()
				settings := domain.DefaultSettings()
				settings.QA.LinkSource = source

				registry, err := extractors.NewDefaultRegistry(settings.Extract)
				require.NoError(t, err)
				store := st.open(t)

				ingest := NewIngestService(registry, newTestPreprocessor(t), store, filesystem.New(t.TempDir()))
				qa := NewQAService(NewRetriever(store), extractive.New(), settings.QA)

				_, err = ingest.Upload(ctx, domain.UploadRequest{
					FileName:        "formulas.txt",
					CourseTitle:     "Algebra 101",
					UsefulLinksJSON: `["https://example.com/algebra"]`,
					Content:         strings.NewReader("The quadratic formula is " + formula + "."),
				})
				require.NoError(t, err)

				result, err := qa.Answer(ctx, domain.Query{
					Question: "What is the quadratic formula?",
					Filter:   domain.NewCourseFilter("Algebra 101"),
				})

				require.NoError(t, err)
				require.True(t, result.Found())
				assert.Contains(t, result.Answer, formula)
				assert.Greater(t, result.Confidence, 0.0)
				assert.Equal(t, []string{"https://example.com/algebra"}, result.UsefulLinks)
			})
		}
	}
}

func TestPipeline_UploadThenAsk(t *testing.T) {
	ctx := context.Background()
	settings := domain.DefaultSettings()

	registry, err := extractors.NewDefaultRegistry(settings.Extract)
	require.NoError(t, err)
	store := memory.NewPassageStore()
	uploads := t.TempDir()

	ingest := NewIngestService(registry, newTestPreprocessor(t), store, filesystem.New(uploads))
	qa := NewQAService(NewRetriever(store), extractive.New(), settings.QA)
	courses := NewCourseService(store)

	_, err = ingest.Upload(ctx, domain.UploadRequest{
		FileName:        "matrices.txt",
		CourseTitle:     "Algebra 101",
		UsefulLinksJSON: `["https://example.edu/algebra/matrices"]`,
		Content: strings.NewReader(
			"A matrix is a rectangular array of numbers arranged in rows and columns. " +
				"The determinant is a scalar value."),
	})
	require.NoError(t, err)

	_, err = ingest.Upload(ctx, domain.UploadRequest{
		FileName:        "newton.md",
		CourseTitle:     "Physics",
		UsefulLinksJSON: `["https://example.edu/physics/newton"]`,
		Content:         strings.NewReader("# Newton\n\nForce equals mass times acceleration."),
	})
	require.NoError(t, err)

	staged, err := os.ReadDir(uploads)
	require.NoError(t, err)
	assert.Len(t, staged, 2)

	t.Run("answers within course", func(t *testing.T) {
		result, err := qa.Answer(ctx, domain.Query{
			Question: "What is a matrix?",
			Filter:   domain.NewCourseFilter("Algebra 101"),
		})

		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Contains(t, result.Answer, "rectangular array of numbers")
		assert.Contains(t, *result.Context, result.Answer)
		assert.Greater(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
		assert.Equal(t, []string{"https://example.edu/algebra/matrices"}, result.UsefulLinks)
	})

	t.Run("filter excludes other courses", func(t *testing.T) {
		result, err := qa.Answer(ctx, domain.Query{
			Question: "What is a matrix?",
			Filter:   domain.NewCourseFilter("Physics"),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.NotFoundResult(), result)
	})

	t.Run("answers across courses", func(t *testing.T) {
		result, err := qa.Answer(ctx, domain.Query{Question: "What does force equal?"})

		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Contains(t, result.Answer, "mass times acceleration")
		assert.Equal(t, []string{"https://example.edu/physics/newton"}, result.UsefulLinks)
	})

	t.Run("unknown topic", func(t *testing.T) {
		result, err := qa.Answer(ctx, domain.Query{Question: "Who painted the Mona Lisa?"})

		require.NoError(t, err)
		assert.Equal(t, domain.NotFoundResult(), result)
	})

	t.Run("lists courses", func(t *testing.T) {
		list, err := courses.ListCourses(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"Algebra 101", "Physics"}, list)
	})

	t.Run("staged files keep their names", func(t *testing.T) {
		var names []string
		for _, e := range staged {
			names = append(names, e.Name())
		}
		joined := strings.Join(names, " ")
		assert.Contains(t, joined, "matrices.txt")
		assert.Contains(t, joined, "newton.md")
		for _, e := range staged {
			assert.FileExists(t, filepath.Join(uploads, e.Name()))
		}
	})
}

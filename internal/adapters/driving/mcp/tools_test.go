package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the answer", func(t *testing.T) {
		span := "A matrix is a rectangular array of numbers."
		qa := &mockQAService{result: domain.AnswerResult{
			Answer:      "a rectangular array of numbers",
			Context:     &span,
			Confidence:  0.9,
			UsefulLinks: []string{"https://example.edu/matrices"},
		}}
		server, err := NewServer(&Ports{QA: qa})
		require.NoError(t, err)

		result, output, err := server.handleAsk(ctx, nil, AskInput{
			Question:    "What is a matrix?",
			CourseTitle: "Algebra 101",
		})

		require.NoError(t, err)
		assert.Nil(t, result)
		assert.True(t, output.Found)
		assert.Equal(t, "a rectangular array of numbers", output.Answer)
		assert.Equal(t, span, output.Context)
		assert.Equal(t, 0.9, output.Confidence)
		assert.Equal(t, []string{"https://example.edu/matrices"}, output.UsefulLinks)
		require.NotNil(t, qa.gotQuery.Filter)
		assert.Equal(t, "Algebra 101", qa.gotQuery.Filter.CourseTitle)
	})

	t.Run("no course means no filter", func(t *testing.T) {
		qa := &mockQAService{result: domain.NotFoundResult()}
		server, err := NewServer(&Ports{QA: qa})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "q"})

		require.NoError(t, err)
		assert.Nil(t, qa.gotQuery.Filter)
		assert.False(t, output.Found)
		assert.Equal(t, domain.NotFoundMessage, output.Answer)
		assert.Empty(t, output.Context)
	})

	t.Run("invalid input is a tool error", func(t *testing.T) {
		qa := &mockQAService{err: fmt.Errorf("answer: %w", domain.ErrInvalidInput)}
		server, err := NewServer(&Ports{QA: qa})
		require.NoError(t, err)

		result, _, err := server.handleAsk(ctx, nil, AskInput{})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, "invalid input")
	})

	t.Run("store failure is returned", func(t *testing.T) {
		qa := &mockQAService{err: domain.ErrStoreUnavailable}
		server, err := NewServer(&Ports{QA: qa})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestServer_handleListCourses(t *testing.T) {
	ctx := context.Background()

	t.Run("lists courses", func(t *testing.T) {
		server, err := NewServer(&Ports{
			QA:      &mockQAService{},
			Courses: &mockCourseService{courses: []string{"Algebra 101", "Physics"}},
		})
		require.NoError(t, err)

		_, output, err := server.handleListCourses(ctx, nil, ListCoursesInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, []string{"Algebra 101", "Physics"}, output.Courses)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			QA:      &mockQAService{},
			Courses: &mockCourseService{err: errors.New("boom")},
		})
		require.NoError(t, err)

		_, _, err = server.handleListCourses(ctx, nil, ListCoursesInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()
	notes := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(notes, []byte("%PDF-1.4"), 0o600))

	t.Run("indexes the file", func(t *testing.T) {
		ingest := &mockIngestService{result: &domain.IngestResult{
			DocumentID: "doc-1",
			FileName:   "notes.pdf",
			Passages:   4,
		}}
		server, err := NewServer(&Ports{QA: &mockQAService{}, Ingest: ingest})
		require.NoError(t, err)

		_, output, err := server.handleIngest(ctx, nil, IngestInput{
			Path:        notes,
			CourseTitle: "Algebra 101",
		})

		require.NoError(t, err)
		assert.Equal(t, "doc-1", output.DocumentID)
		assert.Equal(t, 4, output.Passages)
		assert.Equal(t, notes, ingest.gotPath)
		assert.Equal(t, "Algebra 101", ingest.gotMeta.CourseTitle)
		assert.Equal(t, []string{}, ingest.gotMeta.UsefulLinks)
	})

	t.Run("missing path is a tool error", func(t *testing.T) {
		server, err := NewServer(&Ports{QA: &mockQAService{}, Ingest: &mockIngestService{}})
		require.NoError(t, err)

		result, _, err := server.handleIngest(ctx, nil, IngestInput{CourseTitle: "Algebra 101"})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})

	t.Run("missing course is a tool error", func(t *testing.T) {
		ingest := &mockIngestService{err: fmt.Errorf("ingest: %w", domain.ErrInvalidInput)}
		server, err := NewServer(&Ports{QA: &mockQAService{}, Ingest: ingest})
		require.NoError(t, err)

		result, _, err := server.handleIngest(ctx, nil, IngestInput{Path: notes})

		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("nonexistent file is a tool error", func(t *testing.T) {
		ingest := &mockIngestService{result: &domain.IngestResult{}}
		server, err := NewServer(&Ports{QA: &mockQAService{}, Ingest: ingest})
		require.NoError(t, err)

		result, _, err := server.handleIngest(ctx, nil, IngestInput{
			Path:        filepath.Join(t.TempDir(), "missing.pdf"),
			CourseTitle: "Algebra 101",
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
		assert.Empty(t, ingest.gotPath)
	})

	t.Run("directory is a tool error", func(t *testing.T) {
		ingest := &mockIngestService{result: &domain.IngestResult{}}
		server, err := NewServer(&Ports{QA: &mockQAService{}, Ingest: ingest})
		require.NoError(t, err)

		result, _, err := server.handleIngest(ctx, nil, IngestInput{
			Path:        t.TempDir(),
			CourseTitle: "Algebra 101",
		})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Empty(t, ingest.gotPath)
	})
}

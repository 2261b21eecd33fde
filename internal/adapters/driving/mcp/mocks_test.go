package mcp

import (
	"context"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// mockQAService is a mock implementation of driving.QAService.
type mockQAService struct {
	result   domain.AnswerResult
	err      error
	gotQuery domain.Query
}

func (m *mockQAService) Answer(_ context.Context, q domain.Query) (domain.AnswerResult, error) {
	m.gotQuery = q
	return m.result, m.err
}

// mockCourseService is a mock implementation of driving.CourseService.
type mockCourseService struct {
	courses []string
	err     error
}

func (m *mockCourseService) ListCourses(_ context.Context) ([]string, error) {
	return m.courses, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result  *domain.IngestResult
	err     error
	gotPath string
	gotMeta domain.Metadata
}

func (m *mockIngestService) Upload(_ context.Context, _ domain.UploadRequest) (*domain.IngestResult, error) {
	return m.result, m.err
}

func (m *mockIngestService) IngestFile(_ context.Context, path string, meta domain.Metadata) (*domain.IngestResult, error) {
	m.gotPath = path
	m.gotMeta = meta
	return m.result, m.err
}

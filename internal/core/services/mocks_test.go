package services

import (
	"context"
	"io"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockPassageStore implements driven.PassageStore for testing.
type mockPassageStore struct {
	WriteFunc            func(ctx context.Context, passages []domain.Passage) error
	QueryByRelevanceFunc func(ctx context.Context, question string, filter *domain.CourseFilter, topK int) ([]domain.Passage, error)
	ListAllFunc          func(ctx context.Context) ([]domain.Passage, error)

	writes [][]domain.Passage
}

func (m *mockPassageStore) Write(ctx context.Context, passages []domain.Passage) error {
	m.writes = append(m.writes, passages)
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, passages)
	}
	return nil
}

func (m *mockPassageStore) QueryByRelevance(
	ctx context.Context,
	question string,
	filter *domain.CourseFilter,
	topK int,
) ([]domain.Passage, error) {
	if m.QueryByRelevanceFunc != nil {
		return m.QueryByRelevanceFunc(ctx, question, filter, topK)
	}
	return nil, nil
}

func (m *mockPassageStore) ListAll(ctx context.Context) ([]domain.Passage, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockPassageStore) Close() error {
	return nil
}

// mockCourseStore adds driven.CourseLister to mockPassageStore.
type mockCourseStore struct {
	mockPassageStore
	DistinctCoursesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockCourseStore) DistinctCourses(ctx context.Context) ([]string, error) {
	return m.DistinctCoursesFunc(ctx)
}

// mockReader implements driven.Reader for testing.
type mockReader struct {
	ExtractAnswersFunc func(ctx context.Context, question string, passages []domain.Passage, topK int) ([]domain.Answer, error)

	gotPassages []domain.Passage
	gotTopK     int
}

func (m *mockReader) ExtractAnswers(
	ctx context.Context,
	question string,
	passages []domain.Passage,
	topK int,
) ([]domain.Answer, error) {
	m.gotPassages = passages
	m.gotTopK = topK
	if m.ExtractAnswersFunc != nil {
		return m.ExtractAnswersFunc(ctx, question, passages, topK)
	}
	return nil, nil
}

// mockExtractor implements driven.TextExtractor for testing.
type mockExtractor struct {
	types       []string
	ExtractFunc func(ctx context.Context, path string) (string, error)
}

func (m *mockExtractor) Name() string             { return "mock" }
func (m *mockExtractor) SupportedTypes() []string { return m.types }

func (m *mockExtractor) Extract(ctx context.Context, path string) (string, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, path)
	}
	return "", nil
}

// mockStager implements driven.Stager for testing.
type mockStager struct {
	StageFunc func(ctx context.Context, fileName string, content io.Reader) (string, error)
	calls     int
}

func (m *mockStager) Stage(ctx context.Context, fileName string, content io.Reader) (string, error) {
	m.calls++
	if m.StageFunc != nil {
		return m.StageFunc(ctx, fileName, content)
	}
	return "/staged/" + fileName, nil
}

var (
	_ driven.PassageStore  = (*mockPassageStore)(nil)
	_ driven.CourseLister  = (*mockCourseStore)(nil)
	_ driven.Reader        = (*mockReader)(nil)
	_ driven.TextExtractor = (*mockExtractor)(nil)
	_ driven.Stager        = (*mockStager)(nil)
)

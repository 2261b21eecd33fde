package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

func passagesNamed(ids ...string) []domain.Passage {
	out := make([]domain.Passage, len(ids))
	for i, id := range ids {
		out[i] = domain.Passage{ID: id, Content: "content " + id}
	}
	return out
}

func TestRetriever_Retrieve_DefaultTopK(t *testing.T) {
	var gotTopK int
	store := &mockPassageStore{
		QueryByRelevanceFunc: func(_ context.Context, _ string, _ *domain.CourseFilter, topK int) ([]domain.Passage, error) {
			gotTopK = topK
			return passagesNamed("a", "b"), nil
		},
	}

	candidates, err := NewRetriever(store).Retrieve(context.Background(), "what?", nil, 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultRetrieverTopK, gotTopK)
	require.Len(t, candidates, 2)
	assert.Equal(t, "a", candidates[0].Passage.ID)
	assert.Equal(t, 0, candidates[0].Rank)
	assert.Equal(t, 1, candidates[1].Rank)
}

func TestRetriever_Retrieve_TruncatesToTopK(t *testing.T) {
	store := &mockPassageStore{
		QueryByRelevanceFunc: func(context.Context, string, *domain.CourseFilter, int) ([]domain.Passage, error) {
			return passagesNamed("a", "b", "c", "d"), nil
		},
	}

	candidates, err := NewRetriever(store).Retrieve(context.Background(), "q", nil, 2)

	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestRetriever_Retrieve_BlankFilterMeansNoFilter(t *testing.T) {
	var gotFilter *domain.CourseFilter
	called := false
	store := &mockPassageStore{
		QueryByRelevanceFunc: func(_ context.Context, _ string, f *domain.CourseFilter, _ int) ([]domain.Passage, error) {
			called = true
			gotFilter = f
			return nil, nil
		},
	}

	_, err := NewRetriever(store).Retrieve(context.Background(), "q", &domain.CourseFilter{CourseTitle: "   "}, 3)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Nil(t, gotFilter)
}

func TestRetriever_Retrieve_PassesTrimmedFilter(t *testing.T) {
	var gotFilter *domain.CourseFilter
	store := &mockPassageStore{
		QueryByRelevanceFunc: func(_ context.Context, _ string, f *domain.CourseFilter, _ int) ([]domain.Passage, error) {
			gotFilter = f
			return nil, nil
		},
	}

	_, err := NewRetriever(store).Retrieve(context.Background(), "q", &domain.CourseFilter{CourseTitle: " Algebra 101 "}, 3)

	require.NoError(t, err)
	require.NotNil(t, gotFilter)
	assert.Equal(t, "Algebra 101", gotFilter.CourseTitle)
}

func TestRetriever_Retrieve_InvalidFilter(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"control characters", "Algebra\x00101"},
		{"too long", strings.Repeat("x", domain.MaxCourseTitleLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			store := &mockPassageStore{
				QueryByRelevanceFunc: func(context.Context, string, *domain.CourseFilter, int) ([]domain.Passage, error) {
					called = true
					return nil, nil
				},
			}

			_, err := NewRetriever(store).Retrieve(context.Background(), "q", &domain.CourseFilter{CourseTitle: tt.title}, 3)

			assert.ErrorIs(t, err, domain.ErrInvalidFilter)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.False(t, called)
		})
	}
}

func TestRetriever_Retrieve_StoreError(t *testing.T) {
	store := &mockPassageStore{
		QueryByRelevanceFunc: func(context.Context, string, *domain.CourseFilter, int) ([]domain.Passage, error) {
			return nil, fmt.Errorf("query: %w", domain.ErrStoreUnavailable)
		},
	}

	candidates, err := NewRetriever(store).Retrieve(context.Background(), "q", nil, 3)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Nil(t, candidates)
}

package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/logger"
)

// DefaultRetrieverTopK is the number of candidates handed to the reader.
const DefaultRetrieverTopK = 3

// Retriever selects the passages most relevant to a question.
type Retriever struct {
	store driven.PassageStore
}

// NewRetriever creates a retriever over the passage store.
func NewRetriever(store driven.PassageStore) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns at most topK candidates, best first. A non-positive
// topK falls back to DefaultRetrieverTopK. Store failures are returned
// as-is without retry.
func (r *Retriever) Retrieve(
	ctx context.Context,
	question string,
	filter *domain.CourseFilter,
	topK int,
) ([]domain.Candidate, error) {
	if topK <= 0 {
		topK = DefaultRetrieverTopK
	}

	// A filter with a blank title is no filter at all.
	if filter != nil {
		filter = domain.NewCourseFilter(filter.CourseTitle)
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	passages, err := r.store.QueryByRelevance(ctx, question, filter, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	if len(passages) > topK {
		passages = passages[:topK]
	}

	logger.Debug("retrieved %d passage(s) for %q", len(passages), question)

	candidates := make([]domain.Candidate, len(passages))
	for i, p := range passages {
		candidates[i] = domain.Candidate{Passage: p, Rank: i}
	}
	return candidates, nil
}

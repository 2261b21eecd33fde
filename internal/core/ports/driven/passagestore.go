package driven

import (
	"context"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// PassageStore persists passages and ranks them against questions.
// Implementations wrap connectivity failures in domain.ErrStoreUnavailable.
type PassageStore interface {
	// Write persists all passages or none.
	Write(ctx context.Context, passages []domain.Passage) error

	// QueryByRelevance returns at most topK passages ranked most relevant
	// first. When filter is non-nil only passages whose course title equals
	// the filter are returned. Ties keep insertion order. Passages sharing
	// no terms with the question are not returned.
	QueryByRelevance(ctx context.Context, question string, filter *domain.CourseFilter, topK int) ([]domain.Passage, error)

	// ListAll returns every stored passage in insertion order.
	ListAll(ctx context.Context) ([]domain.Passage, error)

	// Close releases resources.
	Close() error
}

// CourseLister is implemented by stores that can list distinct course
// titles without a full scan.
type CourseLister interface {
	DistinctCourses(ctx context.Context) ([]string, error)
}

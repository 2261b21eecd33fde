package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/ranking"
)

// Ensure PassageStore implements the interfaces.
var (
	_ driven.PassageStore = (*PassageStore)(nil)
	_ driven.CourseLister = (*PassageStore)(nil)
)

// PassageStore is an in-memory implementation of driven.PassageStore.
// Passages are kept in insertion order and ranked with TF-IDF over the
// filtered corpus at query time.
type PassageStore struct {
	mu       sync.RWMutex
	passages []domain.Passage
	closed   bool
}

// NewPassageStore creates a new in-memory passage store.
func NewPassageStore() *PassageStore {
	return &PassageStore{}
}

// Write appends passages. Metadata is cloned so callers cannot mutate
// stored links.
func (s *PassageStore) Write(_ context.Context, passages []domain.Passage) error {
	if len(passages) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreUnavailable
	}
	for _, p := range passages {
		p.Metadata = p.Metadata.Clone()
		s.passages = append(s.passages, p)
	}
	return nil
}

// QueryByRelevance ranks the passages matching filter against question.
func (s *PassageStore) QueryByRelevance(
	_ context.Context, question string, filter *domain.CourseFilter, topK int,
) ([]domain.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreUnavailable
	}
	if topK <= 0 {
		return nil, nil
	}

	var (
		candidates []domain.Passage
		texts      []string
	)
	for _, p := range s.passages {
		if filter.Matches(p.Metadata) {
			candidates = append(candidates, p)
			texts = append(texts, p.Content)
		}
	}

	hits := ranking.Rank(question, texts)
	if len(hits) > topK {
		hits = hits[:topK]
	}

	result := make([]domain.Passage, 0, len(hits))
	for _, h := range hits {
		p := candidates[h.Index]
		p.Metadata = p.Metadata.Clone()
		result = append(result, p)
	}
	return result, nil
}

// ListAll returns every passage in insertion order.
func (s *PassageStore) ListAll(_ context.Context) ([]domain.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreUnavailable
	}
	result := make([]domain.Passage, len(s.passages))
	for i, p := range s.passages {
		p.Metadata = p.Metadata.Clone()
		result[i] = p
	}
	return result, nil
}

// DistinctCourses returns the sorted set of course titles.
func (s *PassageStore) DistinctCourses(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreUnavailable
	}
	seen := make(map[string]struct{})
	courses := []string{}
	for _, p := range s.passages {
		if _, ok := seen[p.Metadata.CourseTitle]; ok {
			continue
		}
		seen[p.Metadata.CourseTitle] = struct{}{}
		courses = append(courses, p.Metadata.CourseTitle)
	}
	sort.Strings(courses)
	return courses, nil
}

// Close marks the store closed; later calls fail with ErrStoreUnavailable.
func (s *PassageStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

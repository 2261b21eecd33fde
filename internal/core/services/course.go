package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/lectern/internal/core/ports/driven"
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
)

// Ensure CourseService implements the interface.
var _ driving.CourseService = (*CourseService)(nil)

// CourseService lists the courses that have indexed material.
type CourseService struct {
	store driven.PassageStore
}

// NewCourseService creates a course service.
func NewCourseService(store driven.PassageStore) *CourseService {
	return &CourseService{store: store}
}

// ListCourses returns the distinct course titles in sorted order. Stores
// implementing driven.CourseLister answer natively; others are scanned.
func (s *CourseService) ListCourses(ctx context.Context) ([]string, error) {
	var titles []string

	if lister, ok := s.store.(driven.CourseLister); ok {
		courses, err := lister.DistinctCourses(ctx)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		titles = courses
	} else {
		passages, err := s.store.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		titles = make([]string, 0, len(passages))
		for _, p := range passages {
			titles = append(titles, p.Metadata.CourseTitle)
		}
	}

	seen := make(map[string]struct{}, len(titles))
	courses := make([]string, 0, len(titles))
	for _, t := range titles {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		courses = append(courses, t)
	}
	sort.Strings(courses)
	return courses, nil
}

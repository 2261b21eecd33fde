package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxCourseTitleLength bounds the course title accepted in a filter.
const MaxCourseTitleLength = 256

// CourseFilter restricts retrieval to passages of a single course.
// A nil filter means no restriction.
type CourseFilter struct {
	CourseTitle string
}

// NewCourseFilter builds a filter from an optional course title.
// An empty title yields nil, i.e. no restriction.
func NewCourseFilter(courseTitle string) *CourseFilter {
	title := strings.TrimSpace(courseTitle)
	if title == "" {
		return nil
	}
	return &CourseFilter{CourseTitle: title}
}

// Matches reports whether the metadata satisfies the filter.
func (f *CourseFilter) Matches(m Metadata) bool {
	if f == nil {
		return true
	}
	return m.CourseTitle == f.CourseTitle
}

// Validate checks the filter is well formed.
func (f *CourseFilter) Validate() error {
	if f == nil {
		return nil
	}
	if len(f.CourseTitle) > MaxCourseTitleLength {
		return fmt.Errorf("%w: course title exceeds %d bytes", ErrInvalidFilter, MaxCourseTitleLength)
	}
	for _, r := range f.CourseTitle {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: course title contains control characters", ErrInvalidFilter)
		}
	}
	return nil
}

// Query is a question with an optional course filter.
type Query struct {
	// Question is the natural-language question.
	Question string

	// Filter restricts retrieval; nil means all courses.
	Filter *CourseFilter
}

// Candidate is a retrieved passage with its relevance rank (0 = best).
type Candidate struct {
	Passage Passage
	Rank    int
}

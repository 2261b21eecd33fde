package driving

import "context"

// CourseService lists the courses present in the store.
type CourseService interface {
	// ListCourses returns distinct course titles in sorted order.
	ListCourses(ctx context.Context) ([]string, error)
}

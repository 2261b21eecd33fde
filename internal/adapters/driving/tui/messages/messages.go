// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/lectern/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAsk is the question input and answer view.
	ViewAsk ViewType = iota
	// ViewCourses is the course picker.
	ViewCourses
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAsk:
		return "ask"
	case ViewCourses:
		return "courses"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// AnswerCompleted carries the result of a question back to the model.
type AnswerCompleted struct {
	Question string
	Course   string
	Result   domain.AnswerResult
	Err      error
}

// CoursesLoaded carries the course titles present in the store.
type CoursesLoaded struct {
	Courses []string
	Err     error
}

// CourseSelected scopes subsequent questions to a course.
// An empty title means all courses.
type CourseSelected struct {
	Title string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateAsking   State = "asking"
	StateAnswered State = "answered"
	StateNotFound State = "not_found"
	StateError    State = "error"
	StatePicker   State = "picker"
	StateHelp     State = "help"
)

// AllCourses is shown when no course filter is active.
const AllCourses = "All courses"

// Bar displays application status, the active course and keybinding hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	state      State
	message    string
	course     string
	confidence float64
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	scope := s.styles.Badge.Render(s.CourseLabel())

	var state string
	switch s.state {
	case StateAsking:
		state = s.styles.Muted.Render("Thinking...")
	case StateAnswered:
		state = s.styles.Success.Render(fmt.Sprintf("Answered (%.2f)", s.confidence))
	case StateNotFound:
		state = s.styles.Warning.Render("No answer found")
	case StateError:
		if s.message != "" {
			state = s.styles.Error.Render("Error: " + s.message)
		} else {
			state = s.styles.Error.Render("Error")
		}
	case StatePicker:
		state = s.styles.Normal.Render("Choose a course")
	case StateHelp:
		state = s.styles.Normal.Render("Help")
	case StateReady:
		state = s.styles.Muted.Render("Ready")
	default:
		state = s.styles.Muted.Render("Ready")
	}
	if s.message != "" && s.state != StateError {
		state += " " + s.styles.Muted.Render(s.message)
	}
	return scope + " " + state
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StatePicker {
		bindings = s.keymap.PickerHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCourse sets the active course filter; empty means all courses.
func (s *Bar) SetCourse(course string) {
	s.course = course
}

// Course returns the active course filter.
func (s *Bar) Course() string {
	return s.course
}

// CourseLabel returns the label shown for the active course.
func (s *Bar) CourseLabel() string {
	if s.course == "" {
		return AllCourses
	}
	return s.course
}

// SetConfidence sets the confidence shown for an answered question.
func (s *Bar) SetConfidence(confidence float64) {
	s.confidence = confidence
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message. The course filter is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.confidence = 0
}

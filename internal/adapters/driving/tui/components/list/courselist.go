// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/styles"
)

// AllCoursesLabel is the first entry of every course list.
const AllCoursesLabel = "All courses"

// CourseList displays course titles in a navigable list. Index 0 is
// always the "all courses" entry.
type CourseList struct {
	courses  []string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewCourseList creates a new course list component.
func NewCourseList(s *styles.Styles) *CourseList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CourseList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (c *CourseList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CourseList) Update(msg tea.Msg) (*CourseList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		case "home", "g":
			c.selected = 0
		case "end", "G":
			c.selected = len(c.courses)
		}
	}
	return c, nil
}

// View renders the list.
func (c *CourseList) View() string {
	lines := make([]string, 0, len(c.courses)+3)
	lines = append(lines, c.styles.Subtitle.Render(fmt.Sprintf("Courses (%d)", len(c.courses))), "")

	visible := c.height - 2
	if visible < 1 {
		visible = 1
	}
	total := len(c.courses) + 1
	start := 0
	if c.selected >= visible {
		start = c.selected - visible + 1
	}
	end := start + visible
	if end > total {
		end = total
	}

	for i := start; i < end; i++ {
		label := AllCoursesLabel
		if i > 0 {
			label = c.courses[i-1]
		}
		if i == c.selected {
			lines = append(lines, c.styles.Selected.Render("> "+label))
		} else {
			lines = append(lines, c.styles.Normal.Render("  "+label))
		}
	}

	if len(c.courses) == 0 {
		lines = append(lines, "", c.styles.Muted.Render("No courses indexed yet"))
	}

	return strings.Join(lines, "\n")
}

// SetCourses replaces the listed titles, keeping the selection on the
// same title when it is still present.
func (c *CourseList) SetCourses(courses []string) {
	current := c.SelectedCourse()
	c.courses = courses
	c.selected = 0
	c.Select(current)
}

// Courses returns the listed titles.
func (c *CourseList) Courses() []string {
	return c.courses
}

// Select moves the selection to the given title. An empty or unknown
// title selects "all courses".
func (c *CourseList) Select(title string) {
	c.selected = 0
	for i, course := range c.courses {
		if course == title {
			c.selected = i + 1
			return
		}
	}
}

// Selected returns the selected index; 0 is "all courses".
func (c *CourseList) Selected() int {
	return c.selected
}

// SelectedCourse returns the selected title, or "" for all courses.
func (c *CourseList) SelectedCourse() string {
	if c.selected <= 0 || c.selected > len(c.courses) {
		return ""
	}
	return c.courses[c.selected-1]
}

// MoveUp moves selection up.
func (c *CourseList) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// MoveDown moves selection down.
func (c *CourseList) MoveDown() {
	if c.selected < len(c.courses) {
		c.selected++
	}
}

// Next moves the selection down, wrapping to "all courses".
func (c *CourseList) Next() {
	c.selected = (c.selected + 1) % (len(c.courses) + 1)
}

// Prev moves the selection up, wrapping to the last course.
func (c *CourseList) Prev() {
	n := len(c.courses) + 1
	c.selected = (c.selected - 1 + n) % n
}

// SetDimensions sets the component dimensions.
func (c *CourseList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of courses, excluding the "all courses" entry.
func (c *CourseList) Count() int {
	return len(c.courses)
}

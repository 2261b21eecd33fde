// Package courses provides the course picker view for the TUI.
package courses

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
)

// View lists the indexed courses and emits a CourseSelected on enter.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.CourseList
	statusbar *status.Bar

	courseService driving.CourseService
	ctx           context.Context

	loading bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new course picker. A nil course service leaves the
// picker with only the "all courses" entry.
func NewView(s *styles.Styles, km *keymap.KeyMap, courseService driving.CourseService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetState(status.StatePicker)

	return &View{
		styles:        s,
		keymap:        km,
		list:          list.NewCourseList(s),
		statusbar:     bar,
		courseService: courseService,
		ctx:           context.Background(),
	}
}

// WithContext sets the context used to list courses.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Load returns a command that lists the courses, or nil without a service.
func (v *View) Load() tea.Cmd {
	if v.courseService == nil {
		return nil
	}
	v.loading = true
	svc := v.courseService
	ctx := v.ctx
	return func() tea.Msg {
		courses, err := svc.ListCourses(ctx)
		return messages.CoursesLoaded{Courses: courses, Err: err}
	}
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CoursesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetMessage("")
		v.list.SetCourses(msg.Courses)
		return v, nil

	case messages.CourseSelected:
		v.Select(msg.Title)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Select):
			title := v.list.SelectedCourse()
			return v, func() tea.Msg { return messages.CourseSelected{Title: title} }
		case keymap.Matches(k, v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewAsk} }
		case k == "r":
			return v, v.Load()
		}
		v.list, _ = v.list.Update(msg)
		return v, nil
	}

	return v, nil
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Choose a course"), ""}
	switch {
	case v.loading:
		sections = append(sections, v.styles.Muted.Render("Loading courses..."))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "", v.list.View())
	default:
		sections = append(sections, v.list.View())
	}
	sections = append(sections, "", v.styles.Help.Render("r: reload"), v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// title, help and status lines
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Select highlights the given course; empty selects all courses.
func (v *View) Select(title string) {
	v.list.Select(title)
	v.statusbar.SetCourse(v.list.SelectedCourse())
}

// SelectedCourse returns the highlighted course, or "" for all courses.
func (v *View) SelectedCourse() string {
	return v.list.SelectedCourse()
}

// Courses returns the listed course titles.
func (v *View) Courses() []string {
	return v.list.Courses()
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

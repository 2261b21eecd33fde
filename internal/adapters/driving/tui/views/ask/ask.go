// Package ask provides the question-and-answer view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lectern/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driving"
)

// View holds the question input, the answer pane and the status bar.
// The input keeps focus; tab and shift+tab cycle the course scope.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	courses   *list.CourseList
	statusbar *status.Bar

	qaService driving.QAService
	ctx       context.Context

	width  int
	height int
	ready  bool

	asking   bool
	question string
	result   *domain.AnswerResult
	err      error
}

// NewView creates a new ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, qaService driving.QAService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQuestionInput(s),
		courses:   list.NewCourseList(s),
		statusbar: status.NewBar(s, km),
		qaService: qaService,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for questions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerCompleted:
		v.handleAnswer(msg)
		return v, nil

	case messages.CoursesLoaded:
		if msg.Err == nil {
			v.courses.SetCourses(msg.Courses)
			v.statusbar.SetCourse(v.courses.SelectedCourse())
		}
		return v, nil

	case messages.CourseSelected:
		v.SetCourse(msg.Title)
		return v, nil

	case messages.ErrorOccurred:
		v.asking = false
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Ask):
		question := v.input.Question()
		if question == "" || v.asking {
			return v, nil
		}
		v.asking = true
		v.question = question
		v.err = nil
		v.statusbar.SetState(status.StateAsking)
		v.statusbar.SetMessage("")
		return v, v.ask(question, v.courses.SelectedCourse())

	case keymap.Matches(k, v.keymap.NextCourse):
		v.courses.Next()
		v.statusbar.SetCourse(v.courses.SelectedCourse())
		return v, nil

	case keymap.Matches(k, v.keymap.PrevCourse):
		v.courses.Prev()
		v.statusbar.SetCourse(v.courses.SelectedCourse())
		return v, nil

	case keymap.Matches(k, v.keymap.Clear):
		v.Reset()
		return v, nil

	case keymap.Matches(k, v.keymap.Courses):
		return v, changeView(messages.ViewCourses)

	case keymap.Matches(k, v.keymap.Help):
		return v, changeView(messages.ViewHelp)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// ask runs the question through the QA service off the update loop.
func (v *View) ask(question, course string) tea.Cmd {
	qa := v.qaService
	ctx := v.ctx
	return func() tea.Msg {
		if qa == nil {
			return messages.ErrorOccurred{Err: ErrNoQAService}
		}
		result, err := qa.Answer(ctx, domain.Query{
			Question: question,
			Filter:   domain.NewCourseFilter(course),
		})
		return messages.AnswerCompleted{Question: question, Course: course, Result: result, Err: err}
	}
}

func (v *View) handleAnswer(msg messages.AnswerCompleted) {
	if msg.Question != v.question {
		return
	}
	v.asking = false

	if msg.Err != nil {
		v.err = msg.Err
		v.result = nil
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	result := msg.Result
	v.err = nil
	v.result = &result
	if result.Found() {
		v.statusbar.SetState(status.StateAnswered)
		v.statusbar.SetConfidence(result.Confidence)
	} else {
		v.statusbar.SetState(status.StateNotFound)
	}
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	header := v.styles.Title.Render("Lectern") + "  " + v.styles.Badge.Render(v.statusbar.CourseLabel())
	sections = append(sections, header, "", v.input.View(), "")

	switch {
	case v.asking:
		sections = append(sections, v.styles.Muted.Render("Searching the course materials..."))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.result != nil:
		sections = append(sections, v.renderResult(*v.result))
	default:
		sections = append(sections, v.styles.Muted.Render("Type a question and press enter."))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderResult(result domain.AnswerResult) string {
	if !result.Found() {
		return v.styles.Warning.Render(result.Answer)
	}

	wrap := v.width - 4
	if wrap < 20 {
		wrap = 20
	}

	lines := []string{
		v.styles.Subtitle.Render("Answer"),
		v.styles.Answer.Render(result.Answer),
		v.styles.Muted.Render(fmt.Sprintf("Confidence: %.2f", result.Confidence)),
		"",
		v.styles.Subtitle.Render("Context"),
		v.styles.Normal.Width(wrap).Render(*result.Context),
	}

	if len(result.UsefulLinks) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Useful links"))
		for _, link := range result.UsefulLinks {
			lines = append(lines, "  "+v.styles.Link.Render(link))
		}
	}

	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.courses.SetDimensions(width, height)
	v.statusbar.SetWidth(width)
}

// SetCourse scopes later questions to the given course; empty means all.
func (v *View) SetCourse(title string) {
	v.courses.Select(title)
	v.statusbar.SetCourse(v.courses.SelectedCourse())
}

// Course returns the active course filter, or "" for all courses.
func (v *View) Course() string {
	return v.courses.SelectedCourse()
}

// Question returns the current input value.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the input value.
func (v *View) SetQuestion(question string) {
	v.input.SetValue(question)
}

// Result returns the last answer, or nil.
func (v *View) Result() *domain.AnswerResult {
	return v.result
}

// Asking reports whether a question is in flight.
func (v *View) Asking() bool {
	return v.asking
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Reset clears the question and the answer pane. The course scope is kept.
func (v *View) Reset() {
	v.input.Reset()
	v.asking = false
	v.question = ""
	v.result = nil
	v.err = nil
	v.statusbar.Clear()
}

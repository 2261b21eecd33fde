package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

var (
	askCourse string
	askJSON   bool
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the course materials",
	Long: `Retrieves the most relevant passages for the question and extracts an
answer span from them.

Use --course to restrict the search to a single course. When nothing in
the materials answers the question a fixed not-found message is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askCourse, "course", "c", "", "restrict the search to this course")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if qaService == nil {
		return errNotConfigured("qa")
	}

	question := strings.Join(args, " ")
	result, err := qaService.Answer(cmd.Context(), domain.Query{
		Question: question,
		Filter:   domain.NewCourseFilter(askCourse),
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	printAnswer(out, result, isTerminal(out))
	return nil
}

// answerStyles renders answers on a terminal; the zero value prints plain text.
type answerStyles struct {
	heading lipgloss.Style
	answer  lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
	warning lipgloss.Style
}

func newAnswerStyles(styled bool) answerStyles {
	if !styled {
		return answerStyles{}
	}
	return answerStyles{
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D97706")),
		answer:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#84CC16")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#78716C")),
		link:    lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#0EA5E9")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")),
	}
}

func printAnswer(out io.Writer, result domain.AnswerResult, styled bool) {
	s := newAnswerStyles(styled)

	if !result.Found() {
		fmt.Fprintln(out, s.warning.Render(result.Answer))
		return
	}

	fmt.Fprintf(out, "%s %s\n", s.heading.Render("Answer:"), s.answer.Render(result.Answer))
	fmt.Fprintf(out, "%s %.2f\n", s.heading.Render("Confidence:"), result.Confidence)
	fmt.Fprintln(out)
	fmt.Fprintln(out, s.heading.Render("Context:"))
	fmt.Fprintf(out, "  %s\n", s.muted.Render(*result.Context))

	if len(result.UsefulLinks) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, s.heading.Render("Useful links:"))
		for _, link := range result.UsefulLinks {
			fmt.Fprintf(out, "  - %s\n", s.link.Render(link))
		}
	}
}

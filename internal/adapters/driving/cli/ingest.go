package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lectern/internal/adapters/driven/manifest"
	"github.com/custodia-labs/lectern/internal/core/domain"
)

var (
	ingestCourse   string
	ingestLinks    []string
	ingestManifest string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Index course material files",
	Long: `Extracts the text of each file, splits it into passages and stores them
under the given course.

Either pass files with --course (and optionally --link), or describe many
courses at once in a YAML manifest:

  courses:
    - title: Algebra 101
      links: [https://example.edu/algebra]
      files: [notes/week1.pdf, notes/week2.pptx]`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestCourse, "course", "c", "", "course the files belong to")
	ingestCmd.Flags().StringSliceVarP(&ingestLinks, "link", "l", nil, "useful link attached to every passage (repeatable)")
	ingestCmd.Flags().StringVarP(&ingestManifest, "manifest", "m", "", "YAML manifest listing courses and files")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	entries, err := ingestEntries(args)
	if err != nil {
		return err
	}

	var failed int
	for _, e := range entries {
		if _, err := os.Stat(e.Path); err != nil {
			failed++
			cmd.PrintErrf("  ✗ %s: %v\n", e.Path, err)
			continue
		}
		res, err := ingestService.IngestFile(cmd.Context(), e.Path, domain.Metadata{
			CourseTitle: e.CourseTitle,
			UsefulLinks: e.UsefulLinks,
		})
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return fmt.Errorf("ingest failed: %w", err)
			}
			failed++
			cmd.PrintErrf("  ✗ %s: %v\n", e.Path, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s → %s (%d passages)\n", res.FileName, res.CourseTitle, res.Passages)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(entries))
	}
	return nil
}

func ingestEntries(args []string) ([]manifest.Entry, error) {
	if ingestManifest != "" {
		if len(args) > 0 {
			return nil, errors.New("pass files or --manifest, not both")
		}
		m, err := manifest.Load(ingestManifest)
		if err != nil {
			return nil, err
		}
		return m.Entries(), nil
	}

	if len(args) == 0 {
		return nil, errors.New("no files given")
	}
	if strings.TrimSpace(ingestCourse) == "" {
		return nil, errors.New("--course is required")
	}

	entries := make([]manifest.Entry, 0, len(args))
	for _, path := range args {
		entries = append(entries, manifest.Entry{
			Path:        path,
			CourseTitle: ingestCourse,
			UsefulLinks: ingestLinks,
		})
	}
	return entries, nil
}

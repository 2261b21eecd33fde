package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var coursesJSON bool

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List indexed courses",
	Args:  cobra.NoArgs,
	RunE:  runCourses,
}

func init() {
	coursesCmd.Flags().BoolVar(&coursesJSON, "json", false, "output courses as JSON")
	rootCmd.AddCommand(coursesCmd)
}

func runCourses(cmd *cobra.Command, _ []string) error {
	if courseService == nil {
		return errNotConfigured("course")
	}

	courses, err := courseService.ListCourses(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing courses failed: %w", err)
	}

	if coursesJSON {
		data, err := json.MarshalIndent(map[string][]string{"courses": courses}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal courses: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(courses) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No courses indexed yet.")
		return nil
	}
	for _, c := range courses {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}

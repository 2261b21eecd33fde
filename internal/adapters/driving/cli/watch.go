package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var watchOnce bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Index course materials dropped into a directory",
	Long: `Watch a directory tree and index supported files as they appear or change.

Each top-level subdirectory is a course named after the directory. An
optional links.json (a JSON array of URLs) inside a course directory
supplies the useful links for its files. Files are re-indexed only when
their content changes.

Use --once to scan the tree a single time and exit.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "scan once and exit")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watcher == nil {
		return errNotConfigured("watch")
	}
	root := args[0]

	if watchOnce {
		n, err := watcher.Scan(cmd.Context(), root)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d files from %s\n", n, root)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (ctrl+c to stop)\n", root)
	if err := watcher.Watch(cmd.Context(), root); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

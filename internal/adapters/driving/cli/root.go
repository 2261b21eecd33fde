// Package cli provides the lectern command line, built on cobra.
// Commands call the core through driving ports. Services are either set
// directly with SetServices or built lazily by the bootstrap function
// once global flags are parsed.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lectern/internal/core/ports/driving"
	"github.com/custodia-labs/lectern/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

// annotationSettingsOnly marks commands that need configuration but no store.
const annotationSettingsOnly = "lectern.settings_only"

// Services holds the driving ports used by the commands.
type Services struct {
	QA       driving.QAService
	Ingest   driving.IngestService
	Courses  driving.CourseService
	Watcher  driving.Watcher
	Settings driving.SettingsService
}

// BootstrapOptions carries the global flags into the bootstrap function.
type BootstrapOptions struct {
	ConfigDir string
	Verbose   bool

	// SettingsOnly asks for the settings service alone, so settings can be
	// repaired while the configured store is unreachable.
	SettingsOnly bool
}

// BootstrapFunc builds the services. The cleanup it returns runs after
// the command finishes and may be nil.
type BootstrapFunc func(ctx context.Context, opts BootstrapOptions) (*Services, func(), error)

var (
	qaService       driving.QAService
	ingestService   driving.IngestService
	courseService   driving.CourseService
	watcher         driving.Watcher
	settingsService driving.SettingsService

	bootstrap BootstrapFunc
	cleanup   func()

	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Ask questions about your course materials",
	Long: `lectern indexes course materials (PDF, PowerPoint, Excel, HTML,
Markdown and plain text) and answers questions by retrieving the most
relevant passages and extracting an answer span from them.

Every answer comes with the surrounding context, a confidence score and
the useful links supplied when the material was uploaded.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.lectern)")
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd == versionCmd || bootstrap == nil {
		return nil
	}

	settingsOnly := cmd.Annotations[annotationSettingsOnly] == "true"
	if settingsService != nil && (settingsOnly || qaService != nil) {
		return nil
	}

	svcs, done, err := bootstrap(cmd.Context(), BootstrapOptions{
		ConfigDir:    configDir,
		Verbose:      verbose,
		SettingsOnly: settingsOnly,
	})
	if err != nil {
		return err
	}
	SetServices(svcs)
	cleanup = done
	return nil
}

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	qaService = s.QA
	ingestService = s.Ingest
	courseService = s.Courses
	watcher = s.Watcher
	settingsService = s.Settings
}

// SetBootstrap installs the function that builds services on demand.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx and releases bootstrapped resources.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// errNotConfigured reports a command run without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// secretKeys are masked on display and read without echo when no value is given.
//
//nolint:gosec // G101: config key names, not credentials.
var secretKeys = map[string]bool{
	"reader.api_token":           true,
	"extract.unidoc_license_key": true,
}

var settingsAnnotations = map[string]string{annotationSettingsOnly: "true"}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change lectern settings.

Settings are stored in config.toml under the config directory. Every key
can be overridden by an environment variable named LECTERN_ followed by
the key in upper case with dots replaced by underscores, for example
LECTERN_STORE_BACKEND=memory.`,
	Annotations: settingsAnnotations,
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: settingsAnnotations,
	RunE:        runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a setting",
	Long: `Validate and store a single setting. Run "lectern settings keys" for the
list of keys. Secret keys prompt for the value when it is omitted.`,
	Args:        cobra.RangeArgs(1, 2),
	Annotations: settingsAnnotations,
	RunE:        runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:         "keys",
	Short:       "List setting keys",
	Args:        cobra.NoArgs,
	Annotations: settingsAnnotations,
	RunE:        runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Settings")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Store]")
	fmt.Fprintf(out, "  Backend: %s\n", s.Store.Backend.Description())
	fmt.Fprintf(out, "  SQLite dir: %s\n", orDefault(s.Store.SQLiteDir, "~/.lectern/data"))
	fmt.Fprintf(out, "  Mongo URI: %s\n", s.Store.MongoURI)
	fmt.Fprintf(out, "  Mongo database: %s\n", s.Store.MongoDatabase)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Preprocess]")
	fmt.Fprintf(out, "  Split length: %d words\n", s.Preprocess.SplitLength)
	fmt.Fprintf(out, "  Split overlap: %d words\n", s.Preprocess.SplitOverlap)
	fmt.Fprintf(out, "  Header/footer lines: %d\n", s.Preprocess.HeaderFooterLines)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[QA]")
	fmt.Fprintf(out, "  Retriever top k: %d\n", s.QA.RetrieverTopK)
	fmt.Fprintf(out, "  Reader top k: %d\n", s.QA.ReaderTopK)
	fmt.Fprintf(out, "  Link source: %s\n", s.QA.LinkSource)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Reader]")
	fmt.Fprintf(out, "  Backend: %s\n", s.Reader.Backend)
	fmt.Fprintf(out, "  Endpoint: %s\n", s.Reader.Endpoint)
	fmt.Fprintf(out, "  API token: %s\n", maskSecret(s.Reader.APIToken))
	fmt.Fprintf(out, "  Context window: %d chars\n", s.Reader.ContextWindow)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Server]")
	fmt.Fprintf(out, "  Address: %s\n", s.Server.Addr)
	fmt.Fprintf(out, "  Rate limit: %g req/s (burst %d)\n", s.Server.RateLimit, s.Server.RateBurst)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Extract]")
	fmt.Fprintf(out, "  PDF backend: %s\n", s.Extract.PDFBackend)
	fmt.Fprintf(out, "  UniDoc license: %s\n", maskSecret(s.Extract.UniDocLicenseKey))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Uploads dir: %s\n", s.UploadsDir)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		if !secretKeys[key] {
			return fmt.Errorf("a value is required for %s", key)
		}
		cmd.PrintErrf("Enter value for %s: ", key)
		value = readPassword()
		cmd.PrintErrln()
		if value == "" {
			return errors.New("no value entered")
		}
	}

	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	shown := value
	if secretKeys[key] {
		shown = maskSecret(value)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, shown)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	for _, k := range settingsService.Keys() {
		fmt.Fprintln(cmd.OutOrStdout(), k)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

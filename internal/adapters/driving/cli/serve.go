package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lectern/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/lectern/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Routes:
  POST /upload      multipart file with course_title and useful_links
  GET  /search      ?question=...&course_title=...
  GET  /courses     distinct course titles
  GET  /healthz     liveness

The listen address and rate limit come from server.* settings unless
--addr is given.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	addr := settings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		QA:      qaService,
		Ingest:  ingestService,
		Courses: courseService,
	}, httpapi.Options{
		Addr:      addr,
		RateLimit: settings.Server.RateLimit,
		RateBurst: settings.Server.RateBurst,
		Version:   version,
		Logger:    logger.Zap(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on %s\n", addr)
	return server.Run(cmd.Context())
}

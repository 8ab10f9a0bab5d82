package main

import (
	"github.com/paperforge/paperforge/internal/config"
	"github.com/paperforge/paperforge/internal/ingest"
	"github.com/paperforge/paperforge/internal/llm"
	"github.com/paperforge/paperforge/internal/server"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	host string
	port int
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.host, "host", "", "Bind host (default: configured api_host)")
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 0, "Bind port (default: configured api_port)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the paper-writing HTTP API",
	Long: `Run the HTTP API for session-based paper writing. Endpoints that
need text generation return 503 until an API key is configured.

When run inside a workspace the workspace chunk index backs reference
retrieval; otherwise ingest endpoints return 503.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	gc, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading global config: %v", err)
	}

	host := serveFlags.host
	if host == "" {
		host = gc.APIHost
	}
	port := serveFlags.port
	if port == 0 {
		port = gc.APIPort
	}

	var gen llm.Generator
	if gc.APIKey != "" {
		gen = llm.NewClient(
			llm.WithAPIKey(gc.APIKey),
			llm.WithBaseURL(gc.BaseURL),
			llm.WithModel(gc.Model),
		)
	}

	var idx *ingest.Index
	if root, err := config.FindWorkspace(startDir()); err == nil {
		idx = openIndex(root)
		defer idx.Close()
	}

	srv := server.New(server.Options{Generator: gen, Index: idx})

	if humanOutput {
		outputHuman("Serving on %s:%d\n", host, port)
	}

	if err := srv.Run(host, port); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	return nil
}

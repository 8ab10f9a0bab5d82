package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/paperforge/paperforge/internal/config"
	"github.com/paperforge/paperforge/internal/ingest"
	"github.com/spf13/cobra"
)

var ingestWatch bool

func init() {
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "Keep watching the folder and re-ingest on changes")
	rootCmd.AddCommand(ingestCmd)
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [folder]",
	Short: "Index a folder of reference material",
	Long: `Index a folder of reference material (.pdf, .txt, .md) into the
workspace chunk index for full-text retrieval during outline and
section generation.

With no argument the configured reference_dir is used. Unsupported and
unreadable files are skipped, not fatal. With --watch the folder is
monitored and files are re-indexed as they change, until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	root := requireWorkspace()

	folder := ""
	if len(args) == 1 {
		folder = args[0]
	} else {
		cfg := loadWorkspaceConfig(root)
		folder = cfg.ReferenceDir
	}
	if folder == "" {
		exitWithError(ExitConfigError, "no folder given and reference_dir is not configured")
	}
	folder = config.ExpandPath(folder)

	idx := openIndex(root)
	defer idx.Close()

	ing := ingest.NewIngestor(idx)
	result, err := ing.IngestFolder(folder)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		outputHuman("Processed %d files (%d chunks), skipped %d\n",
			result.FilesProcessed, result.TotalChunks, result.FilesSkipped)
		for _, name := range result.SkippedFiles {
			outputHuman("  skipped: %s\n", name)
		}
	} else {
		outputJSON(result)
	}

	if !ingestWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, err := ing.Watch(ctx, folder)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Watching %s (ctrl-c to stop)\n", folder)
	}

	for ev := range events {
		switch {
		case ev.Err != nil:
			if humanOutput {
				outputHuman("  error: %v\n", ev.Err)
			} else {
				outputJSON(ErrorResponse{Error: ev.Err.Error()})
			}
		case ev.Removed:
			if humanOutput {
				outputHuman("  removed: %s\n", ev.Path)
			} else {
				outputJSON(map[string]any{"path": ev.Path, "removed": true})
			}
		default:
			if humanOutput {
				outputHuman("  indexed: %s (%d chunks)\n", ev.Path, ev.Chunks)
			} else {
				outputJSON(map[string]any{"path": ev.Path, "chunks": ev.Chunks})
			}
		}
	}

	return nil
}

package main

import (
	"errors"
	"os"

	"github.com/paperforge/paperforge/internal/config"
	"github.com/paperforge/paperforge/internal/ingest"
	"github.com/paperforge/paperforge/internal/llm"
	"github.com/paperforge/paperforge/internal/paper"
)

// startDir returns where workspace discovery begins. PAPERFORGE_ROOT
// overrides the working directory.
func startDir() string {
	if root := os.Getenv("PAPERFORGE_ROOT"); root != "" {
		return root
	}

	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	return cwd
}

// requireWorkspace finds the enclosing workspace root or exits.
func requireWorkspace() string {
	root, err := config.FindWorkspace(startDir())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// loadWorkspaceConfig loads the workspace config or exits.
func loadWorkspaceConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// loadPaper reads the workspace paper state or exits. A workspace
// without a saved paper yields an empty one.
func loadPaper(root string) *paper.Paper {
	p, err := paper.Load(config.PaperPath(root))
	if err == nil {
		return p
	}
	if errors.Is(err, paper.ErrStateNotFound) {
		return paper.New()
	}
	exitWithError(ExitDataError, "loading paper: %v", err)
	return nil
}

// savePaper writes the workspace paper state or exits.
func savePaper(root string, p *paper.Paper) {
	if err := paper.Save(p, config.PaperPath(root)); err != nil {
		exitWithError(ExitError, "saving paper: %v", err)
	}
}

// openIndex opens the workspace chunk index or exits.
func openIndex(root string) *ingest.Index {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	idx, err := ingest.OpenIndex(config.IndexPath(root))
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	return idx
}

// maybeOpenIndex opens the index only when one has been built. Outline
// and section generation work without reference material.
func maybeOpenIndex(root string) *ingest.Index {
	if _, err := os.Stat(config.IndexPath(root)); err != nil {
		return nil
	}
	return openIndex(root)
}

// newGenerator builds the model client from the global config or exits
// when no API key is available.
func newGenerator() *llm.Client {
	gc, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading global config: %v", err)
	}
	if gc.APIKey == "" {
		exitWithError(ExitConfigError, "no API key configured (set PAPERFORGE_API_KEY or api_key in %s)", config.GlobalConfigPath())
	}

	return llm.NewClient(
		llm.WithAPIKey(gc.APIKey),
		llm.WithBaseURL(gc.BaseURL),
		llm.WithModel(gc.Model),
	)
}

// Package config handles workspace and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents workspace configuration stored in .paperforge/config.json.
type Config struct {
	ReferenceDir  string `json:"reference_dir,omitempty"`  // Folder of reference material to ingest
	OutputDir     string `json:"output_dir,omitempty"`     // Where exported documents are written
	CitationStyle string `json:"citation_style,omitempty"` // Default style for new papers: apa, ieee, mla
}

const (
	PaperforgeDir = ".paperforge"
	ConfigFile    = "config.json"
	PaperFile     = "paper.json"
	CacheDir      = "cache"
	IndexFile     = "chunks.db"

	// DefaultOutputDir is used when output_dir is not configured.
	DefaultOutputDir = "output"
)

// WorkspacePath returns the path to the .paperforge directory from a root path.
func WorkspacePath(root string) string {
	return filepath.Join(root, PaperforgeDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, PaperforgeDir, ConfigFile)
}

// PaperPath returns the path to paper.json from a root path.
func PaperPath(root string) string {
	return filepath.Join(root, PaperforgeDir, PaperFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, PaperforgeDir, CacheDir)
}

// IndexPath returns the path to the reference chunk index from a root path.
func IndexPath(root string) string {
	return filepath.Join(root, PaperforgeDir, CacheDir, IndexFile)
}

// IsWorkspace checks if the given path contains a paperforge workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(WorkspacePath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a paperforge workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a paperforge workspace (no %s directory found)", PaperforgeDir)
		}
		abs = parent
	}
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// OutputPath resolves the configured output directory against the
// workspace root. Relative paths are workspace-relative.
func (c *Config) OutputPath(root string) string {
	dir := c.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

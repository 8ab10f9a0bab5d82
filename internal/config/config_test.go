package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(WorkspacePath(root), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{
		ReferenceDir:  "refs",
		OutputDir:     "out",
		CitationStyle: "ieee",
	}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.ReferenceDir != "refs" || loaded.OutputDir != "out" || loaded.CitationStyle != "ieee" {
		t.Errorf("Load() = %+v, want saved values", loaded)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load() on empty dir succeeded, want error")
	}
}

func TestFindWorkspace(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(WorkspacePath(root), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindWorkspace(nested)
	if err != nil {
		t.Fatalf("FindWorkspace() failed: %v", err)
	}
	// Resolve symlinks: macOS TempDir lives under /var -> /private/var.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("FindWorkspace() = %q, want %q", found, root)
	}
}

func TestFindWorkspaceNotFound(t *testing.T) {
	_, err := FindWorkspace(t.TempDir())
	if err == nil {
		t.Fatal("FindWorkspace() succeeded outside a workspace")
	}
	if !strings.Contains(err.Error(), PaperforgeDir) {
		t.Errorf("error %q should mention %s", err, PaperforgeDir)
	}
}

func TestOutputPath(t *testing.T) {
	root := "/ws"
	tests := []struct {
		outputDir string
		want      string
	}{
		{"", filepath.Join(root, DefaultOutputDir)},
		{"out", filepath.Join(root, "out")},
		{"/abs/out", "/abs/out"},
	}

	for _, tt := range tests {
		cfg := &Config{OutputDir: tt.outputDir}
		if got := cfg.OutputPath(root); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.outputDir, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandPath("~/papers"); got != filepath.Join(home, "papers") {
		t.Errorf("ExpandPath(~/papers) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}

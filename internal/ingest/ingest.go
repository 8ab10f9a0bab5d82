// Package ingest reads reference material from a folder, chunks it, and
// indexes the chunks for full-text retrieval by the outline builder and
// section writer.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrFolderNotFound is returned when the ingest path does not exist.
var ErrFolderNotFound = errors.New("folder path does not exist")

// ErrNotDirectory is returned when the ingest path is not a directory.
var ErrNotDirectory = errors.New("path is not a directory")

// Result reports what an ingest run did.
type Result struct {
	FilesProcessed int      `json:"files_processed"`
	FilesSkipped   int      `json:"files_skipped"`
	SkippedFiles   []string `json:"skipped_files"`
	TotalChunks    int      `json:"total_chunks"`
}

// Ingestor reads reference folders into an Index.
type Ingestor struct {
	idx          *Index
	chunkSize    int
	chunkOverlap int
}

// NewIngestor creates an Ingestor with default chunking parameters.
func NewIngestor(idx *Index) *Ingestor {
	return &Ingestor{
		idx:          idx,
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
	}
}

// IngestFolder indexes every supported file directly inside folder.
// Unsupported and unreadable files are counted and listed as skipped
// rather than failing the run.
func (ing *Ingestor) IngestFolder(folder string) (Result, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
		}
		return Result{}, fmt.Errorf("checking folder: %w", err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrNotDirectory, folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return Result{}, fmt.Errorf("reading folder: %w", err)
	}

	// Deterministic processing order regardless of directory listing.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var result Result
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		n, err := ing.IngestFile(path)
		if err != nil {
			result.FilesSkipped++
			result.SkippedFiles = append(result.SkippedFiles, entry.Name())
			continue
		}

		result.FilesProcessed++
		result.TotalChunks += n
	}

	return result, nil
}

// IngestFile extracts, chunks, and indexes a single file, returning the
// number of chunks indexed. Re-ingesting a file replaces its chunks.
func (ing *Ingestor) IngestFile(path string) (int, error) {
	if !Supported(path) {
		return 0, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	text, err := ExtractText(path)
	if err != nil {
		return 0, fmt.Errorf("extracting %s: %w", path, err)
	}

	chunks := SplitChunks(text, ing.chunkSize, ing.chunkOverlap)
	if err := ing.idx.AddFile(path, chunks); err != nil {
		return 0, fmt.Errorf("indexing %s: %w", path, err)
	}

	return len(chunks), nil
}

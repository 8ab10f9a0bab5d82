package ingest

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Index is a SQLite-backed full-text index of reference material chunks.
// It lives in the workspace cache and can be rebuilt at any time by
// re-ingesting the reference folder.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates a chunk index at the given path.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			file TEXT NOT NULL,
			seq INTEGER NOT NULL,
			content TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_chunks_file ON chunks(file);

		CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
			id,
			content
		);
	`
	_, err := db.Exec(schema)
	return err
}

// AddFile replaces the indexed chunks for a file. The delete and the
// inserts run in one transaction so a failed ingest never leaves a file
// half indexed.
func (ix *Index) AddFile(file string, chunks []string) error {
	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteFileTx(tx, file); err != nil {
		return err
	}

	chunkStmt, err := tx.Prepare("INSERT INTO chunks (id, file, seq, content) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer chunkStmt.Close()

	ftsStmt, err := tx.Prepare("INSERT INTO chunks_fts (id, content) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for seq, content := range chunks {
		id := uuid.NewString()
		if _, err := chunkStmt.Exec(id, file, seq, content); err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
		if _, err := ftsStmt.Exec(id, content); err != nil {
			return fmt.Errorf("inserting fts row: %w", err)
		}
	}

	return tx.Commit()
}

// RemoveFile drops all chunks indexed for a file.
func (ix *Index) RemoveFile(file string) error {
	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteFileTx(tx, file); err != nil {
		return err
	}

	return tx.Commit()
}

func deleteFileTx(tx *sql.Tx, file string) error {
	rows, err := tx.Query("SELECT id FROM chunks WHERE file = ?", file)
	if err != nil {
		return fmt.Errorf("querying chunks for %s: %w", file, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning chunk id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := tx.Exec("DELETE FROM chunks_fts WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting fts row: %w", err)
		}
	}
	if _, err := tx.Exec("DELETE FROM chunks WHERE file = ?", file); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}

	return nil
}

// Count returns the number of indexed chunks.
func (ix *Index) Count() (int, error) {
	var n int
	if err := ix.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Query returns up to limit chunk contents ranked by full-text relevance
// to the query. A query with no indexable terms returns no results.
func (ix *Index) Query(query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 5
	}

	match := ftsMatchExpr(query)
	if match == "" {
		return nil, nil
	}

	rows, err := ix.db.Query(
		"SELECT content FROM chunks_fts WHERE chunks_fts MATCH ? ORDER BY rank LIMIT ?",
		match, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, content)
	}

	return results, rows.Err()
}

// ftsMatchExpr turns free text into an FTS5 OR query, quoting each term
// so user input cannot inject FTS syntax.
func ftsMatchExpr(query string) string {
	var terms []string
	for _, field := range strings.Fields(query) {
		field = strings.ReplaceAll(field, `"`, "")
		if field != "" {
			terms = append(terms, `"`+field+`"`)
		}
	}
	return strings.Join(terms, " OR ")
}

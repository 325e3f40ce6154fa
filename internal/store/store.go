// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists per-document analysis results in a SQLite
// database: documents, citation records with an FTS5 index over raw
// citation text, and corpus term frequencies with document provenance.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citelens/pkg/types"
)

const (
	dbFile       = "citelens.db"
	resultSuffix = "-result.yaml"
)

// Store manages the analysis result SQLite database.
type Store struct {
	db         *sql.DB
	resultsDir string
	indexDir   string
	maxResults int
}

// NewStore opens or creates the result database at
// cfg.IndexDir/citelens.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		resultsDir: cfg.ResultsDir,
		indexDir:   cfg.IndexDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			language TEXT,
			avg_confidence REAL,
			ai_fallback INTEGER,
			unique_terms INTEGER,
			total_terms INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS citations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			document_id TEXT NOT NULL REFERENCES documents(id),
			style TEXT NOT NULL,
			authors TEXT,
			year INTEGER,
			title TEXT,
			container TEXT,
			locator TEXT,
			url TEXT,
			confidence REAL,
			raw_text TEXT,
			section TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_document_id ON citations(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_style ON citations(style)`,
		`CREATE TABLE IF NOT EXISTS corpus_terms (
			term TEXT NOT NULL,
			document_id TEXT NOT NULL REFERENCES documents(id),
			frequency INTEGER NOT NULL,
			PRIMARY KEY (term, document_id)
		)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			document_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='citations_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE citations_fts USING fts5(raw_text, content=citations, content_rowid=rowid)`,
			`CREATE TRIGGER citations_ai AFTER INSERT ON citations BEGIN
				INSERT INTO citations_fts(rowid, raw_text) VALUES (new.rowid, new.raw_text);
			END`,
			`CREATE TRIGGER citations_ad AFTER DELETE ON citations BEGIN
				INSERT INTO citations_fts(citations_fts, rowid, raw_text) VALUES('delete', old.rowid, old.raw_text);
			END`,
			`CREATE TRIGGER citations_au AFTER UPDATE ON citations BEGIN
				INSERT INTO citations_fts(citations_fts, rowid, raw_text) VALUES('delete', old.rowid, old.raw_text);
				INSERT INTO citations_fts(rowid, raw_text) VALUES (new.rowid, new.raw_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a result indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of result files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads per-document result YAML files from the results
// directory and populates the database. Unchanged files are skipped on
// subsequent runs; changed ones are re-indexed. On success it writes
// export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.resultsDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading results directory %s: %w", s.resultsDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), resultSuffix) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		docID := strings.TrimSuffix(entry.Name(), resultSuffix)
		filePath := filepath.Join(s.resultsDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE document_id = ?`, docID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		var result types.DocumentResult
		if err := yaml.Unmarshal(data, &result); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestResult(ctx, &result, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d citations)\n", docID, len(result.Citations))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d citations)\n", docID, len(result.Citations))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestResult(ctx context.Context, result *types.DocumentResult, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	docID := result.DocumentID

	// Replace any previous rows for this document.
	if _, err := tx.ExecContext(ctx, `DELETE FROM citations WHERE document_id = ?`, docID); err != nil {
		return fmt.Errorf("clearing citations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM corpus_terms WHERE document_id = ?`, docID); err != nil {
		return fmt.Errorf("clearing terms: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, language, avg_confidence, ai_fallback, unique_terms, total_terms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		docID, result.Language, result.AvgConfidence, boolToInt(result.AIFallback),
		result.Themes.UniqueTerms, result.Themes.TotalTerms,
	); err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	for _, rec := range result.Citations {
		authors, err := json.Marshal(rec.Authors)
		if err != nil {
			return fmt.Errorf("marshaling authors: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO citations
			 (id, document_id, style, authors, year, title, container, locator, url, confidence, raw_text, section)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, docID, string(rec.Style), string(authors), rec.Year, rec.Title,
			rec.Container, rec.Locator, rec.URL, rec.Confidence, rec.RawText, rec.Section,
		); err != nil {
			return fmt.Errorf("inserting citation %s: %w", rec.ID, err)
		}
	}

	for _, theme := range result.Themes.DominantThemes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO corpus_terms (term, document_id, frequency) VALUES (?, ?, ?)`,
			theme.Term, docID, theme.Frequency,
		); err != nil {
			return fmt.Errorf("inserting term %s: %w", theme.Term, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO indexing_status (document_id, file_mod_time) VALUES (?, ?)`,
		docID, modTime,
	); err != nil {
		return fmt.Errorf("recording indexing status: %w", err)
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/citelens/pkg/types"
)

// QueryOptions holds parameters for citation queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over raw citation text.
	Query string

	// Style filters by citation style.
	Style types.CitationStyle

	// DocumentID filters by source document.
	DocumentID string

	// MinConfidence drops records below the threshold.
	MinConfidence float64

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Style == "" && q.DocumentID == "" && q.MinConfidence == 0
}

// Retrieve queries the stored citation records with optional full-text
// search and structured filters. Full-text queries rank by relevance;
// structured-only queries sort by document, then descending confidence.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.CitationRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.id, c.document_id, c.style, c.authors, c.year, c.title,
				c.container, c.locator, c.url, c.confidence, c.raw_text, c.section
			FROM citations_fts
			JOIN citations c ON c.rowid = citations_fts.rowid
			WHERE citations_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.id, c.document_id, c.style, c.authors, c.year, c.title,
				c.container, c.locator, c.url, c.confidence, c.raw_text, c.section
			FROM citations c
			WHERE 1=1`)
	}

	if opts.Style != "" {
		qb.WriteString(` AND c.style = ?`)
		args = append(args, string(opts.Style))
	}
	if opts.DocumentID != "" {
		qb.WriteString(` AND c.document_id = ?`)
		args = append(args, opts.DocumentID)
	}
	if opts.MinConfidence > 0 {
		qb.WriteString(` AND c.confidence >= ?`)
		args = append(args, opts.MinConfidence)
	}

	if useFTS {
		qb.WriteString(` ORDER BY citations_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.document_id, c.confidence DESC, c.id`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var records []types.CitationRecord
	for rows.Next() {
		var rec types.CitationRecord
		var style, authors string
		if err := rows.Scan(&rec.ID, &rec.DocumentID, &style, &authors, &rec.Year,
			&rec.Title, &rec.Container, &rec.Locator, &rec.URL,
			&rec.Confidence, &rec.RawText, &rec.Section); err != nil {
			return nil, fmt.Errorf("scanning citation row: %w", err)
		}
		rec.Style = types.CitationStyle(style)
		if authors != "" {
			if err := json.Unmarshal([]byte(authors), &rec.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors for %s: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// TermProvenance is one document's contribution to a corpus term.
type TermProvenance struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	Frequency  int    `json:"frequency" yaml:"frequency"`
}

// TermDocuments returns which documents contributed a term and how
// often, ordered by document id.
func (s *Store) TermDocuments(ctx context.Context, term string) ([]TermProvenance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, frequency FROM corpus_terms WHERE term = ? ORDER BY document_id`, term)
	if err != nil {
		return nil, fmt.Errorf("querying term provenance: %w", err)
	}
	defer rows.Close()

	var out []TermProvenance
	for rows.Next() {
		var p TermProvenance
		if err := rows.Scan(&p.DocumentID, &p.Frequency); err != nil {
			return nil, fmt.Errorf("scanning provenance row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

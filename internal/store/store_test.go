// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citelens/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	resultsDir := filepath.Join(tmpDir, "results")
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := types.StoreConfig{
		ResultsDir: resultsDir,
		IndexDir:   filepath.Join(tmpDir, "index"),
		MaxResults: 20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func writeResult(t *testing.T, tmpDir string, result types.DocumentResult) {
	t.Helper()
	data, err := yaml.Marshal(&result)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, "results", result.DocumentID+resultSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func sampleResult(docID string) types.DocumentResult {
	return types.DocumentResult{
		DocumentID:    docID,
		Language:      "en",
		AvgConfidence: 0.875,
		Citations: []types.CitationRecord{
			{
				ID: docID + "-c1", Style: types.StyleArticle,
				Authors: []string{"Smith, J."}, Year: 2020,
				Title: "Ethics of AI", Container: "Journal of Tech Ethics",
				Locator: "12(3), 45–67", Confidence: 1.0,
				DocumentID: docID, Section: "References",
				RawText: "Smith, J. (2020). Ethics of AI. Journal of Tech Ethics, 12(3), 45–67.",
			},
			{
				ID: docID + "-c2", Style: types.StyleOnline,
				Year: 2021, URL: "https://example.sk/etika", Confidence: 0.5,
				DocumentID: docID, Section: "References",
				RawText: "https://example.sk/etika",
			},
		},
		Themes: types.ThemeReport{
			DocumentID:  docID,
			UniqueTerms: 2,
			TotalTerms:  7,
			DominantThemes: []types.ThemeCount{
				{Term: "ethics", Frequency: 5},
				{Term: "privacy", Frequency: 2},
			},
		},
	}
}

func ingestHelper(t *testing.T, store *Store, tmpDir, docID string) {
	t.Helper()
	writeResult(t, tmpDir, sampleResult(docID))
	var buf strings.Builder
	if _, err := store.Ingest(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	tables := []string{"documents", "citations", "corpus_terms", "citations_fts", "indexing_status"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	_, tmpDir := testSetup(t)

	dbPath := filepath.Join(tmpDir, "index", dbFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

// --- ingest tests ---

func TestIngest(t *testing.T) {
	tests := []struct {
		name        string
		documents   int
		wantIndexed int
	}{
		{"single document", 1, 1},
		{"multiple documents", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, tmpDir := testSetup(t)

			for i := 0; i < tt.documents; i++ {
				writeResult(t, tmpDir, sampleResult(fmt.Sprintf("paper-%d", i)))
			}

			var buf strings.Builder
			summary, err := store.Ingest(context.Background(), &buf)
			if err != nil {
				t.Fatalf("Ingest: %v", err)
			}
			if summary.Indexed != tt.wantIndexed {
				t.Errorf("Indexed = %d, want %d", summary.Indexed, tt.wantIndexed)
			}
			if summary.Failed != 0 {
				t.Errorf("Failed = %d, want 0; output: %s", summary.Failed, buf.String())
			}
		})
	}
}

func TestIngestStoresAllFields(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc1")

	records, err := store.Retrieve(context.Background(), QueryOptions{DocumentID: "doc1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Structured queries sort by confidence descending within a document.
	r := records[0]
	if r.ID != "doc1-c1" {
		t.Errorf("ID = %q, want doc1-c1", r.ID)
	}
	if r.Style != types.StyleArticle {
		t.Errorf("Style = %q", r.Style)
	}
	if len(r.Authors) != 1 || r.Authors[0] != "Smith, J." {
		t.Errorf("Authors = %v", r.Authors)
	}
	if r.Year != 2020 {
		t.Errorf("Year = %d", r.Year)
	}
	if r.Locator != "12(3), 45–67" {
		t.Errorf("Locator = %q", r.Locator)
	}
	if r.Confidence != 1.0 {
		t.Errorf("Confidence = %v", r.Confidence)
	}
	if r.Section != "References" {
		t.Errorf("Section = %q", r.Section)
	}
}

func TestIngestPopulatesDocumentsTable(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc1")

	var language string
	var avgConfidence float64
	var uniqueTerms int
	err := store.db.QueryRow(
		`SELECT language, avg_confidence, unique_terms FROM documents WHERE id = ?`, "doc1",
	).Scan(&language, &avgConfidence, &uniqueTerms)
	if err != nil {
		t.Fatal(err)
	}
	if language != "en" || avgConfidence != 0.875 || uniqueTerms != 2 {
		t.Errorf("documents row = %q/%v/%d", language, avgConfidence, uniqueTerms)
	}
}

func TestIngestWritesExportYAML(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-export")

	path := filepath.Join(tmpDir, "index", "export.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("export.yaml not written after ingestion")
	}
}

func TestIngestSkipsUnchanged(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-skip")

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Indexed != 0 {
		t.Errorf("Indexed = %d, want 0", summary.Indexed)
	}
	if !strings.Contains(buf.String(), "skipped") {
		t.Errorf("output should contain 'skipped': %s", buf.String())
	}
}

func TestIngestUpdatesChanged(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-update")

	updated := sampleResult("doc-update")
	updated.Citations = updated.Citations[:1]
	updated.Citations[0].Title = "Revised Title"
	writeResult(t, tmpDir, updated)

	path := filepath.Join(tmpDir, "results", "doc-update"+resultSuffix)
	future := time.Now().Add(time.Second)
	os.Chtimes(path, future, future)

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Updated != 1 {
		t.Errorf("Updated = %d, want 1", summary.Updated)
	}

	records, err := store.Retrieve(context.Background(), QueryOptions{DocumentID: "doc-update"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (stale rows should be replaced)", len(records))
	}
	if records[0].Title != "Revised Title" {
		t.Errorf("Title = %q", records[0].Title)
	}
}

func TestIngestSummaryOutput(t *testing.T) {
	store, tmpDir := testSetup(t)
	writeResult(t, tmpDir, sampleResult("doc1"))

	var buf strings.Builder
	if _, err := store.Ingest(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "indexed: 1") {
		t.Errorf("output should contain 'indexed: 1': %s", buf.String())
	}
}

func TestIngestSummaryTotal(t *testing.T) {
	s := IngestSummary{Indexed: 2, Updated: 1, Skipped: 3, Failed: 1}
	if s.Total() != 7 {
		t.Errorf("Total() = %d, want 7", s.Total())
	}
}

// --- query tests ---

func TestRetrieveFullTextSearch(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "fts-doc")

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"matching term", "ethics", []string{"fts-doc-c1"}},
		{"no match", "quantum", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := store.Retrieve(context.Background(), QueryOptions{Query: tt.query})
			if err != nil {
				t.Fatal(err)
			}
			if len(records) != len(tt.wantIDs) {
				t.Fatalf("got %d records, want %d", len(records), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if records[i].ID != id {
					t.Errorf("record %d ID = %q, want %q", i, records[i].ID, id)
				}
			}
		})
	}
}

func TestRetrieveByStyle(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "style-doc")

	records, err := store.Retrieve(context.Background(), QueryOptions{Style: types.StyleOnline})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].URL != "https://example.sk/etika" {
		t.Errorf("URL = %q", records[0].URL)
	}
}

func TestRetrieveByMinConfidence(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "conf-doc")

	records, err := store.Retrieve(context.Background(), QueryOptions{MinConfidence: 0.8})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Confidence < 0.8 {
		t.Errorf("Confidence = %v, want >= 0.8", records[0].Confidence)
	}
}

func TestRetrieveRespectsMaxResults(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "limit-doc")

	records, err := store.Retrieve(context.Background(), QueryOptions{
		DocumentID: "limit-doc",
		MaxResults: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{}).IsEmpty() {
		t.Error("zero QueryOptions should be empty")
	}
	if (QueryOptions{Style: types.StyleBook}).IsEmpty() {
		t.Error("style filter should make options non-empty")
	}
}

// --- term provenance tests ---

func TestTermDocuments(t *testing.T) {
	store, tmpDir := testSetup(t)

	writeResult(t, tmpDir, sampleResult("doc-a"))
	writeResult(t, tmpDir, sampleResult("doc-b"))
	var buf strings.Builder
	if _, err := store.Ingest(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	docs, err := store.TermDocuments(context.Background(), "ethics")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	for _, d := range docs {
		if d.Frequency != 5 {
			t.Errorf("Frequency = %d, want 5", d.Frequency)
		}
	}

	none, err := store.TermDocuments(context.Background(), "absent")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("got %d documents for absent term, want 0", len(none))
	}
}

// --- export tests ---

func TestExportJSON(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-json")

	if err := store.ExportJSON(context.Background(), QueryOptions{}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "index", "export.json"))
	if err != nil {
		t.Fatal(err)
	}

	var records []types.CitationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
}

func TestExportYAMLFiltered(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-yaml")

	if err := store.ExportYAML(context.Background(), QueryOptions{Style: types.StyleArticle}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "index", "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var records []types.CitationRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Style != types.StyleArticle {
		t.Errorf("Style = %q, want article", records[0].Style)
	}
}

func TestExportJSONHonorsMaxResults(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, "doc-limit")

	if err := store.ExportJSON(context.Background(), QueryOptions{MaxResults: 1}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "index", "export.json"))
	if err != nil {
		t.Fatal(err)
	}

	var records []types.CitationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

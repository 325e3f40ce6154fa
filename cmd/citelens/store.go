// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citelens/internal/store"
	"github.com/pdiddy/citelens/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Index analysis results and query the citation store",
	Long: `Store manages a local SQLite index built from per-document result YAML
files. Use subcommands to ingest results, query citation records with
full-text search, look up term provenance, or export the index.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest result files into the citation store",
	Long: `Ingest reads <id>-result.yaml files from the results directory, indexes
their citation records and theme terms into a SQLite database with FTS5
search over raw citation text, and writes an export file. Unchanged
result files are skipped on subsequent runs.`,
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d result file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var storeQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query stored citation records",
	Long: `Query searches the citation store using FTS5 full-text search over raw
citation text, structured filters (style, document, minimum confidence),
or a combination of both.

Use --term to look up which documents contributed a theme term instead.`,
	RunE: runStoreQuery,
}

func runStoreQuery(cmd *cobra.Command, args []string) error {
	term, _ := cmd.Flags().GetString("term")

	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	// Provenance mode: list the documents a theme term appeared in.
	if term != "" {
		docs, err := s.TermDocuments(context.Background(), term)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Printf("Term %q not found in any document.\n", term)
			return nil
		}
		for _, d := range docs {
			fmt.Printf("%-40s  %d\n", d.DocumentID, d.Frequency)
		}
		return nil
	}

	opts := storeQueryOpts(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --style, --doc, or --min-confidence")
	}

	records, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(records, jsonOutput)
}

func formatQueryOutput(records []types.CitationRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-8s  %-40s  %-20s  %-6s  %s\n",
		"Rank", "Style", "Title", "Document", "Year", "Conf")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 92))

	for i, r := range records {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		doc := r.DocumentID
		if len(doc) > 20 {
			doc = doc[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-8s  %-40s  %-20s  %-6d  %.2f\n",
			i+1, r.Style, title, doc, r.Year, r.Confidence)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(records))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the citation store to YAML or JSON",
	Long: `Export writes the full citation store (or a filtered subset) to
export.yaml or export.json in the index directory. Supports the same
filter flags as query for partial exports.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	indexDir, _ := cmd.Flags().GetString("index-dir")

	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	opts := storeQueryOpts(cmd, args)

	switch format {
	case "yaml", "":
		if err := s.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(indexDir, "export.yaml"))
	case "json":
		if err := s.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(indexDir, "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	resultsDir, _ := cmd.Flags().GetString("results-dir")
	if resultsDir == "" {
		resultsDir = "results"
	}
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = "index"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.StoreConfig{
		ResultsDir: resultsDir,
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
}

func storeQueryOpts(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	style, _ := cmd.Flags().GetString("style")
	docID, _ := cmd.Flags().GetString("doc")
	minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:         queryText,
		Style:         types.CitationStyle(style),
		DocumentID:    docID,
		MinConfidence: minConfidence,
		MaxResults:    limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("results-dir", "results", "directory holding per-document result YAML files")
	storeCmd.PersistentFlags().String("index-dir", "index", "directory for the SQLite database and exports")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Query flags.
	storeQueryCmd.Flags().String("query", "", "full-text search over raw citation text")
	storeQueryCmd.Flags().String("style", "", "filter by citation style: book, article, chapter, online, unknown")
	storeQueryCmd.Flags().String("doc", "", "filter by document ID")
	storeQueryCmd.Flags().Float64("min-confidence", 0, "minimum record confidence")
	storeQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeQueryCmd.Flags().String("term", "", "look up document provenance for a theme term")
	storeQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	storeExportCmd.Flags().String("style", "", "filter by citation style for partial export")
	storeExportCmd.Flags().String("doc", "", "filter by document ID for partial export")
	storeExportCmd.Flags().Float64("min-confidence", 0, "minimum record confidence for partial export")
	storeExportCmd.Flags().Int("limit", 0, "maximum records to export (0 = all)")

	// Wire subcommands.
	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeQueryCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}

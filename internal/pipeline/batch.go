// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/citelens/internal/corpus"
	"github.com/pdiddy/citelens/internal/report"
	"github.com/pdiddy/citelens/pkg/types"
)

// BatchSummary holds counts from a batch analysis run.
type BatchSummary struct {
	Analyzed int
	Failed   int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int { return s.Analyzed + s.Failed }

// HasFailures reports whether any documents failed.
func (s BatchSummary) HasFailures() bool { return s.Failed > 0 }

// BatchOutputs selects which files AnalyzeDir writes per document.
type BatchOutputs struct {
	// Citations writes <id>-citations.json and <id>-citations.md.
	Citations bool

	// Themes writes <id>-themes.json and <id>-report.md.
	Themes bool

	// Results writes <id>-result.yaml, the form the store ingests.
	Results bool
}

// AnalyzeDir runs the pipeline over every .md and .txt file in inputDir,
// writes the selected outputs to outDir, and merges every document's
// statistics into the returned corpus aggregate. Per-file failures are
// reported on w and counted; they never abort the batch.
func (p *Pipeline) AnalyzeDir(inputDir, outDir, langHint string, outputs BatchOutputs, w io.Writer) (BatchSummary, *corpus.Aggregator, error) {
	agg, err := corpus.NewAggregator(p.cfg)
	if err != nil {
		return BatchSummary{}, nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchSummary{}, nil, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return BatchSummary{}, nil, fmt.Errorf("reading input directory %s: %w", inputDir, err)
	}

	var summary BatchSummary

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".md") && !strings.HasSuffix(name, ".txt")) {
			continue
		}

		docID := strings.TrimSuffix(strings.TrimSuffix(name, ".md"), ".txt")

		data, err := os.ReadFile(filepath.Join(inputDir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		result := p.Run(docID, string(data), langHint)

		if err := p.writeOutputs(outDir, docID, result, outputs); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if err := agg.Add(result.Stats); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "analyzed %s (%d citations, %d themes)\n",
			docID, len(result.Citations), len(result.Themes.DominantThemes))
		summary.Analyzed++
	}

	fmt.Fprintf(w, "\nanalyzed: %d, failed: %d\n", summary.Analyzed, summary.Failed)
	return summary, agg, nil
}

func (p *Pipeline) writeOutputs(outDir, docID string, result types.DocumentResult, outputs BatchOutputs) error {
	if outputs.Citations {
		data, err := report.CitationsJSON(result)
		if err != nil {
			return fmt.Errorf("rendering citations JSON: %w", err)
		}
		if err := os.WriteFile(filepath.Join(outDir, docID+"-citations.json"), data, 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, docID+"-citations.md"), report.CitationsMarkdown(result), 0o644); err != nil {
			return err
		}
	}

	if outputs.Themes {
		data, err := report.ThemesJSON(result.Themes)
		if err != nil {
			return fmt.Errorf("rendering themes JSON: %w", err)
		}
		if err := os.WriteFile(filepath.Join(outDir, docID+"-themes.json"), data, 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, docID+"-report.md"), report.ThemesMarkdown(result.Themes), 0o644); err != nil {
			return err
		}
	}

	if outputs.Results {
		data, err := report.ResultYAML(result)
		if err != nil {
			return fmt.Errorf("rendering result YAML: %w", err)
		}
		if err := os.WriteFile(filepath.Join(outDir, docID+"-result.yaml"), data, 0o644); err != nil {
			return err
		}
	}

	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citelens/internal/pipeline"
	"github.com/pdiddy/citelens/internal/report"
)

var themesCmd = &cobra.Command{
	Use:   "themes <input-dir>",
	Short: "Analyze theme frequencies, clusters, and research gaps",
	Long: `Themes runs frequency and co-occurrence analysis over every .md and .txt
file in the input directory. Each document produces <id>-themes.json and
<id>-report.md in the output directory. All documents are then merged
into a corpus rollup written as corpus-themes.json and corpus-report.md,
with theme synthesis rerun over the summed counts.

Research gap detection requires a reference vocabulary, supplied with
--vocabulary or the analysis.reference_vocabulary config key.`,
	Args: cobra.ExactArgs(1),
	RunE: runThemes,
}

func runThemes(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	lang, _ := cmd.Flags().GetString("lang")

	p, err := pipeline.New(analysisConfig(cmd))
	if err != nil {
		return err
	}

	outputs := pipeline.BatchOutputs{Themes: true}
	summary, agg, err := p.AnalyzeDir(args[0], outDir, lang, outputs, os.Stdout)
	if err != nil {
		return err
	}

	if agg.Documents() > 0 {
		corpusReport := agg.Report()

		data, err := report.ThemesJSON(corpusReport)
		if err != nil {
			return fmt.Errorf("rendering corpus themes: %w", err)
		}
		if err := os.WriteFile(filepath.Join(outDir, "corpus-themes.json"), data, 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, "corpus-report.md"), report.ThemesMarkdown(corpusReport), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "corpus rollup: %d documents, %d themes\n",
			agg.Documents(), len(corpusReport.DominantThemes))
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed analysis", summary.Failed)
	}
	return nil
}

func init() {
	themesCmd.Flags().String("out", "results", "output directory for per-document and corpus results")
	themesCmd.Flags().String("lang", "", "language hint: en or sk (default: detect)")
	themesCmd.Flags().Int("window-size", 0, "co-occurrence window in tokens")
	themesCmd.Flags().Int("top-k", 0, "number of dominant themes to report")
	themesCmd.Flags().Int("min-frequency", 0, "minimum term frequency for dominant themes")
	themesCmd.Flags().StringSlice("vocabulary", nil, "reference vocabulary terms for gap detection (comma-separated)")

	rootCmd.AddCommand(themesCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citelens/internal/pipeline"
)

var citationsCmd = &cobra.Command{
	Use:   "citations <input-dir>",
	Short: "Extract structured citation records from papers",
	Long: `Citations runs the extraction pipeline over every .md and .txt file in
the input directory. Each document produces <id>-citations.json and
<id>-citations.md in the output directory, plus <id>-result.yaml for
store ingestion. Documents whose average record confidence falls below
the fallback threshold are flagged for manual or AI-assisted review.`,
	Args: cobra.ExactArgs(1),
	RunE: runCitations,
}

func runCitations(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	lang, _ := cmd.Flags().GetString("lang")

	p, err := pipeline.New(analysisConfig(cmd))
	if err != nil {
		return err
	}

	outputs := pipeline.BatchOutputs{Citations: true, Results: true}
	summary, _, err := p.AnalyzeDir(args[0], outDir, lang, outputs, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed analysis", summary.Failed)
	}
	return nil
}

func init() {
	citationsCmd.Flags().String("out", "results", "output directory for per-document results")
	citationsCmd.Flags().String("lang", "", "language hint: en or sk (default: detect)")
	citationsCmd.Flags().Float64("fallback-threshold", 0, "confidence average below which a document is flagged for fallback")

	rootCmd.AddCommand(citationsCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citelens/internal/bibformat"
	"github.com/pdiddy/citelens/pkg/types"
)

var bibliographyCmd = &cobra.Command{
	Use:   "bibliography <citations.json>",
	Short: "Format extracted citations as a bibliography",
	Long: `Bibliography reads a citations JSON file produced by the citations
command and renders its records as a formatted bibliography. Entries are
sorted by first author surname with diacritics folded, so Čapek sorts
with Capek. Supported formats: apa, mla, chicago.`,
	Args: cobra.ExactArgs(1),
	RunE: runBibliography,
}

func runBibliography(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outFile, _ := cmd.Flags().GetString("out")

	formatter, err := bibformat.New(format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var records []types.CitationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	text := formatter.Format(records)

	if outFile != "" {
		return os.WriteFile(outFile, []byte(text+"\n"), 0o644)
	}
	fmt.Println(text)
	return nil
}

func init() {
	bibliographyCmd.Flags().String("format", "apa", "bibliography format: apa, mla, or chicago")
	bibliographyCmd.Flags().String("out", "", "write bibliography to a file instead of stdout")

	rootCmd.AddCommand(bibliographyCmd)
}

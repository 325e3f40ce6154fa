// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders analysis results for the CLI layer: a
// mapping-based JSON form for machine consumers and a Markdown report
// for humans. The core mandates no format; these are the two the
// toolkit ships.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/citelens/pkg/types"
)

var titleCaser = cases.Title(language.Und)

// CitationsJSON renders the citation records of one document.
func CitationsJSON(result types.DocumentResult) ([]byte, error) {
	return json.MarshalIndent(result.Citations, "", "  ")
}

// ThemesJSON renders a theme report (per-document or corpus-level).
func ThemesJSON(rep types.ThemeReport) ([]byte, error) {
	return json.MarshalIndent(rep, "", "  ")
}

// ResultYAML renders the full per-document result in the YAML form the
// store ingests.
func ResultYAML(result types.DocumentResult) ([]byte, error) {
	return yaml.Marshal(result)
}

// CitationsMarkdown renders a human-readable citation report, grouped
// by style.
func CitationsMarkdown(result types.DocumentResult) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Citation Analysis: %s\n\n", result.DocumentID)
	fmt.Fprintf(&b, "**Total Citations Found:** %d\n\n", len(result.Citations))
	fmt.Fprintf(&b, "**Average Confidence:** %.0f%%\n\n", result.AvgConfidence*100)
	if result.AIFallback {
		b.WriteString("**Low confidence — candidate for AI fallback.**\n\n")
	}

	byStyle := make(map[types.CitationStyle][]types.CitationRecord)
	for _, rec := range result.Citations {
		byStyle[rec.Style] = append(byStyle[rec.Style], rec)
	}
	styles := make([]string, 0, len(byStyle))
	for s := range byStyle {
		styles = append(styles, string(s))
	}
	sort.Strings(styles)

	b.WriteString("## Citations by Style\n\n")
	for _, s := range styles {
		fmt.Fprintf(&b, "- **%s:** %d\n", s, len(byStyle[types.CitationStyle(s)]))
	}
	b.WriteString("\n")

	for _, s := range styles {
		fmt.Fprintf(&b, "## %s citations\n\n", titleCaser.String(s))
		for _, rec := range byStyle[types.CitationStyle(s)] {
			writeCitation(&b, rec)
		}
	}

	return []byte(b.String())
}

func writeCitation(b *strings.Builder, rec types.CitationRecord) {
	title := rec.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	if len(rec.Authors) > 0 {
		fmt.Fprintf(b, "**Authors:** %s\n\n", strings.Join(rec.Authors, ", "))
	}
	if rec.Year > 0 {
		fmt.Fprintf(b, "**Year:** %d\n\n", rec.Year)
	}
	if rec.Container != "" {
		fmt.Fprintf(b, "**Container:** %s\n\n", rec.Container)
	}
	if rec.Locator != "" {
		fmt.Fprintf(b, "**Locator:** %s\n\n", rec.Locator)
	}
	if rec.URL != "" {
		fmt.Fprintf(b, "**URL:** %s\n\n", rec.URL)
	}
	fmt.Fprintf(b, "**Confidence:** %.0f%%\n\n", rec.Confidence*100)
	if rec.RawText != "" {
		fmt.Fprintf(b, "**Raw Text:**\n```\n%s\n```\n\n", rec.RawText)
	}
	b.WriteString("---\n\n")
}

// ThemesMarkdown renders a human-readable theme report.
func ThemesMarkdown(rep types.ThemeReport) []byte {
	var b strings.Builder

	if rep.DocumentID != "" {
		fmt.Fprintf(&b, "# Theme Analysis Report: %s\n\n", rep.DocumentID)
	} else {
		b.WriteString("# Corpus Theme Analysis Report\n\n")
	}

	b.WriteString("## Corpus Statistics\n\n")
	fmt.Fprintf(&b, "- **Unique Terms:** %d\n", rep.UniqueTerms)
	fmt.Fprintf(&b, "- **Total Term Occurrences:** %d\n\n", rep.TotalTerms)

	b.WriteString("## Dominant Themes\n\n")
	for _, theme := range rep.DominantThemes {
		fmt.Fprintf(&b, "### %s\n\n", titleCaser.String(theme.Term))
		fmt.Fprintf(&b, "- **Frequency:** %d occurrences\n", theme.Frequency)
		fmt.Fprintf(&b, "- **Importance Score:** %.2f\n", theme.Importance)
		if len(theme.Related) > 0 {
			b.WriteString("- **Related Terms:**\n")
			for _, rel := range theme.Related {
				fmt.Fprintf(&b, "  - %s (co-occurs %d times)\n", rel.Term, rel.Strength)
			}
		}
		b.WriteString("\n")
	}

	if len(rep.Clusters) > 0 {
		b.WriteString("## Concept Clusters\n\n")
		for _, cluster := range rep.Clusters {
			fmt.Fprintf(&b, "### Cluster: %s\n\n", titleCaser.String(cluster.Label))
			fmt.Fprintf(&b, "- **Terms:** %s\n\n", strings.Join(cluster.Terms, ", "))
		}
	}

	if len(rep.EmergingThemes) > 0 {
		b.WriteString("## Emerging Themes\n\n")
		for _, theme := range rep.EmergingThemes {
			fmt.Fprintf(&b, "- **%s** (%d mentions)\n", titleCaser.String(theme.Term), theme.Frequency)
		}
		b.WriteString("\n")
	}

	if len(rep.Gaps) > 0 {
		b.WriteString("## Potential Research Gaps\n\n")
		b.WriteString("Expected terms absent or underrepresented:\n\n")
		for _, term := range rep.Gaps {
			fmt.Fprintf(&b, "- %s\n", term)
		}
	}

	return []byte(b.String())
}

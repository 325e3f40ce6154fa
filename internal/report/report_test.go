// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citelens/pkg/types"
)

func sampleResult() types.DocumentResult {
	return types.DocumentResult{
		DocumentID:    "paper1",
		Language:      "en",
		AvgConfidence: 0.75,
		Citations: []types.CitationRecord{
			{
				ID: "abc123", Style: types.StyleArticle,
				Authors: []string{"Smith, J."}, Year: 2020,
				Title: "Ethics of AI", Container: "Journal of Tech Ethics",
				Confidence: 1.0, DocumentID: "paper1",
			},
			{
				ID: "def456", Style: types.StyleOnline,
				URL: "https://example.sk/etika", Confidence: 0.5, DocumentID: "paper1",
			},
		},
		Themes: types.ThemeReport{
			DocumentID:  "paper1",
			UniqueTerms: 3,
			TotalTerms:  12,
			DominantThemes: []types.ThemeCount{
				{Term: "ethics", Frequency: 5, Importance: 5.83,
					Related: []types.RelatedTerm{{Term: "privacy", Strength: 3}}},
			},
			Clusters: []types.ConceptCluster{{Label: "ethics", Terms: []string{"ethics", "privacy"}}},
			Gaps:     []string{"governance"},
		},
	}
}

func TestCitationsJSONIsRecordArray(t *testing.T) {
	data, err := CitationsJSON(sampleResult())
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

func TestResultYAMLRoundTrips(t *testing.T) {
	data, err := ResultYAML(sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	var result types.DocumentResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if result.DocumentID != "paper1" || len(result.Citations) != 2 {
		t.Errorf("round trip lost data: %+v", result)
	}
}

func TestCitationsMarkdown(t *testing.T) {
	md := string(CitationsMarkdown(sampleResult()))

	for _, want := range []string{
		"# Citation Analysis: paper1",
		"**Total Citations Found:** 2",
		"## Article citations",
		"### Ethics of AI",
		"**URL:** https://example.sk/etika",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestCitationsMarkdownFlagsLowConfidence(t *testing.T) {
	result := sampleResult()
	result.AIFallback = true

	md := string(CitationsMarkdown(result))
	if !strings.Contains(md, "AI fallback") {
		t.Error("fallback flag missing from report")
	}
}

func TestThemesMarkdown(t *testing.T) {
	md := string(ThemesMarkdown(sampleResult().Themes))

	for _, want := range []string{
		"# Theme Analysis Report: paper1",
		"- **Unique Terms:** 3",
		"### Ethics",
		"privacy (co-occurs 3 times)",
		"## Concept Clusters",
		"## Potential Research Gaps",
		"- governance",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestThemesMarkdownCorpusHeading(t *testing.T) {
	rep := sampleResult().Themes
	rep.DocumentID = ""

	md := string(ThemesMarkdown(rep))
	if !strings.Contains(md, "# Corpus Theme Analysis Report") {
		t.Error("corpus-level report should use the corpus heading")
	}
}

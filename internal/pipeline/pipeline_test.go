// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/citelens/pkg/types"
)

const samplePaper = `# Introduction

Research ethics shapes how data ethics debates unfold. Privacy questions
and ethics reviews recur; privacy policy follows data practice.

# References

Smith, J. (2020). Ethics of AI. Journal of Tech Ethics, 12(3), 45–67.

Doe, A. (2015). Thinking Machines. Boston: Harvard Press.
`

func newPipeline(t *testing.T, cfg types.AnalysisConfig) *Pipeline {
	t.Helper()
	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := types.DefaultAnalysisConfig()
	cfg.OverlapThreshold = 1.5

	_, err := New(cfg)
	if !errors.Is(err, types.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestRunExtractsCitationsAndThemes(t *testing.T) {
	p := newPipeline(t, types.DefaultAnalysisConfig())

	result := p.Run("paper1", samplePaper, "")

	if result.DocumentID != "paper1" {
		t.Errorf("DocumentID = %q", result.DocumentID)
	}
	if result.Language != "en" {
		t.Errorf("Language = %q, want en", result.Language)
	}

	if len(result.Citations) != 2 {
		t.Fatalf("got %d citations, want 2: %+v", len(result.Citations), result.Citations)
	}
	for _, rec := range result.Citations {
		if rec.Section != "References" {
			t.Errorf("citation %q Section = %q, want References", rec.Title, rec.Section)
		}
		if rec.Confidence != 1.0 {
			t.Errorf("citation %q Confidence = %v, want 1.0", rec.Title, rec.Confidence)
		}
	}

	if result.AvgConfidence != 1.0 {
		t.Errorf("AvgConfidence = %v, want 1.0", result.AvgConfidence)
	}
	if result.AIFallback {
		t.Error("AIFallback = true for fully confident extraction")
	}

	// Theme counting covers prose only; bibliography terms never rank.
	freq := result.Stats.Frequencies
	if freq["ethics"] < 3 {
		t.Errorf("ethics frequency = %d, want at least 3", freq["ethics"])
	}
	if freq["journal"] != 0 {
		t.Errorf("journal frequency = %d, reference section leaked into themes", freq["journal"])
	}
}

func TestRunEmptyDocument(t *testing.T) {
	p := newPipeline(t, types.DefaultAnalysisConfig())

	result := p.Run("empty", "", "")

	if len(result.Citations) != 0 {
		t.Errorf("got %d citations, want 0", len(result.Citations))
	}
	if result.AvgConfidence != 0 {
		t.Errorf("AvgConfidence = %v, want 0", result.AvgConfidence)
	}
	if !result.AIFallback {
		t.Error("AIFallback = false, want true for a document with no records")
	}
}

func TestRunNoCitationsIsNotAnError(t *testing.T) {
	p := newPipeline(t, types.DefaultAnalysisConfig())

	result := p.Run("plain", "Plain prose about gardening without any references.", "")

	if len(result.Citations) != 0 {
		t.Errorf("got %d citations, want 0", len(result.Citations))
	}
	if !result.AIFallback {
		t.Error("zero-citation document should be flagged for fallback")
	}
}

func TestRunFallbackThresholdBoundary(t *testing.T) {
	cfg := types.DefaultAnalysisConfig()
	cfg.FallbackThreshold = 1.0
	p := newPipeline(t, cfg)

	// Average confidence 1.0 is not below the threshold.
	result := p.Run("paper1", samplePaper, "")
	if result.AIFallback {
		t.Error("confidence equal to the threshold must not trigger fallback")
	}
}

func TestRunIdempotent(t *testing.T) {
	p := newPipeline(t, types.DefaultAnalysisConfig())

	first := p.Run("paper1", samplePaper, "")
	second := p.Run("paper1", samplePaper, "")

	if len(first.Citations) != len(second.Citations) {
		t.Fatalf("citation counts differ: %d vs %d", len(first.Citations), len(second.Citations))
	}
	for i := range first.Citations {
		if first.Citations[i].ID != second.Citations[i].ID {
			t.Errorf("citation %d ID differs across runs", i)
		}
	}
}

// --- batch tests ---

func TestAnalyzeDir(t *testing.T) {
	inputDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "results")

	if err := os.WriteFile(filepath.Join(inputDir, "paper1.md"), []byte(samplePaper), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inputDir, "notes.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newPipeline(t, types.DefaultAnalysisConfig())

	var buf strings.Builder
	outputs := BatchOutputs{Citations: true, Themes: true, Results: true}
	summary, agg, err := p.AnalyzeDir(inputDir, outDir, "", outputs, &buf)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Analyzed != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 1 analyzed (non-markdown files skipped)", summary)
	}
	if agg.Documents() != 1 {
		t.Errorf("aggregated %d documents, want 1", agg.Documents())
	}

	for _, name := range []string{
		"paper1-citations.json", "paper1-citations.md",
		"paper1-themes.json", "paper1-report.md",
		"paper1-result.yaml",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	if !strings.Contains(buf.String(), "analyzed paper1") {
		t.Errorf("progress output missing: %s", buf.String())
	}
}

func TestAnalyzeDirMissingInput(t *testing.T) {
	p := newPipeline(t, types.DefaultAnalysisConfig())

	var buf strings.Builder
	_, _, err := p.AnalyzeDir(filepath.Join(t.TempDir(), "nope"), t.TempDir(), "", BatchOutputs{}, &buf)
	if err == nil {
		t.Fatal("want error for missing input directory")
	}
}

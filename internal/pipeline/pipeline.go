// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the per-document analysis stages into one
// strict, synchronous pass: normalization, citation pattern matching,
// record building, and theme counting. A Pipeline is immutable after
// construction and safe to run across independent documents in
// parallel; it holds no shared mutable state and performs no I/O.
package pipeline

import (
	"github.com/pdiddy/citelens/internal/citeparse"
	"github.com/pdiddy/citelens/internal/textnorm"
	"github.com/pdiddy/citelens/internal/themes"
	"github.com/pdiddy/citelens/pkg/types"
)

// Pipeline analyzes one document at a time with a fixed configuration.
// Pipelines with different thresholds coexist without interference.
type Pipeline struct {
	cfg    types.AnalysisConfig
	engine *citeparse.Engine
}

// New validates the configuration and builds a pipeline. Invalid
// options fail here, before any document is processed.
func New(cfg types.AnalysisConfig) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, engine: citeparse.NewEngine()}, nil
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() types.AnalysisConfig { return p.cfg }

// Run analyzes one document. Empty or unrecognizable input is a valid
// outcome with empty results, never an error; zero citations found is
// success. The returned result is independent of any other document's.
func (p *Pipeline) Run(id, raw, langHint string) types.DocumentResult {
	doc := textnorm.Normalize(id, raw, langHint)

	result := types.DocumentResult{
		DocumentID: doc.ID,
		Language:   doc.Language,
		Citations:  p.extractCitations(doc),
	}

	stops := themes.StopWordSet(p.cfg.StopWords, textnorm.StopWords(doc.Language))
	result.Stats = themes.Count(doc, stops, p.cfg.WindowSize)
	result.Themes = themes.Synthesize(result.Stats, p.cfg)

	result.AvgConfidence = averageConfidence(result.Citations)
	result.AIFallback = result.AvgConfidence < p.cfg.FallbackThreshold

	return result
}

// extractCitations scans each section separately so matches carry their
// section heading and spans never straddle a section boundary, then
// resolves the combined match set once.
func (p *Pipeline) extractCitations(doc types.Document) []types.CitationRecord {
	var matches []citeparse.Match
	offset := 0
	for _, section := range doc.Sections {
		for _, m := range p.engine.Scan(section.Text) {
			m.Start += offset
			m.End += offset
			m.Section = section.Heading
			matches = append(matches, m)
		}
		offset += len(section.Text) + 1
	}
	return citeparse.BuildRecords(doc.ID, matches, p.cfg.OverlapThreshold)
}

// averageConfidence is the mean record confidence; a document with no
// records scores zero, making it a fallback candidate under any
// positive threshold.
func averageConfidence(records []types.CitationRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Confidence
	}
	return sum / float64(len(records))
}

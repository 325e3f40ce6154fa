// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the citelens analysis
// pipeline: documents, citation records, theme reports, and the analysis
// configuration.
package types

// SectionKind classifies a document section for counting purposes.
// Reference lists and headings are excluded from theme statistics so
// bibliography noise does not pollute term frequencies.
type SectionKind string

const (
	SectionProse      SectionKind = "prose"
	SectionReferences SectionKind = "references"
)

// Section is a contiguous region of normalized document text under one
// heading. Tokens are the normalized tokens of Text only; the heading
// itself is not tokenized.
type Section struct {
	Kind    SectionKind `json:"kind" yaml:"kind"`
	Heading string      `json:"heading,omitempty" yaml:"heading,omitempty"`
	Text    string      `json:"text" yaml:"text"`
	Tokens  []string    `json:"-" yaml:"-"`
}

// Document is the normalized form of one input text. It is created once
// by the normalizer and is immutable afterwards; every downstream stage
// reads it and owns its own derived results.
type Document struct {
	// ID identifies the source, typically the input filename or path.
	ID string `json:"id" yaml:"id"`

	// Text is the cleaned full text with line wrapping repaired.
	Text string `json:"text" yaml:"text"`

	// Language is the inferred or declared language tag ("en" or "sk").
	Language string `json:"language" yaml:"language"`

	// Tokens is the ordered normalized token sequence over all sections.
	Tokens []string `json:"-" yaml:"-"`

	// Sections partitions Text with headings and reference lists marked.
	Sections []Section `json:"-" yaml:"-"`
}

// TermPair is an unordered pair of terms in canonical order (A < B).
type TermPair struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// MakeTermPair returns the canonical TermPair for two terms.
func MakeTermPair(x, y string) TermPair {
	if x > y {
		x, y = y, x
	}
	return TermPair{A: x, B: y}
}

// DocumentStats holds the raw frequency and co-occurrence counts for one
// document. The corpus aggregator merges these without mutating them.
type DocumentStats struct {
	DocumentID  string
	Frequencies map[string]int
	Pairs       map[TermPair]int
}

// DocumentResult is the complete per-document analysis output: citation
// records, theme report, and the raw statistics the aggregator consumes.
type DocumentResult struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	Language   string `json:"language" yaml:"language"`

	// Citations are the structured records built from pattern matches.
	Citations []CitationRecord `json:"citations" yaml:"citations"`

	// AvgConfidence is the mean confidence over Citations (0 when empty).
	AvgConfidence float64 `json:"avg_confidence" yaml:"avg_confidence"`

	// AIFallback marks the document as a candidate for AI-assisted
	// extraction when the confidence average falls below the configured
	// threshold. The core only sets the flag; it never calls a service.
	AIFallback bool `json:"ai_fallback" yaml:"ai_fallback"`

	// Themes is the per-document theme report.
	Themes ThemeReport `json:"themes" yaml:"themes"`

	// Stats carries the raw counts for corpus aggregation.
	Stats DocumentStats `json:"-" yaml:"-"`
}

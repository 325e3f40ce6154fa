package types

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks a structurally invalid analysis configuration.
// Configuration errors fail fast at pipeline construction, before any
// document is processed.
var ErrInvalidConfig = errors.New("invalid analysis configuration")

// Default analysis parameters. Unset options take these values.
const (
	DefaultWindowSize            = 10
	DefaultCooccurrenceThreshold = 2
	DefaultClusterThreshold      = 3
	DefaultTopKThemes            = 15
	DefaultMinTermFrequency      = 2
	DefaultOverlapThreshold      = 0.6
	DefaultFallbackThreshold     = 0.5
)

// AnalysisConfig holds every tunable the core pipeline consumes. It is
// passed explicitly at pipeline construction so multiple pipelines with
// different thresholds can run side by side without interference.
type AnalysisConfig struct {
	// StopWords are function words excluded from frequency counting.
	// Empty means the built-in list for the document language.
	StopWords []string `json:"stop_words,omitempty" yaml:"stop_words,omitempty"`

	// WindowSize is the co-occurrence window in tokens. Pairs are
	// counted for terms at most WindowSize-1 positions apart within one
	// section; larger windows produce denser co-occurrence graphs.
	WindowSize int `json:"window_size" yaml:"window_size"`

	// CooccurrenceThreshold is the minimum pair count for a pair to be
	// reported as a related term of a dominant theme.
	CooccurrenceThreshold int `json:"cooccurrence_threshold" yaml:"cooccurrence_threshold"`

	// ClusterThreshold is the minimum pair count for a cluster edge.
	ClusterThreshold int `json:"cluster_threshold" yaml:"cluster_threshold"`

	// TopKThemes is the number of dominant themes to report.
	TopKThemes int `json:"top_k_themes" yaml:"top_k_themes"`

	// MinTermFrequency is the minimum frequency for a term to qualify
	// as a dominant theme; reference-vocabulary terms below it are
	// flagged as research gaps.
	MinTermFrequency int `json:"min_term_frequency" yaml:"min_term_frequency"`

	// OverlapThreshold is the span-overlap fraction (0-1) above which
	// two citation matches are considered duplicates of one another.
	OverlapThreshold float64 `json:"overlap_resolution_threshold" yaml:"overlap_resolution_threshold"`

	// FallbackThreshold is the confidence average below which a
	// document is flagged as an AI-extraction fallback candidate.
	FallbackThreshold float64 `json:"fallback_confidence_threshold" yaml:"fallback_confidence_threshold"`

	// ReferenceVocabulary lists expected domain terms for gap detection.
	// Optional; empty disables gap detection.
	ReferenceVocabulary []string `json:"reference_vocabulary,omitempty" yaml:"reference_vocabulary,omitempty"`
}

// DefaultAnalysisConfig returns a configuration with every option at its
// documented default.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		WindowSize:            DefaultWindowSize,
		CooccurrenceThreshold: DefaultCooccurrenceThreshold,
		ClusterThreshold:      DefaultClusterThreshold,
		TopKThemes:            DefaultTopKThemes,
		MinTermFrequency:      DefaultMinTermFrequency,
		OverlapThreshold:      DefaultOverlapThreshold,
		FallbackThreshold:     DefaultFallbackThreshold,
	}
}

// Validate reports the first out-of-range option. Out-of-range values
// are an error, never a silent clamp.
func (c AnalysisConfig) Validate() error {
	switch {
	case c.WindowSize <= 0:
		return fmt.Errorf("%w: window_size must be positive, got %d", ErrInvalidConfig, c.WindowSize)
	case c.CooccurrenceThreshold <= 0:
		return fmt.Errorf("%w: cooccurrence_threshold must be positive, got %d", ErrInvalidConfig, c.CooccurrenceThreshold)
	case c.ClusterThreshold <= 0:
		return fmt.Errorf("%w: cluster_threshold must be positive, got %d", ErrInvalidConfig, c.ClusterThreshold)
	case c.TopKThemes <= 0:
		return fmt.Errorf("%w: top_k_themes must be positive, got %d", ErrInvalidConfig, c.TopKThemes)
	case c.MinTermFrequency <= 0:
		return fmt.Errorf("%w: min_term_frequency must be positive, got %d", ErrInvalidConfig, c.MinTermFrequency)
	case c.OverlapThreshold <= 0 || c.OverlapThreshold > 1:
		return fmt.Errorf("%w: overlap_resolution_threshold must be in (0,1], got %v", ErrInvalidConfig, c.OverlapThreshold)
	case c.FallbackThreshold < 0 || c.FallbackThreshold > 1:
		return fmt.Errorf("%w: fallback_confidence_threshold must be in [0,1], got %v", ErrInvalidConfig, c.FallbackThreshold)
	}
	return nil
}

// StoreConfig holds settings for the result store.
type StoreConfig struct {
	// ResultsDir is the directory holding per-document result YAML files.
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// IndexDir is the directory for the SQLite database and exports.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RelatedTerm is a term co-occurring with a dominant theme, with the
// co-occurrence count as strength.
type RelatedTerm struct {
	Term     string `json:"term" yaml:"term"`
	Strength int    `json:"strength" yaml:"strength"`
}

// ThemeCount is one dominant or emerging theme with its frequency and
// derived importance score.
type ThemeCount struct {
	Term      string `json:"term" yaml:"term"`
	Frequency int    `json:"frequency" yaml:"frequency"`

	// Importance is frequency * (1 + 1/(1+frequency)), a mild boost for
	// rarer terms kept for report ordering context; dominant themes are
	// ordered by frequency, then alphabetically.
	Importance float64 `json:"importance" yaml:"importance"`

	// Related lists the strongest co-occurring terms above the
	// co-occurrence threshold.
	Related []RelatedTerm `json:"related_terms,omitempty" yaml:"related_terms,omitempty"`
}

// ConceptCluster is a set of terms whose pairwise co-occurrence exceeds
// the cluster threshold, grouped transitively. The label is the
// highest-frequency member.
type ConceptCluster struct {
	Label string   `json:"label" yaml:"label"`
	Terms []string `json:"terms" yaml:"terms"`
}

// ThemeReport summarizes the lexical theme statistics of one document or
// of the whole corpus (DocumentID empty at corpus level).
type ThemeReport struct {
	DocumentID string `json:"document_id,omitempty" yaml:"document_id,omitempty"`

	// DominantThemes are the top-K terms by frequency after stop-word
	// and minimum-frequency filtering.
	DominantThemes []ThemeCount `json:"dominant_themes" yaml:"dominant_themes"`

	// EmergingThemes are mid-frequency terms (3 to 10 occurrences).
	EmergingThemes []ThemeCount `json:"emerging_themes,omitempty" yaml:"emerging_themes,omitempty"`

	// Clusters are the concept clusters, ordered by label.
	Clusters []ConceptCluster `json:"concept_clusters" yaml:"concept_clusters"`

	// Gaps lists reference-vocabulary terms absent from or rare in the
	// analyzed text, alphabetically. Absence has no natural ranking.
	Gaps []string `json:"research_gaps" yaml:"research_gaps"`

	// UniqueTerms and TotalTerms are corpus statistics after filtering.
	UniqueTerms int `json:"unique_terms" yaml:"unique_terms"`
	TotalTerms  int `json:"total_terms" yaml:"total_terms"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CitationStyle is the structural category of a bibliographic reference.
// Styles are mutually exclusive labels, not a hierarchy.
type CitationStyle string

const (
	StyleBook    CitationStyle = "book"
	StyleArticle CitationStyle = "article"
	StyleChapter CitationStyle = "chapter"
	StyleOnline  CitationStyle = "online"
	StyleUnknown CitationStyle = "unknown"
)

// CitationRecord is a structured bibliographic reference recovered from
// running text. Extraction is best-effort: confidence reflects how many
// of the four field categories (author, year, title, container) the
// matching pattern populated, from 0.25 (one category) to 1.0 (all four).
type CitationRecord struct {
	// ID is a stable content-derived identifier, consistent across
	// re-runs on identical text.
	ID string `json:"id" yaml:"id"`

	// Style is the recognizer's style tag.
	Style CitationStyle `json:"style" yaml:"style"`

	// Authors lists the cited work's authors in source order, unique
	// per record.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year; zero when not captured.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Title is the cited work's title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Container is the journal, book, or publisher holding the work.
	Container string `json:"container,omitempty" yaml:"container,omitempty"`

	// Locator is the volume/issue/page information, verbatim.
	Locator string `json:"locator,omitempty" yaml:"locator,omitempty"`

	// URL is populated for online sources.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Confidence is the computed field-completeness score in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// DocumentID identifies the source document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// RawText is the matched span as it appeared in the source.
	RawText string `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`

	// Section is the heading the match was found under, when known.
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
}

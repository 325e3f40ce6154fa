// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibformat renders citation records as formatted bibliographies
// in APA, MLA, or Chicago style. Entries are sorted by the first
// author's last name with diacritics folded, so Slovak names file next
// to their base-letter neighbors.
package bibformat

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/citelens/pkg/types"
)

// Style selects the bibliography format.
type Style string

const (
	StyleAPA     Style = "apa"
	StyleMLA     Style = "mla"
	StyleChicago Style = "chicago"
)

// apaMaxAuthors is the APA author-list cap: above it, the first six are
// listed, then an ellipsis, then the final author.
const apaMaxAuthors = 7

// Formatter renders bibliographies in one style.
type Formatter struct {
	style Style
}

// New returns a formatter for the named style. Unsupported names fail
// fast as a configuration error.
func New(style string) (*Formatter, error) {
	switch Style(strings.ToLower(style)) {
	case StyleAPA, StyleMLA, StyleChicago:
		return &Formatter{style: Style(strings.ToLower(style))}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported bibliography style %q (supported: apa, mla, chicago)",
			types.ErrInvalidConfig, style)
	}
}

// Format renders the records as bibliography text, sorted by author.
// Chicago entries are numbered; APA and MLA are separated by blank lines.
func (f *Formatter) Format(records []types.CitationRecord) string {
	sorted := sortRecords(records)

	entries := make([]string, 0, len(sorted))
	for _, rec := range sorted {
		var entry string
		switch f.style {
		case StyleAPA:
			entry = formatAPA(rec)
		case StyleMLA:
			entry = formatMLA(rec)
		case StyleChicago:
			entry = formatChicago(rec)
		}
		if entry != "" {
			entries = append(entries, entry)
		}
	}

	if f.style == StyleChicago {
		for i, e := range entries {
			entries[i] = strconv.Itoa(i+1) + ". " + e
		}
	}
	return strings.Join(entries, "\n\n")
}

// sortRecords orders by the normalized first-author last name, falling
// back to the title for authorless records. The input is not mutated.
func sortRecords(records []types.CitationRecord) []types.CitationRecord {
	sorted := make([]types.CitationRecord, len(records))
	copy(sorted, records)
	keys := make([]string, len(sorted))
	for i, rec := range sorted {
		keys[i] = sortKey(rec)
	}
	// Insertion sort keeps equal keys in input order without pulling
	// the key computation into the comparator.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

func sortKey(rec types.CitationRecord) string {
	if len(rec.Authors) > 0 {
		return normalizeForSorting(lastName(rec.Authors[0]))
	}
	if rec.Title != "" {
		return normalizeForSorting(rec.Title)
	}
	return normalizeForSorting(rec.RawText)
}

// leadingArticles are stripped before sorting titles.
var leadingArticles = []string{"The ", "A ", "An ", "Der ", "Die ", "Das ", "Le ", "La ", "Les "}

// normalizeForSorting lowercases and strips combining marks via NFD
// decomposition, after removing a leading article.
func normalizeForSorting(text string) string {
	text = strings.TrimSpace(text)
	for _, article := range leadingArticles {
		if strings.HasPrefix(text, article) {
			text = text[len(article):]
			break
		}
	}

	var b strings.Builder
	for _, r := range norm.NFD.String(text) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// lastName extracts the surname from "Last, First" or "First Last".
func lastName(author string) string {
	author = strings.TrimSpace(author)
	if before, _, ok := strings.Cut(author, ","); ok {
		return strings.TrimSpace(before)
	}
	parts := strings.Fields(author)
	if len(parts) == 0 {
		return author
	}
	return parts[len(parts)-1]
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citeparse recognizes bibliographic references in normalized
// text and builds structured citation records from them. Recognition is
// best-effort: unmatched text is silently ignored, and every record
// carries a confidence score computed from field completeness.
package citeparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/citelens/pkg/types"
)

// Fields holds the captured groups of one raw match, before record
// building. Zero values mean the pattern did not populate the field.
type Fields struct {
	Authors   []string
	Year      int
	Title     string
	Container string
	Locator   string
	URL       string
}

// populated counts the field categories present: author, year, title,
// and container (a URL counts as the container of an online source).
// Confidence is this count normalized to [0,1].
func (f Fields) populated() int {
	n := 0
	if len(f.Authors) > 0 {
		n++
	}
	if f.Year > 0 {
		n++
	}
	if f.Title != "" {
		n++
	}
	if f.Container != "" || f.URL != "" {
		n++
	}
	return n
}

// Match is one raw recognizer hit: a span in the scanned text, the style
// tag, and the captured fields. Matches from different recognizers may
// overlap on the same span; the builder resolves overlaps.
type Match struct {
	Start, End int
	Style      types.CitationStyle
	Fields     Fields
	Raw        string

	// Priority is the recognizer's position in the engine's ordered
	// list; it breaks ties only, it never excludes a match.
	Priority int

	// Section is the heading the match was found under, set by callers
	// that scan section by section.
	Section string
}

// Recognizer matches one bibliographic style. Implementations are pure
// functions of their input and must return matches ordered by position.
type Recognizer interface {
	Style() types.CitationStyle
	Match(text string) []Match
}

// Character classes covering the Latin base alphabet plus the Slovak
// diacritic set, mirrored in the normalizer.
const (
	upper = `A-ZÁÄČĎÉÍĽĹŇÓÔŔŠŤÚÝŽ`
	lower = `a-záäčďéíľĺňóôŕšťúýž`
)

// authorSplitRe separates authors joined by "and", "&", or the Slovak
// conjunction "a".
var authorSplitRe = regexp.MustCompile(`\s+(?:and|a|&)\s+|,\s*(?:and|a|&)\s+`)

// parseAuthors splits an author block into individual names, preserving
// source order and dropping duplicates within the record.
func parseAuthors(block string) []string {
	block = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(block), ","))
	if block == "" {
		return nil
	}

	var names []string
	for _, part := range authorSplitRe.Split(block, -1) {
		// "Smith, J., Novák, P." packs several "Last, F." units into
		// one chunk; split at the initial's period before a comma.
		pieces := strings.Split(part, "., ")
		for i, p := range pieces {
			if i < len(pieces)-1 {
				p += "."
			}
			p = strings.TrimSpace(p)
			if p != "" {
				names = append(names, p)
			}
		}
	}

	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// yearRe matches a plausible publication year.
var yearRe = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)

func parseYear(s string) int {
	m := yearRe.FindString(s)
	if m == "" {
		return 0
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return y
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package themes computes lexical theme statistics: term frequencies,
// windowed co-occurrence counts, dominant themes, concept clusters, and
// research-gap detection. All statistics are frequency-based; no
// semantic interpretation is attempted.
package themes

import (
	"github.com/pdiddy/citelens/pkg/types"
)

// Count accumulates term frequencies and co-occurrence pair counts for
// one document in a single pass. Only prose sections contribute:
// headings and reference lists are excluded so bibliography noise never
// pollutes the theme statistics. Co-occurrence is counted for term
// pairs at most windowSize-1 positions apart, and the window never
// crosses a section boundary. Cost is O(n*w) in tokens and window size.
func Count(doc types.Document, stopWords map[string]struct{}, windowSize int) types.DocumentStats {
	stats := types.DocumentStats{
		DocumentID:  doc.ID,
		Frequencies: make(map[string]int),
		Pairs:       make(map[types.TermPair]int),
	}

	for _, section := range doc.Sections {
		if section.Kind != types.SectionProse {
			continue
		}

		terms := make([]string, 0, len(section.Tokens))
		for _, tok := range section.Tokens {
			if _, stop := stopWords[tok]; stop {
				continue
			}
			terms = append(terms, tok)
			stats.Frequencies[tok]++
		}

		for i := range terms {
			limit := min(i+windowSize, len(terms))
			for j := i + 1; j < limit; j++ {
				if terms[i] == terms[j] {
					continue
				}
				stats.Pairs[types.MakeTermPair(terms[i], terms[j])]++
			}
		}
	}

	return stats
}

// StopWordSet builds the lookup set the counter consumes, falling back
// to the built-in list for the language when the configured set is empty.
func StopWordSet(configured []string, fallback []string) map[string]struct{} {
	words := configured
	if len(words) == 0 {
		words = fallback
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

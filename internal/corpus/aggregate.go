// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus merges per-document theme statistics into corpus-level
// rollups with provenance: every aggregated term and pair remembers
// which documents contributed it.
package corpus

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pdiddy/citelens/internal/themes"
	"github.com/pdiddy/citelens/pkg/types"
)

// ErrDuplicateDocument marks a document id added to the same aggregate
// twice, which is a caller programming error and fails immediately.
var ErrDuplicateDocument = errors.New("duplicate document id in corpus")

// Aggregator accumulates document statistics into a corpus view. It is
// single-writer: concurrent Add calls into the same Aggregator require
// external serialization. Per-document inputs are never mutated.
type Aggregator struct {
	cfg types.AnalysisConfig

	docs        map[string]struct{}
	frequencies map[string]int
	pairs       map[types.TermPair]int
	termDocs    map[string]map[string]struct{}
	pairDocs    map[types.TermPair]map[string]struct{}
}

// NewAggregator builds an empty aggregate; the configuration is
// validated up front so synthesis parameters match those used per
// document.
func NewAggregator(cfg types.AnalysisConfig) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{
		cfg:         cfg,
		docs:        make(map[string]struct{}),
		frequencies: make(map[string]int),
		pairs:       make(map[types.TermPair]int),
		termDocs:    make(map[string]map[string]struct{}),
		pairDocs:    make(map[types.TermPair]map[string]struct{}),
	}, nil
}

// Add merges one document's statistics into the aggregate. Frequencies
// and pair counts are summed; contributing document ids are recorded.
func (a *Aggregator) Add(stats types.DocumentStats) error {
	if stats.DocumentID == "" {
		return fmt.Errorf("document stats missing document id")
	}
	if _, ok := a.docs[stats.DocumentID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDocument, stats.DocumentID)
	}
	a.docs[stats.DocumentID] = struct{}{}

	for term, freq := range stats.Frequencies {
		a.frequencies[term] += freq
		if a.termDocs[term] == nil {
			a.termDocs[term] = make(map[string]struct{})
		}
		a.termDocs[term][stats.DocumentID] = struct{}{}
	}

	for pair, count := range stats.Pairs {
		a.pairs[pair] += count
		if a.pairDocs[pair] == nil {
			a.pairDocs[pair] = make(map[string]struct{})
		}
		a.pairDocs[pair][stats.DocumentID] = struct{}{}
	}

	return nil
}

// Documents returns the number of documents merged so far.
func (a *Aggregator) Documents() int { return len(a.docs) }

// Frequency returns the corpus-wide frequency for a term.
func (a *Aggregator) Frequency(term string) int { return a.frequencies[term] }

// Provenance returns the sorted ids of the documents that contributed a
// term, or nil when the term never appeared.
func (a *Aggregator) Provenance(term string) []string {
	return sortedIDs(a.termDocs[term])
}

// PairProvenance returns the sorted ids of the documents that
// contributed a co-occurrence pair.
func (a *Aggregator) PairProvenance(pair types.TermPair) []string {
	return sortedIDs(a.pairDocs[pair])
}

// Stats exposes the merged counts as a corpus-level DocumentStats with
// an empty document id, usable anywhere per-document stats are.
func (a *Aggregator) Stats() types.DocumentStats {
	return types.DocumentStats{
		Frequencies: a.frequencies,
		Pairs:       a.pairs,
	}
}

// Report reruns theme synthesis at the corpus level with the same
// algorithm and parameters used per document.
func (a *Aggregator) Report() types.ThemeReport {
	return themes.Synthesize(a.Stats(), a.cfg)
}

func sortedIDs(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package themes

import (
	"sort"
	"strings"

	"github.com/pdiddy/citelens/pkg/types"
)

// Emerging-theme frequency band, from the source corpus analysis.
const (
	emergingMin   = 3
	emergingMax   = 10
	emergingLimit = 5
	relatedLimit  = 5
)

// Synthesize ranks the counted statistics into a theme report. It is
// used unchanged at both the per-document and the corpus level; the
// report is deterministic given identical inputs and thresholds. Fewer
// distinct terms than TopKThemes is not an error: all available terms
// are returned.
func Synthesize(stats types.DocumentStats, cfg types.AnalysisConfig) types.ThemeReport {
	report := types.ThemeReport{
		DocumentID:  stats.DocumentID,
		UniqueTerms: len(stats.Frequencies),
	}
	for _, f := range stats.Frequencies {
		report.TotalTerms += f
	}

	ranked := rankTerms(stats.Frequencies, cfg.MinTermFrequency)

	for _, tc := range ranked {
		if len(report.DominantThemes) >= cfg.TopKThemes {
			break
		}
		tc.Related = relatedTerms(stats, tc.Term, cfg.CooccurrenceThreshold)
		report.DominantThemes = append(report.DominantThemes, tc)
	}

	for _, tc := range ranked {
		if len(report.EmergingThemes) >= emergingLimit {
			break
		}
		if tc.Frequency >= emergingMin && tc.Frequency <= emergingMax {
			report.EmergingThemes = append(report.EmergingThemes, tc)
		}
	}

	report.Clusters = clusterTerms(stats, cfg.ClusterThreshold)
	report.Gaps = detectGaps(stats.Frequencies, cfg.ReferenceVocabulary, cfg.MinTermFrequency)

	return report
}

// rankTerms orders terms by frequency, breaking ties alphabetically on
// the normalized term, after minimum-frequency filtering.
func rankTerms(frequencies map[string]int, minFrequency int) []types.ThemeCount {
	ranked := make([]types.ThemeCount, 0, len(frequencies))
	for term, freq := range frequencies {
		if freq < minFrequency {
			continue
		}
		ranked = append(ranked, types.ThemeCount{
			Term:       term,
			Frequency:  freq,
			Importance: importance(freq),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].Term < ranked[j].Term
	})
	return ranked
}

// importance mildly boosts rarer terms: freq * (1 + 1/(1+freq)).
func importance(freq int) float64 {
	f := float64(freq)
	return f * (1 + 1/(1+f))
}

// relatedTerms lists the strongest co-occurring partners of term above
// the co-occurrence threshold, strongest first, ties alphabetical.
func relatedTerms(stats types.DocumentStats, term string, threshold int) []types.RelatedTerm {
	var related []types.RelatedTerm
	for pair, count := range stats.Pairs {
		if count < threshold {
			continue
		}
		switch term {
		case pair.A:
			related = append(related, types.RelatedTerm{Term: pair.B, Strength: count})
		case pair.B:
			related = append(related, types.RelatedTerm{Term: pair.A, Strength: count})
		}
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].Strength != related[j].Strength {
			return related[i].Strength > related[j].Strength
		}
		return related[i].Term < related[j].Term
	})
	if len(related) > relatedLimit {
		related = related[:relatedLimit]
	}
	return related
}

// clusterTerms groups terms into connected components of the graph whose
// edges are pairs with co-occurrence at or above the cluster threshold.
// Each cluster is labeled with its highest-frequency member; output
// ordering is deterministic (clusters by label, members alphabetical).
func clusterTerms(stats types.DocumentStats, threshold int) []types.ConceptCluster {
	parent := make(map[string]string)

	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		if _, ok := parent[a]; !ok {
			parent[a] = a
		}
		if _, ok := parent[b]; !ok {
			parent[b] = b
		}
		ra, rb := find(a), find(b)
		if ra != rb {
			// Deterministic root choice keeps runs reproducible.
			if ra < rb {
				parent[rb] = ra
			} else {
				parent[ra] = rb
			}
		}
	}

	for pair, count := range stats.Pairs {
		if count >= threshold {
			union(pair.A, pair.B)
		}
	}

	components := make(map[string][]string)
	for term := range parent {
		root := find(term)
		components[root] = append(components[root], term)
	}

	clusters := make([]types.ConceptCluster, 0, len(components))
	for _, terms := range components {
		if len(terms) < 2 {
			continue
		}
		sort.Strings(terms)
		clusters = append(clusters, types.ConceptCluster{
			Label: clusterLabel(terms, stats.Frequencies),
			Terms: terms,
		})
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Label < clusters[j].Label })
	return clusters
}

// clusterLabel picks the highest-frequency member; alphabetical order
// breaks frequency ties because terms arrive sorted.
func clusterLabel(terms []string, frequencies map[string]int) string {
	label := terms[0]
	for _, t := range terms[1:] {
		if frequencies[t] > frequencies[label] {
			label = t
		}
	}
	return label
}

// detectGaps flags reference-vocabulary terms absent from or below the
// minimum frequency in the counted text. The result is a set ordered
// alphabetically; absence has no natural ranking.
func detectGaps(frequencies map[string]int, vocabulary []string, minFrequency int) []string {
	var gaps []string
	seen := make(map[string]bool, len(vocabulary))
	for _, term := range vocabulary {
		// Counted frequencies are keyed by lowercased tokens.
		term = strings.ToLower(term)
		if seen[term] {
			continue
		}
		seen[term] = true
		if frequencies[term] < minFrequency {
			gaps = append(gaps, term)
		}
	}
	sort.Strings(gaps)
	return gaps
}

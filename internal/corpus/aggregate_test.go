// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citelens/pkg/types"
)

func stats(docID string, freqs map[string]int, pairs map[types.TermPair]int) types.DocumentStats {
	if pairs == nil {
		pairs = map[types.TermPair]int{}
	}
	return types.DocumentStats{DocumentID: docID, Frequencies: freqs, Pairs: pairs}
}

func TestAggregatorSumsFrequenciesWithProvenance(t *testing.T) {
	agg, err := NewAggregator(types.DefaultAnalysisConfig())
	require.NoError(t, err)

	require.NoError(t, agg.Add(stats("doc1", map[string]int{"ethics": 3}, nil)))
	require.NoError(t, agg.Add(stats("doc2", map[string]int{"ethics": 5, "privacy": 2}, nil)))

	assert.Equal(t, 2, agg.Documents())
	assert.Equal(t, 8, agg.Frequency("ethics"))
	assert.Equal(t, 2, agg.Frequency("privacy"))
	assert.Equal(t, []string{"doc1", "doc2"}, agg.Provenance("ethics"))
	assert.Equal(t, []string{"doc2"}, agg.Provenance("privacy"))
	assert.Nil(t, agg.Provenance("absent"))
}

func TestAggregatorSumsPairCounts(t *testing.T) {
	agg, err := NewAggregator(types.DefaultAnalysisConfig())
	require.NoError(t, err)

	pair := types.MakeTermPair("ethics", "privacy")
	require.NoError(t, agg.Add(stats("doc1", map[string]int{}, map[types.TermPair]int{pair: 2})))
	require.NoError(t, agg.Add(stats("doc2", map[string]int{}, map[types.TermPair]int{pair: 3})))

	assert.Equal(t, 5, agg.Stats().Pairs[pair])
	assert.Equal(t, []string{"doc1", "doc2"}, agg.PairProvenance(pair))
}

func TestAggregatorRejectsDuplicateDocument(t *testing.T) {
	agg, err := NewAggregator(types.DefaultAnalysisConfig())
	require.NoError(t, err)

	require.NoError(t, agg.Add(stats("doc1", map[string]int{"ethics": 1}, nil)))
	err = agg.Add(stats("doc1", map[string]int{"ethics": 1}, nil))
	assert.ErrorIs(t, err, ErrDuplicateDocument)
}

func TestAggregatorRejectsMissingDocumentID(t *testing.T) {
	agg, err := NewAggregator(types.DefaultAnalysisConfig())
	require.NoError(t, err)

	assert.Error(t, agg.Add(stats("", map[string]int{"ethics": 1}, nil)))
}

func TestAggregatorRejectsInvalidConfig(t *testing.T) {
	cfg := types.DefaultAnalysisConfig()
	cfg.WindowSize = -1

	_, err := NewAggregator(cfg)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestAggregatorDoesNotMutateInputs(t *testing.T) {
	agg, err := NewAggregator(types.DefaultAnalysisConfig())
	require.NoError(t, err)

	in := stats("doc1", map[string]int{"ethics": 3}, nil)
	require.NoError(t, agg.Add(in))
	require.NoError(t, agg.Add(stats("doc2", map[string]int{"ethics": 5}, nil)))

	assert.Equal(t, 3, in.Frequencies["ethics"], "per-document stats must stay untouched")
}

func TestAggregatorReportUsesCorpusCounts(t *testing.T) {
	cfg := types.DefaultAnalysisConfig()
	agg, err := NewAggregator(cfg)
	require.NoError(t, err)

	// Each document alone is below the minimum frequency; together they
	// cross it, so the theme appears only at corpus level.
	require.NoError(t, agg.Add(stats("doc1", map[string]int{"ethics": 1}, nil)))
	require.NoError(t, agg.Add(stats("doc2", map[string]int{"ethics": 1}, nil)))

	report := agg.Report()
	require.Len(t, report.DominantThemes, 1)
	assert.Equal(t, "ethics", report.DominantThemes[0].Term)
	assert.Equal(t, 2, report.DominantThemes[0].Frequency)
	assert.Empty(t, report.DocumentID, "corpus report carries no document id")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citeparse

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/citelens/pkg/types"
)

// confidenceCategories is the number of scored field categories:
// author, year, title, container. One populated category is the floor
// confidence of 0.25; all four score 1.0.
const confidenceCategories = 4

// BuildRecords turns raw matches into citation records: overlapping
// spans are resolved, duplicates merged, confidence computed, and
// stable IDs assigned. Matches must come from one Scan pass (sorted by
// position, then priority). An empty match set is a valid outcome and
// yields an empty record set.
func BuildRecords(docID string, matches []Match, overlapThreshold float64) []types.CitationRecord {
	kept := resolveOverlaps(matches, overlapThreshold)

	records := make([]types.CitationRecord, 0, len(kept))
	index := make(map[string]int, len(kept))

	for _, m := range kept {
		rec := recordFromMatch(docID, m)
		key := dedupKey(rec)
		if i, ok := index[key]; ok {
			records[i] = mergeRecords(records[i], rec)
			continue
		}
		index[key] = len(records)
		records = append(records, rec)
	}

	for i := range records {
		records[i].ID = recordID(records[i])
	}
	return records
}

// resolveOverlaps drops the weaker of any two matches whose spans
// overlap beyond the threshold. The match with more populated fields
// wins; on a tie the earlier-priority recognizer's match is kept.
func resolveOverlaps(matches []Match, threshold float64) []Match {
	dropped := make([]bool, len(matches))
	for i := range matches {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(matches) && matches[j].Start < matches[i].End; j++ {
			if dropped[j] {
				continue
			}
			if overlapRatio(matches[i], matches[j]) <= threshold {
				continue
			}
			if matches[j].Fields.populated() > matches[i].Fields.populated() {
				dropped[i] = true
				break
			}
			dropped[j] = true
		}
	}

	kept := matches[:0:0]
	for i, m := range matches {
		if !dropped[i] {
			kept = append(kept, m)
		}
	}
	return kept
}

// overlapRatio is the intersection length over the shorter span.
func overlapRatio(a, b Match) float64 {
	lo := max(a.Start, b.Start)
	hi := min(a.End, b.End)
	if hi <= lo {
		return 0
	}
	shorter := min(a.End-a.Start, b.End-b.Start)
	return float64(hi-lo) / float64(shorter)
}

func recordFromMatch(docID string, m Match) types.CitationRecord {
	return types.CitationRecord{
		Style:      m.Style,
		Authors:    m.Fields.Authors,
		Year:       m.Fields.Year,
		Title:      m.Fields.Title,
		Container:  m.Fields.Container,
		Locator:    m.Fields.Locator,
		URL:        m.Fields.URL,
		Confidence: float64(m.Fields.populated()) / confidenceCategories,
		DocumentID: docID,
		RawText:    m.Raw,
		Section:    m.Section,
	}
}

// dedupKey identifies records describing the same work: normalized
// author set, year, and title.
func dedupKey(rec types.CitationRecord) string {
	authors := make([]string, len(rec.Authors))
	for i, a := range rec.Authors {
		authors[i] = strings.ToLower(a)
	}
	sort.Strings(authors)
	return fmt.Sprintf("%s|%d|%s", strings.Join(authors, ";"), rec.Year, strings.ToLower(rec.Title))
}

// mergeRecords folds two records for the same work into one: fields from
// the higher-confidence record win, confidence is the max of the two.
func mergeRecords(a, b types.CitationRecord) types.CitationRecord {
	hi, lo := a, b
	if b.Confidence > a.Confidence {
		hi, lo = b, a
	}
	if hi.Container == "" {
		hi.Container = lo.Container
	}
	if hi.Locator == "" {
		hi.Locator = lo.Locator
	}
	if hi.URL == "" {
		hi.URL = lo.URL
	}
	if hi.Title == "" {
		hi.Title = lo.Title
	}
	if len(hi.Authors) == 0 {
		hi.Authors = lo.Authors
	}
	if hi.Year == 0 {
		hi.Year = lo.Year
	}
	hi.Confidence = float64(populatedCategories(hi)) / confidenceCategories
	if lo.Confidence > hi.Confidence {
		hi.Confidence = lo.Confidence
	}
	return hi
}

func populatedCategories(rec types.CitationRecord) int {
	n := 0
	if len(rec.Authors) > 0 {
		n++
	}
	if rec.Year > 0 {
		n++
	}
	if rec.Title != "" {
		n++
	}
	if rec.Container != "" || rec.URL != "" {
		n++
	}
	return n
}

// recordID derives a stable identifier from the record's identity
// fields, so re-running the parser on identical text yields identical
// IDs.
func recordID(rec types.CitationRecord) string {
	sum := sha256.Sum256([]byte(rec.DocumentID + "|" + string(rec.Style) + "|" + dedupKey(rec)))
	return fmt.Sprintf("%x", sum[:6])
}

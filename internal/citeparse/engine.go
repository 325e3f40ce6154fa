// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citeparse

import "sort"

// Engine applies an ordered recognizer list to text. New citation styles
// register without touching existing recognizers.
type Engine struct {
	recognizers []Recognizer
}

// NewEngine builds an engine over the given recognizers, in tie-break
// order. With no arguments it uses DefaultRecognizers.
func NewEngine(recognizers ...Recognizer) *Engine {
	if len(recognizers) == 0 {
		recognizers = DefaultRecognizers()
	}
	return &Engine{recognizers: recognizers}
}

// Register appends a recognizer at the lowest tie-break priority.
func (e *Engine) Register(r Recognizer) {
	e.recognizers = append(e.recognizers, r)
}

// Scan emits every raw match from every recognizer, overlapping ones
// included, stably ordered by text position and then recognizer
// priority. Identical input always yields the identical sequence.
func (e *Engine) Scan(text string) []Match {
	var matches []Match
	for priority, r := range e.recognizers {
		for _, m := range r.Match(text) {
			m.Priority = priority
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		if matches[i].Priority != matches[j].Priority {
			return matches[i].Priority < matches[j].Priority
		}
		return matches[i].End > matches[j].End
	})

	return matches
}

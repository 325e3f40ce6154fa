// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citeparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/citelens/pkg/types"
)

// Author block grammar shared by the style patterns: "Last", "Last, F.",
// or "Last, F. M.", joined by commas or by an "and"/"&"/Slovak "a"
// conjunction.
var (
	nameUnit    = `[` + upper + `][` + lower + `\-]+(?:,(?:\s[` + upper + `]\.)+)?`
	authorBlock = nameUnit + `(?:(?:,?\s+(?:and|a|&)\s+|,\s+)` + nameUnit + `)*`
)

// Two pattern families per style where the source corpus had them: the
// APA-like form with a parenthesized year, and the legacy numbered form
// ("Author. Year. ...") common in the Slovak reference lists.
var (
	// chapterRe: Author (Year). Chapter title. In Editors (Ed.), Book (pp. 45-67).
	chapterRe = regexp.MustCompile(
		`(` + authorBlock + `)\s*\((\d{4})\)\.\s+([^.\n]+?)\.\s+In\s+(.+?)\s*\(pp\.\s*(\d+\s*[-–]\s*\d+)\)\.?`)

	// articleAPARe: Author (Year). Title. Journal, 12(3), 45-67.
	articleAPARe = regexp.MustCompile(
		`(` + authorBlock + `)\s*\((\d{4})\)\.\s+([^.\n]+?)\.\s+([` + upper + `][^,.\n]+?),\s+(\d[^.\n]*\d)\.?`)

	// articleLegacyRe: Author. Year. "Title". Journal 12(3): 45-67.
	// The period after the author block is optional because an author
	// ending in an initial already carries one.
	articleLegacyRe = regexp.MustCompile(
		`(?m)^[-•*]?\s*(` + authorBlock + `)\.?\s+(\d{4})\.\s+[„“"]([^„“”"\n]+)[“”"]\.?\s+([^\d\n]+?)\s+(\d+)\s*(?:\((\d+)\))?\s*:\s*(\d+\s*[-–]\s*\d+)`)

	// bookAPARe: Author (Year). Title. [Location:] Publisher.
	bookAPARe = regexp.MustCompile(
		`(` + authorBlock + `)\s*\((\d{4})\)\.\s+([^.\n]+?)\.\s+(?:([` + upper + `][^:.\n]+?):\s+)?([` + upper + `][^.:\n]+?)\.(?:\s|$)`)

	// bookLegacyRe: Author. Year. Title. Location: Publisher.
	bookLegacyRe = regexp.MustCompile(
		`(?m)^[-•*]?\s*(` + authorBlock + `)\.?\s+(\d{4})\.\s+([^.\n]+?)\.\s+([` + upper + `][^:.\n]+?):\s+([^.\n]+?)\.`)

	// urlRe: any http(s) link; trailing punctuation is trimmed afterwards.
	urlRe = regexp.MustCompile(`https?://[^\s)\]>"']+`)

	// quotedTitleRe: a quoted segment preceding a URL on the same line.
	quotedTitleRe = regexp.MustCompile(`[„“"]([^„“”"\n]{4,})[“”"]`)
)

// regexRecognizer matches one style with an ordered list of patterns and
// a per-pattern field extractor.
type regexRecognizer struct {
	style    types.CitationStyle
	patterns []*regexp.Regexp
	extract  func(pattern int, groups []string) Fields
}

func (r *regexRecognizer) Style() types.CitationStyle { return r.style }

func (r *regexRecognizer) Match(text string) []Match {
	var matches []Match
	for pi, re := range r.patterns {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			groups := make([]string, len(idx)/2)
			for g := range groups {
				if idx[2*g] >= 0 {
					groups[g] = text[idx[2*g]:idx[2*g+1]]
				}
			}
			matches = append(matches, Match{
				Start:  idx[0],
				End:    idx[1],
				Style:  r.style,
				Fields: r.extract(pi, groups),
				Raw:    strings.TrimSpace(groups[0]),
			})
		}
	}
	return matches
}

// NewChapterRecognizer matches book-chapter citations with an
// "In ... (pp. x-y)" marker. It is tried before the article recognizer
// because the marker makes it the more specific of the two.
func NewChapterRecognizer() Recognizer {
	return &regexRecognizer{
		style:    types.StyleChapter,
		patterns: []*regexp.Regexp{chapterRe},
		extract: func(_ int, g []string) Fields {
			return Fields{
				Authors:   parseAuthors(g[1]),
				Year:      parseYear(g[2]),
				Title:     strings.TrimSpace(g[3]),
				Container: strings.TrimSpace(g[4]),
				Locator:   "pp. " + collapseSpaces(g[5]),
			}
		},
	}
}

// NewArticleRecognizer matches journal articles in the APA form and the
// legacy quoted-title form.
func NewArticleRecognizer() Recognizer {
	return &regexRecognizer{
		style:    types.StyleArticle,
		patterns: []*regexp.Regexp{articleAPARe, articleLegacyRe},
		extract: func(pattern int, g []string) Fields {
			f := Fields{
				Authors: parseAuthors(g[1]),
				Year:    parseYear(g[2]),
				Title:   strings.TrimSpace(g[3]),
			}
			switch pattern {
			case 0:
				f.Container = strings.TrimSpace(g[4])
				f.Locator = strings.TrimSpace(g[5])
			case 1:
				f.Container = strings.TrimSpace(g[4])
				f.Locator = legacyLocator(g[5], g[6], g[7])
			}
			return f
		},
	}
}

// NewBookRecognizer matches monographs. When a publication place is
// captured, the container keeps the "Location: Publisher" form.
func NewBookRecognizer() Recognizer {
	return &regexRecognizer{
		style:    types.StyleBook,
		patterns: []*regexp.Regexp{bookAPARe, bookLegacyRe},
		extract: func(_ int, g []string) Fields {
			f := Fields{
				Authors: parseAuthors(g[1]),
				Year:    parseYear(g[2]),
				Title:   strings.TrimSpace(g[3]),
			}
			location := strings.TrimSpace(g[4])
			publisher := strings.TrimSpace(g[5])
			if location != "" {
				f.Container = location + ": " + publisher
			} else {
				f.Container = publisher
			}
			return f
		},
	}
}

// onlineRecognizer matches sources by URL, line by line, taking a year
// and a quoted title from the surrounding line when present.
type onlineRecognizer struct{}

// NewOnlineRecognizer returns the online-source recognizer.
func NewOnlineRecognizer() Recognizer { return onlineRecognizer{} }

func (onlineRecognizer) Style() types.CitationStyle { return types.StyleOnline }

func (onlineRecognizer) Match(text string) []Match {
	var matches []Match
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		for _, idx := range urlRe.FindAllStringIndex(line, -1) {
			url := strings.TrimRight(line[idx[0]:idx[1]], ".,;")
			f := Fields{URL: url, Year: parseYear(line)}
			if tm := quotedTitleRe.FindStringSubmatch(line[:idx[0]]); tm != nil {
				f.Title = strings.TrimSpace(tm[1])
			}
			matches = append(matches, Match{
				Start:  offset + idx[0],
				End:    offset + idx[0] + len(url),
				Style:  types.StyleOnline,
				Fields: f,
				Raw:    url,
			})
		}
		offset += len(line)
	}
	return matches
}

// DefaultRecognizers returns the standard recognizer set in tie-break
// order: chapter, article, book, online. Ordering decides ties only;
// it never suppresses a match.
func DefaultRecognizers() []Recognizer {
	return []Recognizer{
		NewChapterRecognizer(),
		NewArticleRecognizer(),
		NewBookRecognizer(),
		NewOnlineRecognizer(),
	}
}

func legacyLocator(volume, issue, pages string) string {
	if issue != "" {
		return fmt.Sprintf("%s(%s): %s", volume, issue, collapseSpaces(pages))
	}
	return fmt.Sprintf("%s: %s", volume, collapseSpaces(pages))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

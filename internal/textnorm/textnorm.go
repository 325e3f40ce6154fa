// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm turns raw document text into the normalized Document
// every analysis stage consumes: cleaned text with repaired line
// wrapping, sections with reference lists marked, and a lowercase token
// sequence. Normalization is a pure function of its input; empty input
// yields an empty Document, never an error.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/pdiddy/citelens/pkg/types"
)

// slovakDiacritics are the extended Latin characters used for language
// inference. Three or more occurrences tag the document "sk".
const slovakDiacritics = "áäčďéíľĺňóôŕšťúýž"

// extractedTextMarker separates converter metadata from body text in
// Markdown produced by the PDF extraction collaborator.
const extractedTextMarker = "## Extracted Text"

// referenceHeadings mark sections excluded from theme statistics.
var referenceHeadings = []string{
	"references", "bibliography", "works cited", "notes", "footnotes",
	"literatúra", "literatura", "bibliografia", "zdroje", "pramene", "poznámky",
}

// Normalize produces the immutable Document for one input text. An
// optional language hint ("en" or "sk") overrides inference.
func Normalize(id, raw, langHint string) types.Document {
	doc := types.Document{ID: id}

	body := stripMetadata(raw)
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = unwrapLines(body)

	doc.Text = body
	if strings.TrimSpace(body) == "" {
		doc.Language = langHint
		return doc
	}

	if langHint != "" {
		doc.Language = langHint
	} else {
		doc.Language = detectLanguage(body)
	}

	doc.Sections = splitSections(body)
	for i := range doc.Sections {
		doc.Sections[i].Tokens = Tokenize(doc.Sections[i].Text)
		doc.Tokens = append(doc.Tokens, doc.Sections[i].Tokens...)
	}

	return doc
}

// stripMetadata drops the converter metadata block preceding the
// extracted-text marker, when present.
func stripMetadata(content string) string {
	if _, after, ok := strings.Cut(content, extractedTextMarker); ok {
		return after
	}
	return content
}

// unwrapLines repairs hard line wrapping so citations broken across line
// breaks match as single spans. A newline is replaced with a space when
// the next line continues the sentence (starts with a lowercase letter
// or a digit and is not a list item or heading).
func unwrapLines(text string) string {
	lines := strings.Split(text, "\n")
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(line)
		if i == len(lines)-1 {
			break
		}
		next := strings.TrimSpace(lines[i+1])
		if continuesLine(line, next) {
			b.WriteByte(' ')
		} else {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func continuesLine(line, next string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || next == "" {
		return false
	}
	// Headings and list items keep their own line even when the next
	// line would otherwise read as a continuation.
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
		return false
	}
	if strings.HasPrefix(next, "#") || strings.HasPrefix(next, "-") || strings.HasPrefix(next, "*") {
		return false
	}
	r := []rune(next)[0]
	return unicode.IsLower(r) || unicode.IsDigit(r)
}

// detectLanguage tags the text "sk" when enough Slovak diacritics appear,
// "en" otherwise.
func detectLanguage(text string) string {
	count := 0
	for _, r := range strings.ToLower(text) {
		if strings.ContainsRune(slovakDiacritics, r) {
			count++
			if count >= 3 {
				return "sk"
			}
		}
	}
	return "en"
}

// splitSections partitions the text at Markdown headings, tagging
// reference-list sections so downstream counting can skip them.
func splitSections(text string) []types.Section {
	var sections []types.Section
	current := types.Section{Kind: types.SectionProse}
	var body strings.Builder

	flush := func() {
		current.Text = strings.TrimSpace(body.String())
		if current.Text != "" || current.Heading != "" {
			sections = append(sections, current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			flush()
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
			current = types.Section{Kind: classifyHeading(heading), Heading: heading}
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	return sections
}

func classifyHeading(heading string) types.SectionKind {
	lower := strings.ToLower(heading)
	for _, marker := range referenceHeadings {
		if strings.Contains(lower, marker) {
			return types.SectionReferences
		}
	}
	return types.SectionProse
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibformat

import (
	"fmt"
	"strings"

	"github.com/pdiddy/citelens/pkg/types"
)

// formatAPA renders: Author, A. A., & Author, B. B. (Year). Title.
// Container, locator. Online sources append "Retrieved from URL".
func formatAPA(rec types.CitationRecord) string {
	var parts []string

	if len(rec.Authors) > 0 {
		parts = append(parts, apaAuthors(rec.Authors))
	}
	if rec.Year > 0 {
		parts = append(parts, fmt.Sprintf("(%d).", rec.Year))
	}
	if rec.Title != "" {
		parts = append(parts, ensurePeriod(rec.Title))
	}
	switch {
	case rec.Container != "" && rec.Locator != "":
		parts = append(parts, fmt.Sprintf("%s, %s.", rec.Container, strings.TrimRight(rec.Locator, ".")))
	case rec.Container != "":
		parts = append(parts, ensurePeriod(rec.Container))
	}
	if rec.URL != "" {
		parts = append(parts, "Retrieved from "+rec.URL)
	}

	if len(parts) == 0 {
		return rec.RawText
	}
	return strings.Join(parts, " ")
}

// apaAuthors formats "Last, F. M., & Last, F. M."; beyond seven authors
// the first six are kept, then an ellipsis, then the final author.
func apaAuthors(authors []string) string {
	formatted := make([]string, 0, len(authors))
	for _, a := range authors {
		formatted = append(formatted, apaSingleAuthor(a))
	}
	if len(formatted) > apaMaxAuthors {
		formatted = append(formatted[:apaMaxAuthors-1], "...", apaSingleAuthor(authors[len(authors)-1]))
	}

	switch len(formatted) {
	case 1:
		return formatted[0]
	case 2:
		return formatted[0] + ", & " + formatted[1]
	default:
		return strings.Join(formatted[:len(formatted)-1], ", ") + ", & " + formatted[len(formatted)-1]
	}
}

// apaSingleAuthor converts "First Last" to "Last, F."; names already in
// "Last, First" form keep the surname and reduce the rest to initials.
func apaSingleAuthor(author string) string {
	author = strings.TrimSpace(author)

	var last, first string
	if before, after, ok := strings.Cut(author, ","); ok {
		last, first = strings.TrimSpace(before), strings.TrimSpace(after)
	} else {
		parts := strings.Fields(author)
		if len(parts) < 2 {
			return author
		}
		last = parts[len(parts)-1]
		first = strings.Join(parts[:len(parts)-1], " ")
	}

	return last + ", " + initials(first)
}

func initials(name string) string {
	var out []string
	for _, p := range strings.Fields(name) {
		r := []rune(p)
		if len(r) == 0 {
			continue
		}
		if len(r) == 2 && r[1] == '.' {
			// Already an initial.
			out = append(out, strings.ToUpper(p))
			continue
		}
		out = append(out, strings.ToUpper(string(r[0]))+".")
	}
	return strings.Join(out, " ")
}

// formatMLA renders: Last, First[, and Second]. "Title." / Title.
// Container, Year.
func formatMLA(rec types.CitationRecord) string {
	var parts []string

	if len(rec.Authors) > 0 {
		author := mlaFirstAuthor(rec.Authors[0])
		if len(rec.Authors) > 1 {
			author += ", and " + rec.Authors[1]
		}
		parts = append(parts, ensurePeriod(author))
	}
	if rec.Title != "" {
		if rec.Style == types.StyleBook {
			parts = append(parts, ensurePeriod(rec.Title))
		} else {
			parts = append(parts, `"`+strings.TrimRight(rec.Title, ".")+`."`)
		}
	}
	if rec.Container != "" {
		parts = append(parts, rec.Container+",")
	}
	if rec.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d.", rec.Year))
	}

	if len(parts) == 0 {
		return rec.RawText
	}
	return strings.Join(parts, " ")
}

// mlaFirstAuthor inverts "First Last" to "Last, First"; names with a
// comma are assumed inverted already.
func mlaFirstAuthor(author string) string {
	author = strings.TrimSpace(author)
	if strings.Contains(author, ",") {
		return strings.TrimRight(author, ".")
	}
	parts := strings.Fields(author)
	if len(parts) < 2 {
		return author
	}
	return parts[len(parts)-1] + ", " + strings.Join(parts[:len(parts)-1], " ")
}

// formatChicago renders: Authors, Title (Container, Year).
func formatChicago(rec types.CitationRecord) string {
	var parts []string

	if len(rec.Authors) > 0 {
		parts = append(parts, strings.TrimRight(strings.Join(rec.Authors, ", "), "."))
	}
	if rec.Title != "" {
		parts = append(parts, strings.TrimRight(rec.Title, "."))
	}

	var pub []string
	if rec.Container != "" {
		pub = append(pub, rec.Container)
	}
	if rec.Year > 0 {
		pub = append(pub, fmt.Sprintf("%d", rec.Year))
	}
	if len(pub) > 0 {
		parts = append(parts, "("+strings.Join(pub, ", ")+")")
	}

	if len(parts) == 0 {
		return rec.RawText
	}
	return strings.Join(parts, ", ")
}

func ensurePeriod(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

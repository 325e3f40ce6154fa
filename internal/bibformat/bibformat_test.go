// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibformat

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/citelens/pkg/types"
)

func articleRecord() types.CitationRecord {
	return types.CitationRecord{
		Style:     types.StyleArticle,
		Authors:   []string{"Smith, J."},
		Year:      2020,
		Title:     "Ethics of AI",
		Container: "Journal of Tech Ethics",
		Locator:   "12(3), 45–67",
	}
}

func TestNewRejectsUnknownStyle(t *testing.T) {
	_, err := New("harvard")
	if !errors.Is(err, types.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewAcceptsCaseInsensitiveStyle(t *testing.T) {
	if _, err := New("APA"); err != nil {
		t.Errorf("New(APA) = %v", err)
	}
}

func TestFormatAPA(t *testing.T) {
	f, _ := New("apa")

	got := f.Format([]types.CitationRecord{articleRecord()})
	want := "Smith, J. (2020). Ethics of AI. Journal of Tech Ethics, 12(3), 45–67."
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatAPAOnlineSource(t *testing.T) {
	f, _ := New("apa")

	rec := types.CitationRecord{
		Style: types.StyleOnline,
		Title: "Etika umelej inteligencie",
		Year:  2021,
		URL:   "https://example.sk/etika",
	}
	got := f.Format([]types.CitationRecord{rec})
	if !strings.Contains(got, "Retrieved from https://example.sk/etika") {
		t.Errorf("Format = %q, want retrieval statement", got)
	}
}

func TestFormatAPAManyAuthors(t *testing.T) {
	f, _ := New("apa")

	rec := articleRecord()
	rec.Authors = nil
	for i := 0; i < 9; i++ {
		rec.Authors = append(rec.Authors, fmt.Sprintf("Author%c, %c.", 'A'+i, 'A'+i))
	}

	got := f.Format([]types.CitationRecord{rec})
	if !strings.Contains(got, "...") {
		t.Errorf("Format = %q, want ellipsis beyond seven authors", got)
	}
	if !strings.Contains(got, "AuthorA, A.") || !strings.Contains(got, "AuthorI, I.") {
		t.Errorf("Format = %q, want first and final authors kept", got)
	}
	if strings.Contains(got, "AuthorH") {
		t.Errorf("Format = %q, author eight should be elided", got)
	}
}

func TestFormatMLA(t *testing.T) {
	f, _ := New("mla")

	got := f.Format([]types.CitationRecord{articleRecord()})
	want := `Smith, J. "Ethics of AI." Journal of Tech Ethics, 2020.`
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatMLABookTitleUnquoted(t *testing.T) {
	f, _ := New("mla")

	rec := types.CitationRecord{
		Style:     types.StyleBook,
		Authors:   []string{"Doe, A."},
		Year:      2015,
		Title:     "Thinking Machines",
		Container: "Harvard Press",
	}
	got := f.Format([]types.CitationRecord{rec})
	if strings.Contains(got, `"Thinking Machines`) {
		t.Errorf("Format = %q, book titles are not quoted", got)
	}
}

func TestFormatChicagoNumbersEntries(t *testing.T) {
	f, _ := New("chicago")

	records := []types.CitationRecord{
		{Authors: []string{"Brown, T."}, Year: 2019, Title: "First Work"},
		{Authors: []string{"Adams, B."}, Year: 2018, Title: "Second Work"},
	}
	got := f.Format(records)

	lines := strings.Split(got, "\n\n")
	if len(lines) != 2 {
		t.Fatalf("got %d entries, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "1. Adams, B") {
		t.Errorf("entry 1 = %q, want numbered and sorted to Adams", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2. Brown, T") {
		t.Errorf("entry 2 = %q", lines[1])
	}
}

func TestFormatSortsWithDiacriticsFolded(t *testing.T) {
	f, _ := New("apa")

	records := []types.CitationRecord{
		{Authors: []string{"Smith, J."}, Year: 2020, Title: "Sss"},
		{Authors: []string{"Čapek, K."}, Year: 1936, Title: "Vojna s mlokmi"},
		{Authors: []string{"Brown, T."}, Year: 2019, Title: "Bbb"},
	}
	got := f.Format(records)

	brown := strings.Index(got, "Brown")
	capek := strings.Index(got, "Čapek")
	smith := strings.Index(got, "Smith")
	if !(brown < capek && capek < smith) {
		t.Errorf("order Brown < Čapek < Smith violated:\n%s", got)
	}
}

func TestSortKeyFallsBackToTitle(t *testing.T) {
	rec := types.CitationRecord{Title: "The Unattributed Work"}
	if got := sortKey(rec); got != "unattributed work" {
		t.Errorf("sortKey = %q, want leading article stripped", got)
	}
}

func TestLastName(t *testing.T) {
	tests := []struct {
		author string
		want   string
	}{
		{"Smith, J.", "Smith"},
		{"Jane Smith", "Smith"},
		{"Čapek, Karel", "Čapek"},
		{"单名", "单名"},
	}
	for _, tt := range tests {
		if got := lastName(tt.author); got != tt.want {
			t.Errorf("lastName(%q) = %q, want %q", tt.author, got, tt.want)
		}
	}
}

package tui

import (
	"testing"

	"github.com/rmandel/docfill/internal/core/models"
)

func testPlaceholders() []models.Placeholder {
	return []models.Placeholder{
		{ID: "p1", MatchText: "[Client Name]", IsFilled: true, Value: "Acme Corp", EstimatedPageNumber: 1, ParagraphIndex: 2},
		{ID: "p2", MatchText: "[Effective Date]", IsFilled: false, EstimatedPageNumber: 1, ParagraphIndex: 5},
		{ID: "p3", MatchText: "[Payment Terms]", IsFilled: false, ContextSnippet: "net thirty days", EstimatedPageNumber: 2, ParagraphIndex: 1},
	}
}

func ids(ps []models.Placeholder) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestParseStatusQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty keeps all", "", []string{"p1", "p2", "p3"}},
		{"is:filled", "is:filled", []string{"p1"}},
		{"is:unfilled", "is:unfilled", []string{"p2", "p3"}},
		{"page filter", "page:2", []string{"p3"}},
		{"free text against match", "date", []string{"p2"}},
		{"free text against value", "acme", []string{"p1"}},
		{"free text against context", "thirty", []string{"p3"}},
		{"combined", "is:unfilled page:1", []string{"p2"}},
		{"uppercase operator", "IS:FILLED", []string{"p1"}},
		{"no match", "zebra", []string{}},
		{"bad page value ignored", "page:x", []string{"p1", "p2", "p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(parseStatusQuery(tt.raw).apply(testPlaceholders()))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestStatusQuerySort(t *testing.T) {
	byStatus := ids(parseStatusQuery("sort:status").apply(testPlaceholders()))
	if byStatus[0] != "p2" || byStatus[1] != "p3" || byStatus[2] != "p1" {
		t.Errorf("sort:status order = %v, want unfilled first", byStatus)
	}

	byParagraph := ids(parseStatusQuery("sort:paragraph").apply(testPlaceholders()))
	if byParagraph[0] != "p3" || byParagraph[1] != "p1" || byParagraph[2] != "p2" {
		t.Errorf("sort:paragraph order = %v", byParagraph)
	}
}

func TestStatusQueryDoesNotMutateInput(t *testing.T) {
	in := testPlaceholders()
	parseStatusQuery("sort:paragraph").apply(in)
	if in[0].ID != "p1" {
		t.Errorf("input slice reordered, first = %s", in[0].ID)
	}
}

package tui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rmandel/docfill/internal/core/models"
)

type fillState int

const (
	anyFill fillState = iota
	onlyFilled
	onlyUnfilled
)

type sortKey int

const (
	sortNone sortKey = iota
	sortPage
	sortParagraph
	sortStatus
)

// statusQuery is a parsed status-panel filter. Supported operators:
// is:filled, is:unfilled, page:N, sort:page|paragraph|status; everything
// else matches case-insensitively against the placeholder text fields.
type statusQuery struct {
	fill  fillState
	page  int // 0 means any page
	sort  sortKey
	terms []string
}

func parseStatusQuery(raw string) statusQuery {
	q := statusQuery{}
	for _, tok := range strings.Fields(raw) {
		lower := strings.ToLower(tok)
		switch {
		case lower == "is:filled":
			q.fill = onlyFilled
		case lower == "is:unfilled":
			q.fill = onlyUnfilled
		case strings.HasPrefix(lower, "page:"):
			if n, err := strconv.Atoi(lower[len("page:"):]); err == nil && n > 0 {
				q.page = n
			}
		case strings.HasPrefix(lower, "sort:"):
			switch lower[len("sort:"):] {
			case "page":
				q.sort = sortPage
			case "paragraph":
				q.sort = sortParagraph
			case "status":
				q.sort = sortStatus
			}
		default:
			q.terms = append(q.terms, lower)
		}
	}
	return q
}

func (q statusQuery) matches(p models.Placeholder) bool {
	switch q.fill {
	case onlyFilled:
		if !p.IsFilled {
			return false
		}
	case onlyUnfilled:
		if p.IsFilled {
			return false
		}
	}
	if q.page > 0 && p.EstimatedPageNumber != q.page {
		return false
	}
	for _, term := range q.terms {
		if !strings.Contains(strings.ToLower(p.MatchText), term) &&
			!strings.Contains(strings.ToLower(p.Value), term) &&
			!strings.Contains(strings.ToLower(p.ContextSnippet), term) {
			return false
		}
	}
	return true
}

// apply filters and optionally re-orders a snapshot's placeholders. The
// input slice is never mutated; snapshot order is preserved unless a sort
// operator asks otherwise.
func (q statusQuery) apply(placeholders []models.Placeholder) []models.Placeholder {
	out := make([]models.Placeholder, 0, len(placeholders))
	for _, p := range placeholders {
		if q.matches(p) {
			out = append(out, p)
		}
	}
	switch q.sort {
	case sortPage:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EstimatedPageNumber < out[j].EstimatedPageNumber
		})
	case sortParagraph:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ParagraphIndex < out[j].ParagraphIndex
		})
	case sortStatus:
		// Unfilled first: those are the ones still needing attention.
		sort.SliceStable(out, func(i, j int) bool {
			return !out[i].IsFilled && out[j].IsFilled
		})
	}
	return out
}

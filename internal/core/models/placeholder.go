package models

import (
	"fmt"
	"math"
)

// PlaceholderSummary is the server-computed rollup for one snapshot.
type PlaceholderSummary struct {
	Total             int     `json:"total_placeholders"`
	FilledCount       int     `json:"filled_count"`
	UnfilledCount     int     `json:"unfilled_count"`
	CompletionPercent float64 `json:"completion_percentage"`
}

// Placeholder is a single named blank in the document.
type Placeholder struct {
	ID                  string `json:"unique_id"`
	MatchText           string `json:"match"`
	MatchType           string `json:"match_type"`
	IsFilled            bool   `json:"is_filled"`
	Value               string `json:"value"`
	ContextForModel     string `json:"llm_context"`
	ContextSnippet      string `json:"context_snippet"`
	SentenceWithMatch   string `json:"sentence_with_match"`
	ParagraphIndex      int    `json:"paragraph_index"`
	EstimatedPageNumber int    `json:"estimated_page_number"`
	FillConfidence      string `json:"fill_confidence"`
}

// PlaceholderSet is the complete, authoritative placeholder list at a point
// in time. It is always replaced wholesale, never patched field-by-field.
type PlaceholderSet struct {
	Status       string             `json:"status"`
	Summary      PlaceholderSummary `json:"summary"`
	Placeholders []Placeholder      `json:"placeholders"`
}

// Validate checks the summary arithmetic against the placeholder list.
func (s *PlaceholderSet) Validate() error {
	n := len(s.Placeholders)
	if s.Summary.Total != n {
		return fmt.Errorf("summary total %d != %d placeholders", s.Summary.Total, n)
	}
	if s.Summary.FilledCount+s.Summary.UnfilledCount != s.Summary.Total {
		return fmt.Errorf("filled %d + unfilled %d != total %d",
			s.Summary.FilledCount, s.Summary.UnfilledCount, s.Summary.Total)
	}
	want := 0.0
	if s.Summary.Total > 0 {
		want = 100 * float64(s.Summary.FilledCount) / float64(s.Summary.Total)
	}
	if math.Abs(s.Summary.CompletionPercent-want) > 1e-6 {
		return fmt.Errorf("completion %.4f != expected %.4f", s.Summary.CompletionPercent, want)
	}
	return nil
}

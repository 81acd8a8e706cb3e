package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmandel/docfill/internal/core/models"
)

func TestMessageTextPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		question string
		message  string
		want     string
	}{
		{"question wins over message", "What is the company name?", "updated", "What is the company name?"},
		{"message when no question", "", "Two fields updated", "Two fields updated"},
		{"fallback when both empty", "", "", fallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messageText(tt.question, tt.message))
		})
	}
}

func TestNormalizeFillAliases(t *testing.T) {
	want := models.Fill{PlaceholderID: "p1", FieldLabel: "Name", Value: "Acme"}

	a := normalizeFill(wireFill{PlaceholderID: "p1", Match: "Name", Value: "Acme"})
	b := normalizeFill(wireFill{UniqueID: "p1", Field: "Name", Value: "Acme"})

	assert.Equal(t, want, a)
	assert.Equal(t, want, b)
	assert.Equal(t, a, b, "both alias shapes must normalize identically")
}

func TestNormalizeFillPrefersPrimaryNames(t *testing.T) {
	got := normalizeFill(wireFill{
		PlaceholderID: "p1", UniqueID: "other",
		Match: "Name", Field: "other",
		Value: "Acme",
	})
	assert.Equal(t, models.Fill{PlaceholderID: "p1", FieldLabel: "Name", Value: "Acme"}, got)
}

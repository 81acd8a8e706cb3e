package api

import "github.com/rmandel/docfill/internal/core/models"

// fallbackMessage stands in when a chat response carries neither a question
// nor a message. Some server payloads report fills with no text at all.
const fallbackMessage = "Placeholders updated"

// messageText resolves the assistant text for a chat response.
// Precedence: question, then message, then the static fallback.
func messageText(question, message string) string {
	if question != "" {
		return question
	}
	if message != "" {
		return message
	}
	return fallbackMessage
}

// normalizeFill maps a wire fill to the canonical form. The identifier
// arrives as placeholder_id or unique_id, the label as match or field,
// depending on server version; the first present name wins.
func normalizeFill(f wireFill) models.Fill {
	id := f.PlaceholderID
	if id == "" {
		id = f.UniqueID
	}
	label := f.Match
	if label == "" {
		label = f.Field
	}
	return models.Fill{
		PlaceholderID: id,
		FieldLabel:    label,
		Value:         f.Value,
	}
}

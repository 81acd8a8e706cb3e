// Package welcome renders the assistant's opening message after an upload.
package welcome

import (
	"fmt"

	"github.com/cbroglie/mustache"
)

// Render fills the welcome template with the uploaded document's name and
// placeholder count. Template data: {{file_name}}, {{total_placeholders}},
// {{field_word}} ("field" or "fields").
func Render(template, fileName string, totalPlaceholders int) string {
	fieldWord := "fields"
	if totalPlaceholders == 1 {
		fieldWord = "field"
	}

	out, err := mustache.Render(template, map[string]interface{}{
		"file_name":          fileName,
		"total_placeholders": totalPlaceholders,
		"field_word":         fieldWord,
	})
	if err != nil {
		// Fall back to a plain message if a custom template is broken.
		return fmt.Sprintf("Uploaded %q. %d %s to fill.", fileName, totalPlaceholders, fieldWord)
	}
	return out
}

package notes

import (
	"fmt"

	"github.com/quirelabs/quire/internal/export"
)

// ExportNote renders a note in the given format ("md", "json", "html").
func (m *Manager) ExportNote(noteID int, format string) (string, error) {
	n, err := m.Note(noteID)
	if err != nil {
		return "", err
	}
	tags := m.tagNames(n)
	switch format {
	case "md", "markdown":
		return export.ToMarkdown(n, tags), nil
	case "json":
		data, err := export.ToJSON(n, tags)
		if err != nil {
			return "", fmt.Errorf("note %d: export json: %w", noteID, err)
		}
		return string(data), nil
	case "html":
		return export.ToHTML(n, tags), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

// Package export renders a note's fields as Markdown, JSON, or HTML.
// Exporters read the note and its resolved tag names; they carry no tree
// or ownership logic.
package export

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/quirelabs/quire/internal/models"
)

// ToMarkdown renders a note as a standalone Markdown document.
func ToMarkdown(n *models.Note, tagNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", n.Title)
	if len(tagNames) > 0 {
		fmt.Fprintf(&b, "_Tags: %s_\n\n", strings.Join(tagNames, ", "))
	}
	b.WriteString(n.Content)
	if !strings.HasSuffix(n.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

type jsonNote struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
	WordCount int       `json:"word_count"`
	CharCount int       `json:"char_count"`
	Encrypted bool      `json:"encrypted,omitempty"`
}

// ToJSON renders a note as an indented JSON document.
func ToJSON(n *models.Note, tagNames []string) ([]byte, error) {
	if tagNames == nil {
		tagNames = []string{}
	}
	out := jsonNote{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tagNames,
		Created:   n.Created,
		Modified:  n.Modified,
		WordCount: n.WordCount,
		CharCount: n.CharCount,
		Encrypted: n.Encrypted,
	}
	return json.MarshalIndent(out, "", "  ")
}

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	boldRe    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.+?)\*`)
	codeRe    = regexp.MustCompile("`([^`]+)`")
)

// ToHTML converts the note's Markdown-ish content to a minimal HTML
// document: headings, bold, italic, inline code, and paragraphs.
func ToHTML(n *models.Note, tagNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><title>%s</title></head><body>\n", html.EscapeString(n.Title))
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(n.Title))
	if len(tagNames) > 0 {
		escaped := make([]string, len(tagNames))
		for i, t := range tagNames {
			escaped[i] = html.EscapeString(t)
		}
		fmt.Fprintf(&b, "<p><em>Tags: %s</em></p>\n", strings.Join(escaped, ", "))
	}

	inParagraph := false
	closeParagraph := func() {
		if inParagraph {
			b.WriteString("</p>\n")
			inParagraph = false
		}
	}
	for _, line := range strings.Split(n.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			closeParagraph()
			continue
		}
		if m := headingRe.FindStringSubmatch(trimmed); m != nil {
			closeParagraph()
			level := len(m[1])
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", level, inline(m[2]), level)
			continue
		}
		if !inParagraph {
			b.WriteString("<p>")
			inParagraph = true
		} else {
			b.WriteString(" ")
		}
		b.WriteString(inline(trimmed))
	}
	closeParagraph()
	b.WriteString("</body></html>\n")
	return b.String()
}

func inline(s string) string {
	s = html.EscapeString(s)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = codeRe.ReplaceAllString(s, "<code>$1</code>")
	return s
}

// Package notefile encodes a note as a file: YAML frontmatter between ---
// fences, a blank line, then the raw content body. Encode followed by
// Decode reconstructs an equivalent note. Ids are process-scoped and are
// deliberately not persisted.
package notefile

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quirelabs/quire/internal/apperr"
	"github.com/quirelabs/quire/internal/models"
)

const fence = "---"

type frontmatter struct {
	Title       string      `yaml:"title"`
	Tags        []string    `yaml:"tags,omitempty"`
	Created     time.Time   `yaml:"created"`
	Modified    time.Time   `yaml:"modified"`
	Encrypted   bool        `yaml:"encrypted,omitempty"`
	Color       *colorLabel `yaml:"color,omitempty"`
	Attachments []string    `yaml:"attachments,omitempty"`
	Reminders   []reminder  `yaml:"reminders,omitempty"`
}

type colorLabel struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

type reminder struct {
	Due         time.Time `yaml:"due"`
	Description string    `yaml:"description"`
	Done        bool      `yaml:"done,omitempty"`
}

// Decoded holds the fields reconstructed from a note file. The caller
// assigns a fresh id and resolves tag names against the tag table.
type Decoded struct {
	Title       string
	Tags        []string
	Created     time.Time
	Modified    time.Time
	Encrypted   bool
	Color       *models.ColorLabel
	Attachments []string
	Reminders   []models.Reminder
	Body        string
}

// Encode serializes a note and its resolved tag names into file form.
func Encode(n *models.Note, tagNames []string) ([]byte, error) {
	fm := frontmatter{
		Title:       n.Title,
		Tags:        tagNames,
		Created:     n.Created,
		Modified:    n.Modified,
		Encrypted:   n.Encrypted,
		Attachments: n.Attachments,
	}
	if n.Color != nil {
		fm.Color = &colorLabel{Name: n.Color.Name, Hex: n.Color.Hex}
	}
	for _, r := range n.Reminders {
		fm.Reminders = append(fm.Reminders, reminder{Due: r.Due, Description: r.Description, Done: r.Done})
	}

	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&fm); err != nil {
		return nil, fmt.Errorf("notefile: encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("notefile: close encoder: %w", err)
	}
	buf.WriteString(fence + "\n\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// Decode parses file bytes back into note fields. Malformed input is
// reported as apperr.ErrParse so startup scans can skip the file.
func Decode(data []byte) (*Decoded, error) {
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(fence+"\n")) {
		return nil, fmt.Errorf("%w: missing frontmatter fence", apperr.ErrParse)
	}
	rest := trimmed[len(fence)+1:]
	idx := bytes.Index(rest, []byte("\n"+fence))
	if idx < 0 {
		// A fence at the very start is also valid for an empty header.
		if !bytes.HasPrefix(rest, []byte(fence)) {
			return nil, fmt.Errorf("%w: unterminated frontmatter", apperr.ErrParse)
		}
		idx = -1
	}

	var yamlBlock, after []byte
	if idx >= 0 {
		yamlBlock = rest[:idx+1]
		after = rest[idx+1+len(fence):]
	} else {
		after = rest[len(fence):]
	}

	var fm frontmatter
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrParse, err)
	}

	body := string(after)
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")

	d := &Decoded{
		Title:       fm.Title,
		Tags:        fm.Tags,
		Created:     fm.Created,
		Modified:    fm.Modified,
		Encrypted:   fm.Encrypted,
		Attachments: fm.Attachments,
		Body:        body,
	}
	if fm.Color != nil {
		d.Color = &models.ColorLabel{Name: fm.Color.Name, Hex: fm.Color.Hex}
	}
	for _, r := range fm.Reminders {
		d.Reminders = append(d.Reminders, models.Reminder{Due: r.Due, Description: r.Description, Done: r.Done})
	}
	return d, nil
}

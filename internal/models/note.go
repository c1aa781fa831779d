// Package models defines the domain types for Quire.
package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quirelabs/quire/internal/apperr"
)

// NoParent marks an entity that has no parent folder: the two tree roots,
// and the OriginalParent field of anything that is not in the trash.
const NoParent = -1

// Version is an immutable snapshot of a note's content, captured at the
// moment the content was about to be overwritten.
type Version struct {
	Timestamp time.Time
	Content   string
}

// Reminder is a dated to-do attached to a note.
type Reminder struct {
	Due         time.Time
	Description string
	Done        bool
}

// ColorLabel is a named display color referenced, not owned, by notes.
type ColorLabel struct {
	Name string
	Hex  string
}

// Note is a single note. TagIDs reference entries in the manager's tag
// table; the note never owns a tag. WordCount and CharCount are derived
// from Content and recomputed synchronously on every content write.
type Note struct {
	ID             int
	Title          string
	Content        string
	Created        time.Time
	Modified       time.Time
	TagIDs         []int
	Versions       []Version
	Attachments    []string
	Reminders      []Reminder
	Color          *ColorLabel
	Trashed        bool
	OriginalParent int
	Encrypted      bool
	WordCount      int
	CharCount      int
}

// NewNote creates a note with a fresh id and both timestamps set to now.
func NewNote(id int, title, content string) *Note {
	now := time.Now()
	n := &Note{
		ID:             id,
		Title:          title,
		Content:        content,
		Created:        now,
		Modified:       now,
		OriginalParent: NoParent,
	}
	n.recount()
	return n
}

// SetTitle renames the note and bumps the modification timestamp.
func (n *Note) SetTitle(title string) {
	n.Title = title
	n.Modified = time.Now()
}

// SetContent overwrites the content. The pre-edit content is pushed onto
// the version history first, on every overwrite including the first.
func (n *Note) SetContent(content string) {
	n.Versions = append(n.Versions, Version{Timestamp: time.Now(), Content: n.Content})
	n.Content = content
	n.Modified = time.Now()
	n.recount()
}

// OverwriteContent replaces the content without recording a version
// snapshot. Used by the cipher, which transforms rather than edits.
func (n *Note) OverwriteContent(content string) {
	n.Content = content
	n.Modified = time.Now()
	n.recount()
}

// Revert sets the content to the snapshot at index. The pre-revert content
// is itself snapshotted first, so revert is symmetric with edit. An index
// beyond the history length fails and leaves the note untouched.
func (n *Note) Revert(index int) error {
	if index < 0 || index >= len(n.Versions) {
		return apperr.ErrVersionOutOfRange
	}
	target := n.Versions[index].Content
	n.Versions = append(n.Versions, Version{Timestamp: time.Now(), Content: n.Content})
	n.Content = target
	n.Modified = time.Now()
	n.recount()
	return nil
}

// HasTag reports whether the note references the given tag id.
func (n *Note) HasTag(tagID int) bool {
	for _, id := range n.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// AddTag attaches a tag reference. Adding a tag twice is a no-op.
func (n *Note) AddTag(tagID int) {
	if !n.HasTag(tagID) {
		n.TagIDs = append(n.TagIDs, tagID)
	}
}

// RemoveTag detaches a tag reference and reports whether it was present.
func (n *Note) RemoveTag(tagID int) bool {
	for i, id := range n.TagIDs {
		if id == tagID {
			n.TagIDs = append(n.TagIDs[:i], n.TagIDs[i+1:]...)
			return true
		}
	}
	return false
}

// AddAttachment records a file path attachment. Duplicates are ignored.
func (n *Note) AddAttachment(path string) {
	for _, a := range n.Attachments {
		if a == path {
			return
		}
	}
	n.Attachments = append(n.Attachments, path)
}

// RemoveAttachment drops an attachment path and reports whether it existed.
func (n *Note) RemoveAttachment(path string) bool {
	for i, a := range n.Attachments {
		if a == path {
			n.Attachments = append(n.Attachments[:i], n.Attachments[i+1:]...)
			return true
		}
	}
	return false
}

func (n *Note) recount() {
	n.WordCount = len(strings.Fields(n.Content))
	n.CharCount = utf8.RuneCountInString(n.Content)
}

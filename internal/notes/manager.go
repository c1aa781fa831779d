// Package notes implements the core of Quire: the two ownership trees
// (active and trash), the flat id index over them, tag and version
// bookkeeping, search, and the disk mirror that keeps a directory
// hierarchy in step with the trees.
//
// A Manager is built for one application session and assumes a single
// caller. Surfaces that may see concurrent requests must serialize every
// operation through one coarse lock around the whole manager; multi-step
// operations (recursive move, delete) need a stable tree.
package notes

import (
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/quirelabs/quire/internal/apperr"
	"github.com/quirelabs/quire/internal/models"
)

// Sink receives fire-and-forget audit events. Implementations must never
// return a failure into the core.
type Sink interface {
	Log(level, message string)
}

// NopSink discards audit events.
type NopSink struct{}

// Log implements Sink.
func (NopSink) Log(string, string) {}

// Manager owns the active and trash trees, the id index, the tag table,
// and the id allocator for one session.
type Manager struct {
	active  *models.Folder
	trash   *models.Folder
	current *models.Folder

	notes      map[int]*models.Note
	folders    map[int]*models.Folder
	noteParent map[int]int // note id -> owning folder id

	tags   *TagTable
	ids    *Allocator
	mirror *Mirror
	logger *slog.Logger
	audit  Sink
}

// New creates a manager with empty trees. Call InitFromFS to rebuild the
// trees from an existing directory hierarchy.
func New(mirror *Mirror, logger *slog.Logger, audit Sink) *Manager {
	if audit == nil {
		audit = NopSink{}
	}
	m := &Manager{
		notes:      make(map[int]*models.Note),
		folders:    make(map[int]*models.Folder),
		noteParent: make(map[int]int),
		tags:       NewTagTable(),
		ids:        NewAllocator(),
		mirror:     mirror,
		logger:     logger,
		audit:      audit,
	}
	m.active = models.NewFolder(m.ids.Next(KindFolder), "root", models.NoParent)
	m.trash = models.NewFolder(m.ids.Next(KindFolder), "trash", models.NoParent)
	m.trash.Trashed = true
	m.folders[m.active.ID] = m.active
	m.folders[m.trash.ID] = m.trash
	m.current = m.active
	return m
}

// ActiveRoot returns the id of the active tree root.
func (m *Manager) ActiveRoot() int { return m.active.ID }

// TrashRoot returns the id of the trash tree root.
func (m *Manager) TrashRoot() int { return m.trash.ID }

// Note returns the note with the given id from the id index.
func (m *Manager) Note(id int) (*models.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %d: %w", id, apperr.ErrNotFound)
	}
	return n, nil
}

// Folder returns the folder with the given id from the id index.
func (m *Manager) Folder(id int) (*models.Folder, error) {
	f, ok := m.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, apperr.ErrNotFound)
	}
	return f, nil
}

// NoteFolder returns the id of the folder that currently owns the note.
func (m *Manager) NoteFolder(noteID int) (int, error) {
	if _, err := m.Note(noteID); err != nil {
		return 0, err
	}
	return m.noteParent[noteID], nil
}

// ListContents returns a folder's child notes and child folders in
// insertion order.
func (m *Manager) ListContents(folderID int) ([]*models.Note, []*models.Folder, error) {
	f, err := m.Folder(folderID)
	if err != nil {
		return nil, nil, err
	}
	return f.Notes, f.Subfolders, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]+`)

// fileName derives the on-disk name of a note's file. The id suffix keeps
// names unique within a directory; the title itself carries no uniqueness
// constraint. The authoritative title lives in the file header.
func fileName(n *models.Note) string {
	slug := strings.ToLower(n.Title)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "note"
	}
	return fmt.Sprintf("%s-%d.md", slug, n.ID)
}

// folderRel returns a folder's path relative to the root of its tree.
// The roots themselves map to the base directories, i.e. "".
func (m *Manager) folderRel(f *models.Folder) string {
	var segs []string
	for cur := f; !cur.IsRoot(); cur = m.folders[cur.Parent] {
		segs = append(segs, cur.Name)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return path.Join(segs...)
}

// noteRel returns a note's file path relative to the root of its tree.
func (m *Manager) noteRel(n *models.Note) string {
	parent := m.folders[m.noteParent[n.ID]]
	return path.Join(m.folderRel(parent), fileName(n))
}

// tagNames resolves a note's tag references through the tag table.
func (m *Manager) tagNames(n *models.Note) []string {
	var names []string
	for _, id := range n.TagIDs {
		if t := m.tags.ByID(id); t != nil {
			names = append(names, t.Name)
		}
	}
	return names
}

// saveNote rewrites a note's mirrored file in place.
func (m *Manager) saveNote(n *models.Note) error {
	return m.mirror.WriteNote(n.Trashed, m.noteRel(n), n, m.tagNames(n))
}

func slogErr(err error) slog.Attr {
	return slog.String("error", err.Error())
}

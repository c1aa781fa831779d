package notes

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quirelabs/quire/internal/models"
	"github.com/quirelabs/quire/internal/notefile"
)

// InitFromFS rebuilds both trees from the mirrored directory hierarchies
// and re-registers every reconstructed entity in the id index. Empty
// directories become empty folders. A file that fails to parse is logged
// and skipped; the scan always continues.
//
// Ids are process-scoped, so reconstructed entities get fresh ids and
// trashed items come back without an original parent: restoring them
// after a restart reports ErrOriginalParentGone.
func (m *Manager) InitFromFS() error {
	if err := m.loadTree(m.mirror.DataRoot(), m.active, false); err != nil {
		return fmt.Errorf("scan active tree: %w", err)
	}
	if err := m.loadTree(m.mirror.TrashDir(), m.trash, true); err != nil {
		return fmt.Errorf("scan trash tree: %w", err)
	}
	m.audit.Log("info", fmt.Sprintf("loaded %d notes, %d folders from disk", len(m.notes), len(m.folders)-2))
	return nil
}

func (m *Manager) loadTree(rootAbs string, root *models.Folder, trashed bool) error {
	dirs := map[string]*models.Folder{rootAbs: root}

	return filepath.WalkDir(rootAbs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == rootAbs {
			return nil
		}
		parent := dirs[filepath.Dir(p)]
		if parent == nil {
			return nil
		}

		if d.IsDir() {
			f := models.NewFolder(m.ids.Next(KindFolder), d.Name(), parent.ID)
			f.Trashed = trashed
			parent.AddSubfolder(f)
			m.folders[f.ID] = f
			dirs[p] = f
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			m.logger.Warn("scan: read failed", slog.String("path", p), slogErr(readErr))
			return nil
		}
		dec, decErr := notefile.Decode(data)
		if decErr != nil {
			m.logger.Warn("scan: skipping unparsable note", slog.String("path", p), slogErr(decErr))
			m.audit.Log("warning", fmt.Sprintf("skipped unparsable note file: %s", p))
			return nil
		}

		n := m.noteFromDecoded(dec, trashed)
		parent.AddNote(n)
		m.notes[n.ID] = n
		m.noteParent[n.ID] = parent.ID
		return nil
	})
}

func (m *Manager) noteFromDecoded(dec *notefile.Decoded, trashed bool) *models.Note {
	n := models.NewNote(m.ids.Next(KindNote), dec.Title, dec.Body)
	if !dec.Created.IsZero() {
		n.Created = dec.Created
	}
	if !dec.Modified.IsZero() {
		n.Modified = dec.Modified
	}
	n.Trashed = trashed
	n.Encrypted = dec.Encrypted
	n.Color = dec.Color
	n.Attachments = dec.Attachments
	n.Reminders = dec.Reminders
	for _, name := range dec.Tags {
		t := m.tags.ResolveOrCreate(name, m.ids)
		n.AddTag(t.ID)
	}
	return n
}

// RefreshNoteFromDisk reconciles one active note with the file at rel
// (relative to the data root) after an external edit. Events caused by
// the mirror's own writes are ignored; so are files the manager does not
// know about.
func (m *Manager) RefreshNoteFromDisk(rel string, data []byte) {
	if m.mirror.OwnWrite(rel, data) {
		return
	}
	n := m.activeNoteByRel(rel)
	if n == nil {
		m.logger.Debug("refresh: unknown file changed", slog.String("path", rel))
		return
	}
	dec, err := notefile.Decode(data)
	if err != nil {
		m.logger.Warn("refresh: unparsable external edit", slog.String("path", rel), slogErr(err))
		return
	}

	n.Title = dec.Title
	n.OverwriteContent(dec.Body)
	if !dec.Modified.IsZero() {
		n.Modified = dec.Modified
	}
	n.TagIDs = nil
	for _, name := range dec.Tags {
		t := m.tags.ResolveOrCreate(name, m.ids)
		n.AddTag(t.ID)
	}
	// A changed title changes the derived file name; relocate the file so
	// the path on disk keeps matching the tree, as RenameNote does.
	if newRel := m.noteRel(n); newRel != rel {
		if err := m.mirror.MoveNote(false, rel, newRel); err != nil {
			m.logger.Warn("refresh: relocate retitled note failed", slog.String("path", rel), slogErr(err))
		}
	}
	m.logger.Info("refreshed note from external edit", slog.String("path", rel), slog.Int("note", n.ID))
	m.audit.Log("info", fmt.Sprintf("note %d refreshed from external edit", n.ID))
}

func (m *Manager) activeNoteByRel(rel string) *models.Note {
	for _, n := range m.notes {
		if n.Trashed {
			continue
		}
		if m.noteRel(n) == rel {
			return n
		}
	}
	return nil
}

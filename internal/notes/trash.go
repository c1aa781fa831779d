package notes

import (
	"fmt"

	"github.com/quirelabs/quire/internal/apperr"
	"github.com/quirelabs/quire/internal/models"
)

// TrashContents returns the notes and folders sitting directly under the
// trash root, in insertion order. Descendants of a trashed folder are
// reachable through it, not listed here.
func (m *Manager) TrashContents() ([]*models.Note, []*models.Folder) {
	return m.trash.Notes, m.trash.Subfolders
}

// RestoreItem moves a trashed note or folder back under its recorded
// original parent. If that parent was purged in the meantime the restore
// fails with ErrOriginalParentGone and the item stays in the trash.
func (m *Manager) RestoreItem(id int, isNote bool) error {
	if isNote {
		return m.restoreNote(id)
	}
	return m.restoreFolder(id)
}

func (m *Manager) restoreNote(id int) error {
	n, err := m.Note(id)
	if err != nil {
		return err
	}
	if !n.Trashed || m.noteParent[id] != m.trash.ID {
		return fmt.Errorf("note %d is not in the trash: %w", id, apperr.ErrNotFound)
	}
	parent, ok := m.folders[n.OriginalParent]
	if !ok || parent.Trashed {
		return fmt.Errorf("note %d: %w", id, apperr.ErrOriginalParentGone)
	}

	oldRel := m.noteRel(n)
	m.trash.RemoveNote(id)
	n.Trashed = false
	n.OriginalParent = models.NoParent
	parent.AddNote(n)
	m.noteParent[id] = parent.ID

	m.audit.Log("info", fmt.Sprintf("note %d restored under %d", id, parent.ID))
	if err := m.mirror.Restore(oldRel, m.noteRel(n)); err != nil {
		m.logger.Warn("mirror note restore failed", slogErr(err))
		return err
	}
	return nil
}

func (m *Manager) restoreFolder(id int) error {
	f, err := m.Folder(id)
	if err != nil {
		return err
	}
	if !f.Trashed || f.Parent != m.trash.ID || f.IsRoot() {
		return fmt.Errorf("folder %d is not in the trash: %w", id, apperr.ErrNotFound)
	}
	parent, ok := m.folders[f.OriginalParent]
	if !ok || parent.Trashed {
		return fmt.Errorf("folder %d: %w", id, apperr.ErrOriginalParentGone)
	}
	// Restoring must not break sibling-name uniqueness in the target.
	if parent.FindSubfolderByName(f.Name) != nil {
		return fmt.Errorf("folder %q in restore target: %w", f.Name, apperr.ErrDuplicateName)
	}

	oldRel := m.folderRel(f)
	m.trash.RemoveSubfolder(id)
	f.OriginalParent = models.NoParent
	f.Parent = parent.ID
	parent.AddSubfolder(f)
	m.setTrashed(f, false)

	m.audit.Log("info", fmt.Sprintf("folder %d restored under %d", id, parent.ID))
	if err := m.mirror.Restore(oldRel, m.folderRel(f)); err != nil {
		m.logger.Warn("mirror folder restore failed", slogErr(err))
		return err
	}
	return nil
}

// EmptyTrash permanently purges everything under the trash root,
// deepest-first, removing every purged id from the id index and every
// mirrored file from the trash directory.
func (m *Manager) EmptyTrash() error {
	var firstErr error

	for _, n := range append([]*models.Note(nil), m.trash.Notes...) {
		if err := m.DeleteNote(n.ID, true); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range append([]*models.Folder(nil), m.trash.Subfolders...) {
		if err := m.purgeFolder(f); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	m.audit.Log("info", "trash emptied")
	return firstErr
}

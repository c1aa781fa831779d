package notes

import (
	"fmt"

	"github.com/quirelabs/quire/internal/apperr"
	"github.com/quirelabs/quire/internal/models"
)

// CreateFolder creates a folder under parentID. The name must be unique
// among the parent's direct children.
//
// As with every mutating operation: the tree is changed first, then the
// id index, then the disk mirror. A mirroring failure is returned to the
// caller but the in-memory mutation is not rolled back.
func (m *Manager) CreateFolder(parentID int, name string) (int, error) {
	parent, err := m.Folder(parentID)
	if err != nil {
		return 0, err
	}
	if parent.FindSubfolderByName(name) != nil {
		return 0, fmt.Errorf("folder %q under %q: %w", name, parent.Name, apperr.ErrDuplicateName)
	}

	f := models.NewFolder(m.ids.Next(KindFolder), name, parentID)
	f.Trashed = parent.Trashed
	parent.AddSubfolder(f)
	m.folders[f.ID] = f

	m.audit.Log("info", fmt.Sprintf("folder %d created: %s", f.ID, name))
	if err := m.mirror.CreateFolder(f.Trashed, m.folderRel(f)); err != nil {
		m.logger.Warn("mirror folder create failed", slogErr(err))
		return f.ID, err
	}
	return f.ID, nil
}

// MoveFolder reattaches a folder under a new parent. The move is rejected
// with ErrCycle when the new parent is the folder itself or any of its
// descendants; walking the parent chain from the new parent to the root
// also catches attempts to move a root, since a root is an ancestor of
// every candidate parent in its tree.
func (m *Manager) MoveFolder(folderID, newParentID int) error {
	f, err := m.Folder(folderID)
	if err != nil {
		return err
	}
	newParent, err := m.Folder(newParentID)
	if err != nil {
		return err
	}
	if f.Trashed || newParent.Trashed {
		return fmt.Errorf("folder %d: trashed items move via restore: %w", folderID, apperr.ErrNotFound)
	}
	for cur := newParent; ; cur = m.folders[cur.Parent] {
		if cur.ID == folderID {
			return fmt.Errorf("folder %d into %d: %w", folderID, newParentID, apperr.ErrCycle)
		}
		if cur.IsRoot() {
			break
		}
	}
	if newParent.FindSubfolderByName(f.Name) != nil {
		return fmt.Errorf("folder %q in new parent: %w", f.Name, apperr.ErrDuplicateName)
	}

	oldRel := m.folderRel(f)
	m.folders[f.Parent].RemoveSubfolder(f.ID)
	f.Parent = newParentID
	newParent.AddSubfolder(f)

	m.audit.Log("info", fmt.Sprintf("folder %d moved under %d", folderID, newParentID))
	if err := m.mirror.MoveFolder(false, oldRel, m.folderRel(f)); err != nil {
		m.logger.Warn("mirror folder move failed", slogErr(err))
		return err
	}
	return nil
}

// RenameFolder renames a folder, enforcing sibling-name uniqueness.
// Descendant paths follow implicitly because paths are derived from the
// tree; on disk the single directory rename relocates the whole subtree.
func (m *Manager) RenameFolder(folderID int, newName string) error {
	f, err := m.Folder(folderID)
	if err != nil {
		return err
	}
	if f.IsRoot() {
		return fmt.Errorf("folder %d is a root: %w", folderID, apperr.ErrNotFound)
	}
	parent := m.folders[f.Parent]
	if sib := parent.FindSubfolderByName(newName); sib != nil && sib.ID != folderID {
		return fmt.Errorf("folder %q under %q: %w", newName, parent.Name, apperr.ErrDuplicateName)
	}

	oldRel := m.folderRel(f)
	f.Name = newName

	m.audit.Log("info", fmt.Sprintf("folder %d renamed to %s", folderID, newName))
	if err := m.mirror.MoveFolder(f.Trashed, oldRel, m.folderRel(f)); err != nil {
		m.logger.Warn("mirror folder rename failed", slogErr(err))
		return err
	}
	return nil
}

// DeleteFolder removes a folder. Non-permanent deletion relocates the
// folder and its whole subtree into the trash tree: the folder records
// its original parent, every descendant gets the trashed flag but keeps
// its relative position. Permanent deletion (or deleting an already
// trashed folder) purges the subtree from the id index and from disk.
func (m *Manager) DeleteFolder(folderID int, permanent bool) error {
	f, err := m.Folder(folderID)
	if err != nil {
		return err
	}
	if f.IsRoot() {
		return fmt.Errorf("folder %d is a root: %w", folderID, apperr.ErrNotFound)
	}

	if permanent || f.Trashed {
		return m.purgeFolder(f)
	}

	oldRel := m.folderRel(f)
	parentID := f.Parent
	m.folders[parentID].RemoveSubfolder(f.ID)
	// Sibling names stay unique under the trash root too. A second folder
	// arriving under the same name gets its id appended, the way note
	// file names do; each pass lengthens the name, so the loop terminates.
	for m.trash.FindSubfolderByName(f.Name) != nil {
		f.Name = fmt.Sprintf("%s-%d", f.Name, f.ID)
	}
	f.OriginalParent = parentID
	f.Parent = m.trash.ID
	m.trash.AddSubfolder(f)
	m.setTrashed(f, true)
	m.leaveDeletedSubtree(f)

	m.audit.Log("info", fmt.Sprintf("folder %d trashed (was under %d)", folderID, parentID))
	if err := m.mirror.Trash(oldRel, m.folderRel(f)); err != nil {
		m.logger.Warn("mirror folder trash failed", slogErr(err))
		return err
	}
	return nil
}

// purgeFolder removes a subtree from its parent, the id index, and disk.
func (m *Manager) purgeFolder(f *models.Folder) error {
	rel := m.folderRel(f)
	trashed := f.Trashed
	m.folders[f.Parent].RemoveSubfolder(f.ID)
	m.unindexSubtree(f)
	m.leaveDeletedSubtree(f)

	m.audit.Log("info", fmt.Sprintf("folder %d purged", f.ID))
	if err := m.mirror.RemoveFolder(trashed, rel); err != nil {
		m.logger.Warn("mirror folder purge failed", slogErr(err))
		return err
	}
	return nil
}

// unindexSubtree drops a folder and everything beneath it from the id
// index, deepest first.
func (m *Manager) unindexSubtree(f *models.Folder) {
	for _, sub := range f.Subfolders {
		m.unindexSubtree(sub)
	}
	for _, n := range f.Notes {
		delete(m.notes, n.ID)
		delete(m.noteParent, n.ID)
	}
	delete(m.folders, f.ID)
}

// setTrashed flips the trashed flag across a subtree. Only the subtree
// root records an original parent; descendants keep their position
// relative to it.
func (m *Manager) setTrashed(f *models.Folder, trashed bool) {
	f.Trashed = trashed
	for _, n := range f.Notes {
		n.Trashed = trashed
	}
	for _, sub := range f.Subfolders {
		m.setTrashed(sub, trashed)
	}
}

// leaveDeletedSubtree resets the current folder to the active root if it
// was inside a subtree that just left the active tree.
func (m *Manager) leaveDeletedSubtree(f *models.Folder) {
	for cur := m.current; ; cur = m.folders[cur.Parent] {
		if cur == nil {
			break
		}
		if cur.ID == f.ID {
			m.current = m.active
			return
		}
		if cur.IsRoot() {
			return
		}
	}
	m.current = m.active
}

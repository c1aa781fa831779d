package notes

import (
	"fmt"

	"github.com/quirelabs/quire/internal/apperr"
	"github.com/quirelabs/quire/internal/models"
)

// CreateNote creates a note under folderID, resolving or creating each
// named tag. Titles carry no uniqueness constraint.
func (m *Manager) CreateNote(folderID int, title, content string, tagNames []string) (int, error) {
	parent, err := m.Folder(folderID)
	if err != nil {
		return 0, err
	}

	n := models.NewNote(m.ids.Next(KindNote), title, content)
	n.Trashed = parent.Trashed
	for _, name := range tagNames {
		t := m.tags.ResolveOrCreate(name, m.ids)
		n.AddTag(t.ID)
	}
	parent.AddNote(n)
	m.notes[n.ID] = n
	m.noteParent[n.ID] = folderID

	m.audit.Log("info", fmt.Sprintf("note %d created: %s", n.ID, title))
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror note create failed", slogErr(err))
		return n.ID, err
	}
	return n.ID, nil
}

// EditNote overwrites a note's content. The pre-edit content is pushed
// onto the version history before the overwrite is applied.
func (m *Manager) EditNote(noteID int, content string) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	n.SetContent(content)

	m.audit.Log("info", fmt.Sprintf("note %d edited", noteID))
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror note edit failed", slogErr(err))
		return err
	}
	return nil
}

// RenameNote retitles a note. The derived file name changes with the
// title, so the mirrored file is relocated and rewritten.
func (m *Manager) RenameNote(noteID int, newTitle string) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	oldRel := m.noteRel(n)
	n.SetTitle(newTitle)
	newRel := m.noteRel(n)

	m.audit.Log("info", fmt.Sprintf("note %d renamed to %s", noteID, newTitle))
	if oldRel != newRel {
		if err := m.mirror.MoveNote(n.Trashed, oldRel, newRel); err != nil {
			m.logger.Warn("mirror note rename failed", slogErr(err))
			return err
		}
	}
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror note rewrite failed", slogErr(err))
		return err
	}
	return nil
}

// MoveNote reattaches a note under a different active folder.
func (m *Manager) MoveNote(noteID, newFolderID int) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	dest, err := m.Folder(newFolderID)
	if err != nil {
		return err
	}
	if n.Trashed || dest.Trashed {
		return fmt.Errorf("note %d: trashed items move via restore: %w", noteID, apperr.ErrNotFound)
	}

	oldRel := m.noteRel(n)
	m.folders[m.noteParent[noteID]].RemoveNote(noteID)
	dest.AddNote(n)
	m.noteParent[noteID] = newFolderID

	m.audit.Log("info", fmt.Sprintf("note %d moved to folder %d", noteID, newFolderID))
	if err := m.mirror.MoveNote(false, oldRel, m.noteRel(n)); err != nil {
		m.logger.Warn("mirror note move failed", slogErr(err))
		return err
	}
	return nil
}

// DeleteNote removes a note. Non-permanent deletion relocates it under
// the trash root with its original parent recorded for restore.
// Permanent deletion, or deleting a note already in the trash, purges it
// from the id index and from disk.
func (m *Manager) DeleteNote(noteID int, permanent bool) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}

	if permanent || n.Trashed {
		rel := m.noteRel(n)
		trashed := n.Trashed
		m.folders[m.noteParent[noteID]].RemoveNote(noteID)
		delete(m.notes, noteID)
		delete(m.noteParent, noteID)

		m.audit.Log("info", fmt.Sprintf("note %d purged", noteID))
		if err := m.mirror.RemoveNote(trashed, rel); err != nil {
			m.logger.Warn("mirror note purge failed", slogErr(err))
			return err
		}
		return nil
	}

	oldRel := m.noteRel(n)
	parentID := m.noteParent[noteID]
	m.folders[parentID].RemoveNote(noteID)
	n.Trashed = true
	n.OriginalParent = parentID
	m.trash.AddNote(n)
	m.noteParent[noteID] = m.trash.ID

	m.audit.Log("info", fmt.Sprintf("note %d trashed (was under %d)", noteID, parentID))
	if err := m.mirror.Trash(oldRel, m.noteRel(n)); err != nil {
		m.logger.Warn("mirror note trash failed", slogErr(err))
		return err
	}
	return nil
}

// RevertNote sets a note's content to the version at index. The
// pre-revert content is snapshotted first; see models.Note.Revert.
func (m *Manager) RevertNote(noteID, index int) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	if err := n.Revert(index); err != nil {
		return fmt.Errorf("note %d: %w", noteID, err)
	}

	m.audit.Log("info", fmt.Sprintf("note %d reverted to version %d", noteID, index))
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror note revert failed", slogErr(err))
		return err
	}
	return nil
}

// SetReminder appends a reminder to a note.
func (m *Manager) SetReminder(noteID int, r models.Reminder) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	n.Reminders = append(n.Reminders, r)
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror reminder save failed", slogErr(err))
		return err
	}
	return nil
}

// SetColorLabel attaches (or clears, with nil) a note's color label.
func (m *Manager) SetColorLabel(noteID int, label *models.ColorLabel) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	n.Color = label
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror label save failed", slogErr(err))
		return err
	}
	return nil
}

// AttachFile records an attachment path on a note.
func (m *Manager) AttachFile(noteID int, path string) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	n.AddAttachment(path)
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror attachment save failed", slogErr(err))
		return err
	}
	return nil
}

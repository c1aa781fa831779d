package notes

import (
	"fmt"
	"strings"

	"github.com/quirelabs/quire/internal/apperr"
	"github.com/quirelabs/quire/internal/models"
)

// CurrentFolder returns the id of the current working folder.
func (m *Manager) CurrentFolder() int { return m.current.ID }

// CurrentPath returns the current folder's `/`-delimited path from the
// active root. The root itself is "/".
func (m *Manager) CurrentPath() string {
	return "/" + m.folderRel(m.current)
}

// FindFolderByPath resolves a `/`-delimited sequence of folder names. A
// path starting with "/" is resolved from the active root, anything else
// from the current folder. ".." climbs towards the root and stops there.
func (m *Manager) FindFolderByPath(p string) (*models.Folder, error) {
	cur := m.current
	if strings.HasPrefix(p, "/") {
		cur = m.active
	}
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if !cur.IsRoot() {
				cur = m.folders[cur.Parent]
			}
		default:
			next := cur.FindSubfolderByName(seg)
			if next == nil {
				return nil, fmt.Errorf("path %q at %q: %w", p, seg, apperr.ErrNotFound)
			}
			cur = next
		}
	}
	return cur, nil
}

// ChangeCurrentFolder resolves a path and makes it the current folder.
func (m *Manager) ChangeCurrentFolder(p string) error {
	f, err := m.FindFolderByPath(p)
	if err != nil {
		return err
	}
	m.current = f
	return nil
}

// FolderPath returns a folder's `/`-delimited path from its tree root.
func (m *Manager) FolderPath(folderID int) (string, error) {
	f, err := m.Folder(folderID)
	if err != nil {
		return "", err
	}
	return "/" + m.folderRel(f), nil
}

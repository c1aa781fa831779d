package notes

import (
	"sync"

	"github.com/quirelabs/quire/internal/checksum"
	"github.com/quirelabs/quire/internal/models"
	"github.com/quirelabs/quire/internal/notefile"
	"github.com/quirelabs/quire/internal/vault"
)

// Mirror keeps the two in-memory trees reflected on disk: the active tree
// under the data root, the trash tree under the trash root. It remembers
// the checksum of every file it writes so the watcher can distinguish
// external edits from the mirror's own writes.
type Mirror struct {
	data  *vault.FS
	trash *vault.FS

	mu      sync.RWMutex
	written map[string]string // data-root rel path -> checksum of last write
}

// NewMirror creates a mirror over the two base roots.
func NewMirror(data, trash *vault.FS) *Mirror {
	return &Mirror{data: data, trash: trash, written: make(map[string]string)}
}

// DataRoot returns the absolute path of the active base directory.
func (mi *Mirror) DataRoot() string { return mi.data.Root() }

// TrashDir returns the absolute path of the trash base directory.
func (mi *Mirror) TrashDir() string { return mi.trash.Root() }

func (mi *Mirror) fsFor(trashed bool) *vault.FS {
	if trashed {
		return mi.trash
	}
	return mi.data
}

// OwnWrite reports whether data at rel matches the mirror's last write
// there, i.e. a watcher event for it is an echo of our own save.
func (mi *Mirror) OwnWrite(rel string, data []byte) bool {
	mi.mu.RLock()
	defer mi.mu.RUnlock()
	return mi.written[rel] == checksum.Sum(data)
}

func (mi *Mirror) recordWrite(rel string, data []byte) {
	mi.mu.Lock()
	mi.written[rel] = checksum.Sum(data)
	mi.mu.Unlock()
}

func (mi *Mirror) forgetWrite(rel string) {
	mi.mu.Lock()
	delete(mi.written, rel)
	mi.mu.Unlock()
}

// CreateFolder creates the directory for a new folder.
func (mi *Mirror) CreateFolder(trashed bool, rel string) error {
	return mi.fsFor(trashed).EnsureDir(rel)
}

// MoveFolder relocates a folder directory (rename and move are the same
// operation on disk; descendant file paths follow automatically).
func (mi *Mirror) MoveFolder(trashed bool, oldRel, newRel string) error {
	return mi.fsFor(trashed).Rename(oldRel, newRel)
}

// WriteNote serializes the note and writes its file.
func (mi *Mirror) WriteNote(trashed bool, rel string, n *models.Note, tagNames []string) error {
	data, err := notefile.Encode(n, tagNames)
	if err != nil {
		return err
	}
	if err := mi.fsFor(trashed).Write(rel, data); err != nil {
		return err
	}
	if !trashed {
		mi.recordWrite(rel, data)
	}
	return nil
}

// MoveNote relocates a note file within one tree.
func (mi *Mirror) MoveNote(trashed bool, oldRel, newRel string) error {
	if !trashed {
		mi.forgetWrite(oldRel)
	}
	return mi.fsFor(trashed).Rename(oldRel, newRel)
}

// RemoveNote deletes a note file.
func (mi *Mirror) RemoveNote(trashed bool, rel string) error {
	if !trashed {
		mi.forgetWrite(rel)
	}
	return mi.fsFor(trashed).Remove(rel)
}

// RemoveFolder deletes a folder directory and its whole subtree.
func (mi *Mirror) RemoveFolder(trashed bool, rel string) error {
	return mi.fsFor(trashed).RemoveTree(rel)
}

// Trash moves a file or directory subtree from the data root to the
// trash root.
func (mi *Mirror) Trash(activeRel, trashRel string) error {
	mi.forgetWrite(activeRel)
	return vault.Transfer(mi.data, activeRel, mi.trash, trashRel)
}

// Restore moves a file or directory subtree from the trash root back to
// the data root.
func (mi *Mirror) Restore(trashRel, activeRel string) error {
	return vault.Transfer(mi.trash, trashRel, mi.data, activeRel)
}

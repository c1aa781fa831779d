package api

import (
	"sync"

	"github.com/quirelabs/quire/internal/models"
	"github.com/quirelabs/quire/internal/notes"
)

// Service exposes the manager to surfaces that may see concurrent
// requests (HTTP, MCP, the file watcher). The core is single-writer by
// design, so every call is serialized through one coarse lock; per-node
// locking would let concurrent multi-step operations observe a moving
// tree.
type Service struct {
	mu  sync.Mutex
	mgr *notes.Manager
}

// NewService wraps a manager.
func NewService(mgr *notes.Manager) *Service {
	return &Service{mgr: mgr}
}

// CreateFolder creates a folder under parentID.
func (s *Service) CreateFolder(parentID int, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.CreateFolder(parentID, name)
}

// ListFolder returns a folder's direct contents.
func (s *Service) ListFolder(folderID int) (*FolderListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.mgr.Folder(folderID)
	if err != nil {
		return nil, err
	}
	childNotes, childFolders, err := s.mgr.ListContents(folderID)
	if err != nil {
		return nil, err
	}
	path, _ := s.mgr.FolderPath(folderID)
	listing := &FolderListing{
		ID:      f.ID,
		Name:    f.Name,
		Path:    path,
		Notes:   make([]NoteSummary, 0, len(childNotes)),
		Folders: make([]FolderSummary, 0, len(childFolders)),
	}
	for _, n := range childNotes {
		listing.Notes = append(listing.Notes, s.noteSummary(n))
	}
	for _, sub := range childFolders {
		listing.Folders = append(listing.Folders, FolderSummary{ID: sub.ID, Name: sub.Name})
	}
	return listing, nil
}

// ActiveRoot returns the id of the active tree root.
func (s *Service) ActiveRoot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.ActiveRoot()
}

// ResolveFolderPath resolves a `/`-delimited path to a folder id.
func (s *Service) ResolveFolderPath(path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.mgr.FindFolderByPath(path)
	if err != nil {
		return 0, err
	}
	return f.ID, nil
}

// MoveFolder reattaches a folder under a new parent.
func (s *Service) MoveFolder(folderID, newParentID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.MoveFolder(folderID, newParentID)
}

// RenameFolder renames a folder.
func (s *Service) RenameFolder(folderID int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.RenameFolder(folderID, name)
}

// DeleteFolder trashes or purges a folder.
func (s *Service) DeleteFolder(folderID int, permanent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.DeleteFolder(folderID, permanent)
}

// CreateNote creates a note under folderID.
func (s *Service) CreateNote(folderID int, title, content string, tags []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.CreateNote(folderID, title, content, tags)
}

// GetNote returns the full representation of a note.
func (s *Service) GetNote(noteID int) (*NoteDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noteDetail(noteID)
}

// EditNote overwrites a note's content.
func (s *Service) EditNote(noteID int, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.EditNote(noteID, content)
}

// RenameNote retitles a note.
func (s *Service) RenameNote(noteID int, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.RenameNote(noteID, title)
}

// MoveNote reattaches a note under a different folder.
func (s *Service) MoveNote(noteID, folderID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.MoveNote(noteID, folderID)
}

// DeleteNote trashes or purges a note.
func (s *Service) DeleteNote(noteID int, permanent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.DeleteNote(noteID, permanent)
}

// TagNote attaches a tag, creating it if needed.
func (s *Service) TagNote(noteID int, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.AddTagToNote(noteID, tag)
}

// UntagNote detaches a tag reference.
func (s *Service) UntagNote(noteID int, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.RemoveTagFromNote(noteID, tag)
}

// Versions lists a note's version history, oldest first.
func (s *Service) Versions(noteID int) ([]VersionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.mgr.Note(noteID)
	if err != nil {
		return nil, err
	}
	out := make([]VersionInfo, len(n.Versions))
	for i, v := range n.Versions {
		out[i] = VersionInfo{Index: i, Timestamp: v.Timestamp, Content: v.Content}
	}
	return out, nil
}

// RevertNote restores a note's content to a history snapshot.
func (s *Service) RevertNote(noteID, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.RevertNote(noteID, index)
}

// ExportNote renders a note as md, json, or html.
func (s *Service) ExportNote(noteID int, format string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.ExportNote(noteID, format)
}

// Search runs a criteria scan over the selected tree(s).
func (s *Service) Search(c notes.Criteria) []NoteSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	hits := s.mgr.Search(c)
	out := make([]NoteSummary, 0, len(hits))
	for _, n := range hits {
		out = append(out, s.noteSummary(n))
	}
	return out
}

// ActiveTags lists the tags referenced from the active tree.
func (s *Service) ActiveTags() []TagInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := s.mgr.ActiveTags()
	out := make([]TagInfo, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagInfo{ID: t.ID, Name: t.Name})
	}
	return out
}

// Trash lists the items sitting directly under the trash root.
func (s *Service) Trash() TrashListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	trashNotes, trashFolders := s.mgr.TrashContents()
	listing := TrashListing{
		Notes:   make([]NoteSummary, 0, len(trashNotes)),
		Folders: make([]FolderSummary, 0, len(trashFolders)),
	}
	for _, n := range trashNotes {
		listing.Notes = append(listing.Notes, s.noteSummary(n))
	}
	for _, f := range trashFolders {
		listing.Folders = append(listing.Folders, FolderSummary{ID: f.ID, Name: f.Name})
	}
	return listing
}

// Restore moves a trashed item back under its original parent.
func (s *Service) Restore(id int, isNote bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.RestoreItem(id, isNote)
}

// EmptyTrash purges everything in the trash.
func (s *Service) EmptyTrash() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.EmptyTrash()
}

// RefreshNote reconciles one note with an externally edited file. Wired
// to the vault watcher, which runs on its own goroutine.
func (s *Service) RefreshNote(rel string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mgr.RefreshNoteFromDisk(rel, data)
}

func (s *Service) noteSummary(n *models.Note) NoteSummary {
	tags, _ := s.mgr.TagNamesFor(n.ID)
	if tags == nil {
		tags = []string{}
	}
	return NoteSummary{
		ID:        n.ID,
		Title:     n.Title,
		Tags:      tags,
		Modified:  n.Modified,
		WordCount: n.WordCount,
		Trashed:   n.Trashed,
	}
}

func (s *Service) noteDetail(noteID int) (*NoteDetail, error) {
	n, err := s.mgr.Note(noteID)
	if err != nil {
		return nil, err
	}
	folderID, _ := s.mgr.NoteFolder(noteID)
	tags := []string{}
	if resolved, err := s.mgr.TagNamesFor(noteID); err == nil && resolved != nil {
		tags = resolved
	}
	return &NoteDetail{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		FolderID:     folderID,
		Tags:         tags,
		Created:      n.Created,
		Modified:     n.Modified,
		VersionCount: len(n.Versions),
		Attachments:  n.Attachments,
		Encrypted:    n.Encrypted,
		Trashed:      n.Trashed,
		WordCount:    n.WordCount,
		CharCount:    n.CharCount,
	}, nil
}

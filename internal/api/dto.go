package api

import "time"

// NoteSummary is a lightweight note representation used in listings and
// search results.
type NoteSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	Modified  time.Time `json:"modified"`
	WordCount int       `json:"word_count"`
	Trashed   bool      `json:"trashed,omitempty"`
}

// NoteDetail is the full note response type.
type NoteDetail struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	FolderID     int       `json:"folder_id"`
	Tags         []string  `json:"tags"`
	Created      time.Time `json:"created"`
	Modified     time.Time `json:"modified"`
	VersionCount int       `json:"version_count"`
	Attachments  []string  `json:"attachments,omitempty"`
	Encrypted    bool      `json:"encrypted"`
	Trashed      bool      `json:"trashed"`
	WordCount    int       `json:"word_count"`
	CharCount    int       `json:"char_count"`
}

// FolderSummary identifies a folder in a listing.
type FolderSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FolderListing is a folder's direct contents.
type FolderListing struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Path    string          `json:"path"`
	Notes   []NoteSummary   `json:"notes"`
	Folders []FolderSummary `json:"folders"`
}

// VersionInfo is one entry in a note's history, oldest first.
type VersionInfo struct {
	Index     int       `json:"index"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}

// TagInfo is a tag table entry.
type TagInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TrashListing is the direct contents of the trash root.
type TrashListing struct {
	Notes   []NoteSummary   `json:"notes"`
	Folders []FolderSummary `json:"folders"`
}

// CreateFolderRequest is the request body for creating a folder.
type CreateFolderRequest struct {
	ParentID int    `json:"parent_id"`
	Name     string `json:"name"`
}

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	FolderID int      `json:"folder_id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateNoteRequest is the request body for overwriting note content.
type UpdateNoteRequest struct {
	Content string `json:"content"`
}

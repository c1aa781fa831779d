package notes

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quirelabs/quire/internal/vault"
)

// rebuild creates a second manager over the same roots, as a process
// restart would.
func rebuild(t *testing.T, dataDir, trashDir string) *Manager {
	t.Helper()
	dataFS, err := vault.NewFS(dataDir)
	if err != nil {
		t.Fatalf("NewFS data: %v", err)
	}
	trashFS, err := vault.NewFS(trashDir)
	if err != nil {
		t.Fatalf("NewFS trash: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := New(NewMirror(dataFS, trashFS), logger, nil)
	if err := m.InitFromFS(); err != nil {
		t.Fatalf("InitFromFS: %v", err)
	}
	return m
}

func TestInitFromFSRebuildsTrees(t *testing.T) {
	m, dataDir, trashDir := newTestManager(t)

	work, _ := m.CreateFolder(m.ActiveRoot(), "work")
	_, _ = m.CreateFolder(work, "empty-sub")
	_, _ = m.CreateNote(work, "Report", "quarterly", []string{"finance"})
	loose, _ := m.CreateNote(m.ActiveRoot(), "Loose", "", nil)
	_ = m.DeleteNote(loose, false)

	m2 := rebuild(t, dataDir, trashDir)

	// Active tree: work/{empty-sub, Report}.
	root, _ := m2.Folder(m2.ActiveRoot())
	workF := root.FindSubfolderByName("work")
	if workF == nil {
		t.Fatal("work folder not rebuilt")
	}
	if workF.FindSubfolderByName("empty-sub") == nil {
		t.Error("empty directory not rebuilt as folder")
	}
	if len(workF.Notes) != 1 || workF.Notes[0].Title != "Report" {
		t.Fatalf("work notes = %v", workF.Notes)
	}
	report := workF.Notes[0]
	if report.Content != "quarterly" {
		t.Errorf("Content = %q", report.Content)
	}
	names, _ := m2.TagNamesFor(report.ID)
	if len(names) != 1 || names[0] != "finance" {
		t.Errorf("tags = %v", names)
	}

	// Trash tree: the loose note.
	trashNotes, _ := m2.TrashContents()
	if len(trashNotes) != 1 || trashNotes[0].Title != "Loose" {
		t.Fatalf("trash notes = %v", trashNotes)
	}
	if !trashNotes[0].Trashed {
		t.Error("rebuilt trash note not flagged")
	}
}

func TestRestoreAfterRestartReportsParentGone(t *testing.T) {
	m, dataDir, trashDir := newTestManager(t)
	folder, _ := m.CreateFolder(m.ActiveRoot(), "f")
	id, _ := m.CreateNote(folder, "n", "", nil)
	_ = m.DeleteNote(id, false)

	m2 := rebuild(t, dataDir, trashDir)
	trashNotes, _ := m2.TrashContents()
	if len(trashNotes) != 1 {
		t.Fatalf("trash notes = %v", trashNotes)
	}
	// Original parent links do not survive a restart.
	if err := m2.RestoreItem(trashNotes[0].ID, true); err == nil {
		t.Error("restore succeeded without a recorded original parent")
	}
}

func TestInitSkipsUnparsableFiles(t *testing.T) {
	m, dataDir, trashDir := newTestManager(t)
	_, _ = m.CreateNote(m.ActiveRoot(), "good", "", nil)

	if err := os.WriteFile(filepath.Join(dataDir, "broken.md"), []byte("no header here"), 0o644); err != nil {
		t.Fatalf("plant broken file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "notes.txt"), []byte("not markdown"), 0o644); err != nil {
		t.Fatalf("plant txt file: %v", err)
	}

	m2 := rebuild(t, dataDir, trashDir)
	root, _ := m2.Folder(m2.ActiveRoot())
	if len(root.Notes) != 1 || root.Notes[0].Title != "good" {
		t.Errorf("rebuilt notes = %v, want only the parsable one", root.Notes)
	}
}

func TestRefreshNoteFromDisk(t *testing.T) {
	m, dataDir, _ := newTestManager(t)
	id, _ := m.CreateNote(m.ActiveRoot(), "Watched", "original", []string{"old-tag"})

	rel := "watched-1.md"
	// Simulate an external editor: change body and tags in the file.
	external := []byte("---\ntitle: Watched\ntags:\n  - new-tag\n---\n\nedited outside")
	if err := os.WriteFile(filepath.Join(dataDir, rel), external, 0o644); err != nil {
		t.Fatalf("external write: %v", err)
	}

	m.RefreshNoteFromDisk(rel, external)

	n, _ := m.Note(id)
	if n.Content != "edited outside" {
		t.Errorf("Content = %q after refresh", n.Content)
	}
	names, _ := m.TagNamesFor(id)
	if len(names) != 1 || names[0] != "new-tag" {
		t.Errorf("tags = %v after refresh", names)
	}
}

func TestRefreshRelocatesRetitledNote(t *testing.T) {
	m, dataDir, _ := newTestManager(t)
	id, _ := m.CreateNote(m.ActiveRoot(), "Old Name", "original", nil)

	external := []byte("---\ntitle: New Name\n---\n\nedited outside")
	if err := os.WriteFile(filepath.Join(dataDir, "old-name-1.md"), external, 0o644); err != nil {
		t.Fatalf("external write: %v", err)
	}
	m.RefreshNoteFromDisk("old-name-1.md", external)

	n, _ := m.Note(id)
	if n.Title != "New Name" {
		t.Fatalf("Title = %q after refresh", n.Title)
	}
	// The file follows the derived name; the old path is gone.
	mustExist(t, filepath.Join(dataDir, "new-name-1.md"))
	mustNotExist(t, filepath.Join(dataDir, "old-name-1.md"))

	// Later saves land on the relocated file instead of resurrecting the
	// old path.
	if err := m.EditNote(id, "saved after rename"); err != nil {
		t.Fatalf("EditNote: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dataDir, "new-name-1.md"))
	if err != nil {
		t.Fatalf("read relocated file: %v", err)
	}
	if !strings.Contains(string(data), "saved after rename") {
		t.Errorf("relocated file content = %q", data)
	}
	mustNotExist(t, filepath.Join(dataDir, "old-name-1.md"))

	// Watcher events addressed to the new path resolve to the same note.
	followup := []byte("---\ntitle: New Name\n---\n\nsecond external edit")
	m.RefreshNoteFromDisk("new-name-1.md", followup)
	n, _ = m.Note(id)
	if n.Content != "second external edit" {
		t.Errorf("Content = %q after followup refresh", n.Content)
	}
}

func TestRefreshIgnoresOwnWrites(t *testing.T) {
	m, dataDir, _ := newTestManager(t)
	id, _ := m.CreateNote(m.ActiveRoot(), "Mine", "content", nil)

	rel := "mine-1.md"
	data, err := os.ReadFile(filepath.Join(dataDir, rel))
	if err != nil {
		t.Fatalf("read mirrored file: %v", err)
	}

	// The bytes on disk are exactly what the mirror last wrote, so a
	// watcher event for them is an echo and must be filtered out.
	if !m.mirror.OwnWrite(rel, data) {
		t.Fatal("mirror does not recognize its own write")
	}
	m.RefreshNoteFromDisk(rel, data)
	n, _ := m.Note(id)
	if n.Content != "content" || len(n.Versions) != 0 {
		t.Errorf("own-write echo modified the note: %+v", n)
	}

	// The same path with different bytes is a real external edit.
	if m.mirror.OwnWrite(rel, append(data, '!')) {
		t.Error("modified bytes still counted as own write")
	}
}

func TestRefreshUnknownFileIgnored(t *testing.T) {
	m, _, _ := newTestManager(t)
	// Must not panic or create anything.
	m.RefreshNoteFromDisk("stranger.md", []byte("---\ntitle: X\n---\n\nbody"))
	root, _ := m.Folder(m.ActiveRoot())
	if len(root.Notes) != 0 {
		t.Errorf("refresh of unknown file created notes: %v", root.Notes)
	}
}

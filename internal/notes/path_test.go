package notes

import (
	"errors"
	"testing"

	"github.com/quirelabs/quire/internal/apperr"
)

func TestPathNavigation(t *testing.T) {
	m, _, _ := newTestManager(t)

	a, _ := m.CreateFolder(m.ActiveRoot(), "a")
	b, _ := m.CreateFolder(a, "b")

	if got := m.CurrentPath(); got != "/" {
		t.Errorf("CurrentPath at root = %q", got)
	}

	if err := m.ChangeCurrentFolder("/a/b"); err != nil {
		t.Fatalf("cd /a/b: %v", err)
	}
	if m.CurrentFolder() != b {
		t.Errorf("current = %d, want %d", m.CurrentFolder(), b)
	}
	if got := m.CurrentPath(); got != "/a/b" {
		t.Errorf("CurrentPath = %q", got)
	}

	// Relative from the current folder.
	if err := m.ChangeCurrentFolder(".."); err != nil {
		t.Fatalf("cd ..: %v", err)
	}
	if m.CurrentFolder() != a {
		t.Errorf("after cd .., current = %d, want %d", m.CurrentFolder(), a)
	}
}

func TestDotDotStopsAtRoot(t *testing.T) {
	m, _, _ := newTestManager(t)
	if err := m.ChangeCurrentFolder("../../.."); err != nil {
		t.Fatalf("cd past root: %v", err)
	}
	if m.CurrentFolder() != m.ActiveRoot() {
		t.Errorf("climbed past the root to %d", m.CurrentFolder())
	}
}

func TestPathUnknownSegment(t *testing.T) {
	m, _, _ := newTestManager(t)
	if _, err := m.FindFolderByPath("/nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("FindFolderByPath(/nope) = %v, want ErrNotFound", err)
	}
}

func TestRelativePathFromCurrent(t *testing.T) {
	m, _, _ := newTestManager(t)

	a, _ := m.CreateFolder(m.ActiveRoot(), "a")
	b, _ := m.CreateFolder(a, "b")

	if err := m.ChangeCurrentFolder("a"); err != nil {
		t.Fatalf("cd a: %v", err)
	}
	f, err := m.FindFolderByPath("b")
	if err != nil {
		t.Fatalf("resolve b from a: %v", err)
	}
	if f.ID != b {
		t.Errorf("resolved %d, want %d", f.ID, b)
	}
}

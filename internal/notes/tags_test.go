package notes

import (
	"errors"
	"testing"

	"github.com/quirelabs/quire/internal/apperr"
)

func TestTagResolveOrCreateReuses(t *testing.T) {
	m, _, _ := newTestManager(t)

	a, _ := m.CreateNote(m.ActiveRoot(), "a", "", []string{"shared"})
	b, _ := m.CreateNote(m.ActiveRoot(), "b", "", []string{"shared"})

	na, _ := m.Note(a)
	nb, _ := m.Note(b)
	if len(na.TagIDs) != 1 || len(nb.TagIDs) != 1 || na.TagIDs[0] != nb.TagIDs[0] {
		t.Errorf("same name resolved to different tags: %v vs %v", na.TagIDs, nb.TagIDs)
	}
	if len(m.Tags()) != 1 {
		t.Errorf("tag table has %d entries, want 1", len(m.Tags()))
	}
}

func TestAddAndRemoveTag(t *testing.T) {
	m, _, _ := newTestManager(t)
	id, _ := m.CreateNote(m.ActiveRoot(), "n", "", nil)

	if err := m.AddTagToNote(id, "urgent"); err != nil {
		t.Fatalf("AddTagToNote: %v", err)
	}
	// Re-attaching is a no-op, not an error.
	if err := m.AddTagToNote(id, "urgent"); err != nil {
		t.Fatalf("second AddTagToNote: %v", err)
	}
	names, _ := m.TagNamesFor(id)
	if len(names) != 1 || names[0] != "urgent" {
		t.Errorf("TagNamesFor = %v", names)
	}

	if err := m.RemoveTagFromNote(id, "urgent"); err != nil {
		t.Fatalf("RemoveTagFromNote: %v", err)
	}
	if err := m.RemoveTagFromNote(id, "urgent"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("removing absent tag = %v, want ErrNotFound", err)
	}
	// The tag survives in the table with zero references.
	if len(m.Tags()) != 1 {
		t.Errorf("tag dropped from table on detach")
	}
}

func TestDeleteTagPurgesReferences(t *testing.T) {
	m, _, _ := newTestManager(t)
	a, _ := m.CreateNote(m.ActiveRoot(), "a", "", []string{"doomed", "keep"})
	b, _ := m.CreateNote(m.ActiveRoot(), "b", "", []string{"doomed"})

	if err := m.DeleteTag("doomed"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	namesA, _ := m.TagNamesFor(a)
	if len(namesA) != 1 || namesA[0] != "keep" {
		t.Errorf("note a tags = %v", namesA)
	}
	namesB, _ := m.TagNamesFor(b)
	if len(namesB) != 0 {
		t.Errorf("note b tags = %v", namesB)
	}
	if err := m.DeleteTag("doomed"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second DeleteTag = %v, want ErrNotFound", err)
	}
}

func TestActiveTagsExcludeTrashOnlyRefs(t *testing.T) {
	m, _, _ := newTestManager(t)

	keep, _ := m.CreateNote(m.ActiveRoot(), "keep", "", []string{"active-tag"})
	gone, _ := m.CreateNote(m.ActiveRoot(), "gone", "", []string{"trash-tag"})
	_ = keep
	if err := m.DeleteNote(gone, false); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	active := m.ActiveTags()
	if len(active) != 1 || active[0].Name != "active-tag" {
		t.Errorf("ActiveTags = %v", active)
	}
	// The full table still knows both.
	if len(m.Tags()) != 2 {
		t.Errorf("Tags() = %d entries, want 2", len(m.Tags()))
	}
}

func TestActiveTagsSorted(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, _ = m.CreateNote(m.ActiveRoot(), "n", "", []string{"zebra", "alpha", "mid"})

	active := m.ActiveTags()
	if len(active) != 3 || active[0].Name != "alpha" || active[2].Name != "zebra" {
		t.Errorf("ActiveTags order = %v", active)
	}
}

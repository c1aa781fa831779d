package models

import "testing"

func TestFolderChildOrder(t *testing.T) {
	f := NewFolder(1, "root", NoParent)
	f.AddNote(NewNote(1, "a", ""))
	f.AddNote(NewNote(2, "b", ""))
	f.AddSubfolder(NewFolder(2, "x", 1))
	f.AddSubfolder(NewFolder(3, "y", 1))

	if f.Notes[0].Title != "a" || f.Notes[1].Title != "b" {
		t.Error("note insertion order not preserved")
	}
	if f.Subfolders[0].Name != "x" || f.Subfolders[1].Name != "y" {
		t.Error("subfolder insertion order not preserved")
	}
}

func TestRemoveReturnsDetached(t *testing.T) {
	f := NewFolder(1, "root", NoParent)
	f.AddNote(NewNote(5, "n", ""))
	f.AddSubfolder(NewFolder(6, "s", 1))

	if got := f.RemoveNote(5); got == nil || got.ID != 5 {
		t.Errorf("RemoveNote = %v", got)
	}
	if f.RemoveNote(5) != nil {
		t.Error("second RemoveNote found something")
	}
	if got := f.RemoveSubfolder(6); got == nil || got.ID != 6 {
		t.Errorf("RemoveSubfolder = %v", got)
	}
}

func TestTotalNotesRecurses(t *testing.T) {
	root := NewFolder(1, "root", NoParent)
	child := NewFolder(2, "child", 1)
	grand := NewFolder(3, "grand", 2)
	root.AddSubfolder(child)
	child.AddSubfolder(grand)

	root.AddNote(NewNote(1, "a", ""))
	child.AddNote(NewNote(2, "b", ""))
	grand.AddNote(NewNote(3, "c", ""))
	grand.AddNote(NewNote(4, "d", ""))

	if got := root.TotalNotes(); got != 4 {
		t.Errorf("TotalNotes = %d, want 4", got)
	}
}

func TestFindSubfolderByName(t *testing.T) {
	f := NewFolder(1, "root", NoParent)
	f.AddSubfolder(NewFolder(2, "work", 1))
	if f.FindSubfolderByName("work") == nil {
		t.Error("existing name not found")
	}
	if f.FindSubfolderByName("Work") != nil {
		t.Error("name match is not case-sensitive")
	}
}

package models

// Folder is a node in one of the two ownership trees. Parent is an id
// reference resolved through the manager's id index, never an owning
// handle, so the parent/child graph stays acyclic by construction of the
// move operation rather than by pointer discipline.
type Folder struct {
	ID             int
	Name           string
	Parent         int
	Notes          []*Note
	Subfolders     []*Folder
	Trashed        bool
	OriginalParent int
}

// NewFolder creates a folder attached under parent (NoParent for roots).
func NewFolder(id int, name string, parent int) *Folder {
	return &Folder{
		ID:             id,
		Name:           name,
		Parent:         parent,
		OriginalParent: NoParent,
	}
}

// IsRoot reports whether the folder is one of the two tree roots.
func (f *Folder) IsRoot() bool { return f.Parent == NoParent }

// AddNote appends a note to the folder, preserving insertion order.
func (f *Folder) AddNote(n *Note) { f.Notes = append(f.Notes, n) }

// RemoveNote detaches a note by id and returns it, or nil if absent.
func (f *Folder) RemoveNote(noteID int) *Note {
	for i, n := range f.Notes {
		if n.ID == noteID {
			f.Notes = append(f.Notes[:i], f.Notes[i+1:]...)
			return n
		}
	}
	return nil
}

// AddSubfolder appends a child folder, preserving insertion order.
func (f *Folder) AddSubfolder(sub *Folder) { f.Subfolders = append(f.Subfolders, sub) }

// RemoveSubfolder detaches a child folder by id and returns it, or nil.
func (f *Folder) RemoveSubfolder(folderID int) *Folder {
	for i, sub := range f.Subfolders {
		if sub.ID == folderID {
			f.Subfolders = append(f.Subfolders[:i], f.Subfolders[i+1:]...)
			return sub
		}
	}
	return nil
}

// FindNote returns the directly owned note with the given id, or nil.
func (f *Folder) FindNote(noteID int) *Note {
	for _, n := range f.Notes {
		if n.ID == noteID {
			return n
		}
	}
	return nil
}

// FindSubfolderByName returns the direct child with the given name, or nil.
// Sibling names are unique, so at most one match exists.
func (f *Folder) FindSubfolderByName(name string) *Folder {
	for _, sub := range f.Subfolders {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// TotalNotes counts the notes in this folder and every descendant.
func (f *Folder) TotalNotes() int {
	total := len(f.Notes)
	for _, sub := range f.Subfolders {
		total += sub.TotalNotes()
	}
	return total
}

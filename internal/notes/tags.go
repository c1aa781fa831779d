package notes

import (
	"fmt"
	"sort"

	"github.com/quirelabs/quire/internal/apperr"
	"github.com/quirelabs/quire/internal/models"
)

// TagTable is the single owner of all tags. Notes hold id references
// into it and resolve names through it at read time.
type TagTable struct {
	byID   map[int]*models.Tag
	byName map[string]*models.Tag
}

// NewTagTable creates an empty table.
func NewTagTable() *TagTable {
	return &TagTable{
		byID:   make(map[int]*models.Tag),
		byName: make(map[string]*models.Tag),
	}
}

// ByID returns the tag with the given id, or nil.
func (t *TagTable) ByID(id int) *models.Tag { return t.byID[id] }

// ByName returns the tag with the given name, or nil. Names are unique
// table-wide.
func (t *TagTable) ByName(name string) *models.Tag { return t.byName[name] }

// ResolveOrCreate returns the existing tag with the given name or
// creates one with a fresh id.
func (t *TagTable) ResolveOrCreate(name string, ids *Allocator) *models.Tag {
	if tag, ok := t.byName[name]; ok {
		return tag
	}
	tag := &models.Tag{ID: ids.Next(KindTag), Name: name}
	t.byID[tag.ID] = tag
	t.byName[name] = tag
	return tag
}

func (t *TagTable) remove(tag *models.Tag) {
	delete(t.byID, tag.ID)
	delete(t.byName, tag.Name)
}

// All returns every tag in the table, sorted by name.
func (t *TagTable) All() []*models.Tag {
	tags := make([]*models.Tag, 0, len(t.byID))
	for _, tag := range t.byID {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags
}

// AddTagToNote attaches a tag to a note, creating the tag if the name is
// new. Attaching an already present tag is a no-op.
func (m *Manager) AddTagToNote(noteID int, tagName string) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	t := m.tags.ResolveOrCreate(tagName, m.ids)
	n.AddTag(t.ID)

	m.audit.Log("info", fmt.Sprintf("note %d tagged %s", noteID, tagName))
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror tag save failed", slogErr(err))
		return err
	}
	return nil
}

// RemoveTagFromNote detaches a tag reference. The tag itself stays in
// the table even if nothing references it anymore.
func (m *Manager) RemoveTagFromNote(noteID int, tagName string) error {
	n, err := m.Note(noteID)
	if err != nil {
		return err
	}
	t := m.tags.ByName(tagName)
	if t == nil || !n.RemoveTag(t.ID) {
		return fmt.Errorf("tag %q on note %d: %w", tagName, noteID, apperr.ErrNotFound)
	}

	m.audit.Log("info", fmt.Sprintf("note %d untagged %s", noteID, tagName))
	if err := m.saveNote(n); err != nil {
		m.logger.Warn("mirror untag save failed", slogErr(err))
		return err
	}
	return nil
}

// DeleteTag removes a tag from the table and purges the reference from
// every note in the same operation, so no dangling reference survives.
func (m *Manager) DeleteTag(tagName string) error {
	t := m.tags.ByName(tagName)
	if t == nil {
		return fmt.Errorf("tag %q: %w", tagName, apperr.ErrNotFound)
	}
	m.tags.remove(t)
	for _, n := range m.notes {
		if n.RemoveTag(t.ID) {
			if err := m.saveNote(n); err != nil {
				m.logger.Warn("mirror tag purge save failed", slogErr(err))
			}
		}
	}
	m.audit.Log("info", fmt.Sprintf("tag %s deleted", tagName))
	return nil
}

// Tags returns every tag in the table, sorted by name.
func (m *Manager) Tags() []*models.Tag { return m.tags.All() }

// TagNamesFor resolves a note's tag references to names.
func (m *Manager) TagNamesFor(noteID int) ([]string, error) {
	n, err := m.Note(noteID)
	if err != nil {
		return nil, err
	}
	return m.tagNames(n), nil
}

// ActiveTags returns the deduplicated set of tags referenced by at least
// one note reachable in the active tree, sorted by name. References held
// only by trashed notes do not count.
func (m *Manager) ActiveTags() []*models.Tag {
	referenced := make(map[int]struct{})
	m.collectTagRefs(m.active, referenced)

	tags := make([]*models.Tag, 0, len(referenced))
	for id := range referenced {
		if t := m.tags.ByID(id); t != nil {
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags
}

func (m *Manager) collectTagRefs(f *models.Folder, out map[int]struct{}) {
	for _, n := range f.Notes {
		for _, id := range n.TagIDs {
			out[id] = struct{}{}
		}
	}
	for _, sub := range f.Subfolders {
		m.collectTagRefs(sub, out)
	}
}

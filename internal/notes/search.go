package notes

import (
	"strings"
	"time"

	"github.com/quirelabs/quire/internal/models"
)

// Scope selects which tree(s) a search scans.
type Scope int

const (
	ScopeActive Scope = iota
	ScopeTrash
	ScopeBoth
)

// Criteria is a conjunction of search filters. Zero values mean
// unconstrained: an empty keyword matches everything, zero times leave
// the date range open on that side.
type Criteria struct {
	Keyword string   // exact-case substring of title or content
	Tags    []string // every listed tag must be attached
	From    time.Time
	To      time.Time // inclusive bounds on the last-modified timestamp
	Scope   Scope
}

// Search runs a full scan of the selected tree(s). Results follow tree
// traversal order: within a folder its notes come first, then each
// subfolder's subtree. There is no index acceleration and no relevance
// ranking.
func (m *Manager) Search(c Criteria) []*models.Note {
	// Unknown tag names can never match.
	tagIDs := make([]int, 0, len(c.Tags))
	for _, name := range c.Tags {
		t := m.tags.ByName(name)
		if t == nil {
			return nil
		}
		tagIDs = append(tagIDs, t.ID)
	}

	var out []*models.Note
	if c.Scope == ScopeActive || c.Scope == ScopeBoth {
		m.scan(m.active, c, tagIDs, &out)
	}
	if c.Scope == ScopeTrash || c.Scope == ScopeBoth {
		m.scan(m.trash, c, tagIDs, &out)
	}
	return out
}

func (m *Manager) scan(f *models.Folder, c Criteria, tagIDs []int, out *[]*models.Note) {
	for _, n := range f.Notes {
		if matches(n, c, tagIDs) {
			*out = append(*out, n)
		}
	}
	for _, sub := range f.Subfolders {
		m.scan(sub, c, tagIDs, out)
	}
}

func matches(n *models.Note, c Criteria, tagIDs []int) bool {
	if c.Keyword != "" &&
		!strings.Contains(n.Title, c.Keyword) &&
		!strings.Contains(n.Content, c.Keyword) {
		return false
	}
	for _, id := range tagIDs {
		if !n.HasTag(id) {
			return false
		}
	}
	if !c.From.IsZero() && n.Modified.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && n.Modified.After(c.To) {
		return false
	}
	return true
}

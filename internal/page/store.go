package page

import (
	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/search"
)

// Store is the bookmarks page state shared by the controller and the renderer.
// It is owned by a single goroutine; nothing here is synchronized.
type Store struct {
	Collection    *model.Collection
	CurrentFolder *string // nil = root
	Selection     Selection
	Drag          *DragSession
	ModifierHeld  bool   // the platform "command" modifier is down
	Query         string // drawer search
	Cursor        int    // keyboard position in VisibleItems
}

// NewStore creates an empty page state at the root folder.
func NewStore() *Store {
	return &Store{
		Collection: model.NewCollection(),
	}
}

// VisibleItems returns the children of the current folder in sibling order,
// narrowed by the search query.
func (s *Store) VisibleItems() []model.Entry {
	return search.Filter(s.Collection.Children(s.CurrentFolder), s.Query)
}

// GoToFolder shows the children of the given folder. Unknown ids and
// non-folders fall back to root.
func (s *Store) GoToFolder(id *string) {
	if id != nil {
		if e := s.Collection.Get(*id); e == nil || !e.IsFolder() {
			id = nil
		}
	}
	s.CurrentFolder = model.CopyID(id)
	s.Cursor = 0
}

// GoUp shows the parent of the current folder.
func (s *Store) GoUp() {
	if s.CurrentFolder == nil {
		return
	}
	current := *s.CurrentFolder
	var parent *string
	if e := s.Collection.Get(current); e != nil {
		parent = e.Parent
	}
	s.GoToFolder(parent)

	// Land on the folder we came from
	for i, e := range s.VisibleItems() {
		if e.ID == current {
			s.Cursor = i
			break
		}
	}
}

// CursorEntry returns the visible entry under the cursor, or nil.
func (s *Store) CursorEntry() *model.Entry {
	items := s.VisibleItems()
	if s.Cursor < 0 || s.Cursor >= len(items) {
		return nil
	}
	e := items[s.Cursor]
	return &e
}

// MoveCursor shifts the cursor by delta, clamped to the visible list.
func (s *Store) MoveCursor(delta int) {
	s.Cursor += delta
	s.ClampCursor()
}

// ClampCursor keeps the cursor inside the visible list.
func (s *Store) ClampCursor() {
	n := len(s.VisibleItems())
	if s.Cursor >= n {
		s.Cursor = n - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// Selection is an insertion-ordered set of entry ids.
type Selection struct {
	ids []string
}

// Has reports whether id is selected.
func (sel *Selection) Has(id string) bool {
	for _, s := range sel.ids {
		if s == id {
			return true
		}
	}
	return false
}

// Add selects id. Adding twice is a no-op.
func (sel *Selection) Add(id string) {
	if !sel.Has(id) {
		sel.ids = append(sel.ids, id)
	}
}

// Remove deselects id.
func (sel *Selection) Remove(id string) {
	for i, s := range sel.ids {
		if s == id {
			sel.ids = append(sel.ids[:i], sel.ids[i+1:]...)
			return
		}
	}
}

// Toggle adds or removes id.
func (sel *Selection) Toggle(id string) {
	if sel.Has(id) {
		sel.Remove(id)
	} else {
		sel.Add(id)
	}
}

// Clear deselects everything.
func (sel *Selection) Clear() {
	sel.ids = nil
}

// Len returns the number of selected ids.
func (sel *Selection) Len() int {
	return len(sel.ids)
}

// IDs returns a copy of the selected ids in selection order.
func (sel *Selection) IDs() []string {
	out := make([]string, len(sel.ids))
	copy(out, sel.ids)
	return out
}

package model

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNotFound  = errors.New("entry not found")
	ErrNotFolder = errors.New("parent is not a folder")
	ErrCycle     = errors.New("folder cannot be moved into its own subtree")
)

// Collection holds all bookmarks and folders.
// Entries are kept in storage order; sibling order is carried by Entry.Position,
// which stays dense (0..n-1) within every parent.
type Collection struct {
	Entries []Entry `json:"entries"`
}

// NewCollection creates an empty Collection with an initialized slice.
func NewCollection() *Collection {
	return &Collection{Entries: []Entry{}}
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.Entries)
}

// Get finds an entry by ID, returns nil if not found.
func (c *Collection) Get(id string) *Entry {
	if i := c.Index(id); i >= 0 {
		return &c.Entries[i]
	}
	return nil
}

// Index returns the storage index of the entry, or -1.
func (c *Collection) Index(id string) int {
	for i := range c.Entries {
		if c.Entries[i].ID == id {
			return i
		}
	}
	return -1
}

// IDs returns every entry ID in storage order.
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		ids[i] = e.ID
	}
	return ids
}

// Children returns the entries with the given parent in sibling order.
// Pass nil for root level entries.
func (c *Collection) Children(parent *string) []Entry {
	var result []Entry
	for _, e := range c.Entries {
		if SameParent(e.Parent, parent) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result
}

// SiblingIndex returns the position of the entry among its siblings, or -1.
func (c *Collection) SiblingIndex(id string) int {
	e := c.Get(id)
	if e == nil {
		return -1
	}
	for i, s := range c.Children(e.Parent) {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Bookmarks returns all bookmark entries in storage order.
func (c *Collection) Bookmarks() []Entry {
	var result []Entry
	for _, e := range c.Entries {
		if !e.IsFolder() {
			result = append(result, e)
		}
	}
	return result
}

// Append adds an entry. Its Position is honoured among existing siblings;
// ties go after the entries already present.
func (c *Collection) Append(e Entry) {
	c.Entries = append(c.Entries, e)
	c.normalize(e.Parent)
}

// AppendMany adds a batch of entries and then settles each affected parent
// once, so positions are read across the whole batch rather than entry by
// entry. Ties keep batch order.
func (c *Collection) AppendMany(entries []Entry) {
	c.Entries = append(c.Entries, entries...)
	c.normalizeAll(entries, nil)
}

// Replace swaps the entry with the same ID wholesale, or appends it.
// The parent must be root or an existing folder outside the entry's subtree.
// Returns true if an existing entry was replaced.
func (c *Collection) Replace(e Entry) (bool, error) {
	if err := c.checkParent(e.ID, e.Parent, nil); err != nil {
		return false, err
	}
	i := c.Index(e.ID)
	if i < 0 {
		c.Append(e)
		return false, nil
	}
	oldParent := c.Entries[i].Parent
	c.Entries[i] = e
	if !SameParent(oldParent, e.Parent) {
		c.normalize(oldParent)
	}
	c.normalize(e.Parent)
	return true, nil
}

// Upsert applies a batch of entries, replacing known IDs and appending the
// rest. Parents may be folders already present or folders in the batch.
// Nothing is changed if any entry has an invalid parent.
func (c *Collection) Upsert(entries []Entry) (replaced int, err error) {
	batch := make(map[string]Entry, len(entries))
	for _, e := range entries {
		batch[e.ID] = e
	}
	for _, e := range entries {
		if err := c.checkParent(e.ID, e.Parent, batch); err != nil {
			return 0, fmt.Errorf("%s: %w", e.ID, err)
		}
	}

	var oldParents []Entry
	for _, e := range entries {
		if i := c.Index(e.ID); i >= 0 {
			oldParents = append(oldParents, c.Entries[i])
			c.Entries[i] = e
			replaced++
			continue
		}
		c.Entries = append(c.Entries, e)
	}
	c.normalizeAll(entries, oldParents)
	return replaced, nil
}

// checkParent validates parent for the entry id. Folders in batch count as
// present and take precedence over the collection.
func (c *Collection) checkParent(id string, parent *string, batch map[string]Entry) error {
	if parent == nil {
		return nil
	}
	target, ok := batch[*parent]
	if !ok {
		p := c.Get(*parent)
		if p == nil {
			return ErrNotFound
		}
		target = *p
	}
	if !target.IsFolder() {
		return ErrNotFolder
	}
	if *parent == id || c.IsDescendant(id, *parent) {
		return ErrCycle
	}
	return nil
}

// Remove deletes the entry with the given ID. Returns false if absent.
func (c *Collection) Remove(id string) bool {
	i := c.Index(id)
	if i < 0 {
		return false
	}
	parent := c.Entries[i].Parent
	c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
	c.normalize(parent)
	return true
}

// Reparent moves an entry to the end of another folder (nil = root).
func (c *Collection) Reparent(id string, parent *string) error {
	e := c.Get(id)
	if e == nil {
		return ErrNotFound
	}
	if parent != nil {
		target := c.Get(*parent)
		if target == nil {
			return ErrNotFound
		}
		if !target.IsFolder() {
			return ErrNotFolder
		}
		if *parent == id || c.IsDescendant(id, *parent) {
			return ErrCycle
		}
	}
	if SameParent(e.Parent, parent) {
		return nil
	}

	oldParent := e.Parent
	e.Parent = CopyID(parent)
	e.Position = len(c.Children(parent))
	c.normalize(oldParent)
	c.normalize(parent)
	return nil
}

// MoveSibling relocates an entry to newIndex among its siblings, shifting the
// entries in between. Returns the previous index.
func (c *Collection) MoveSibling(id string, newIndex int) (int, error) {
	e := c.Get(id)
	if e == nil {
		return -1, ErrNotFound
	}
	siblings := c.Children(e.Parent)
	oldIndex := -1
	for i, s := range siblings {
		if s.ID == id {
			oldIndex = i
			break
		}
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(siblings)-1 {
		newIndex = len(siblings) - 1
	}

	moved := siblings[oldIndex]
	siblings = append(siblings[:oldIndex], siblings[oldIndex+1:]...)
	siblings = append(siblings[:newIndex], append([]Entry{moved}, siblings[newIndex:]...)...)

	for pos, s := range siblings {
		c.Get(s.ID).Position = pos
	}
	return oldIndex, nil
}

// IsDescendant reports whether id lies somewhere below ancestorID.
func (c *Collection) IsDescendant(ancestorID, id string) bool {
	e := c.Get(id)
	for steps := 0; e != nil && e.Parent != nil && steps <= len(c.Entries); steps++ {
		if *e.Parent == ancestorID {
			return true
		}
		e = c.Get(*e.Parent)
	}
	return false
}

// Subtree returns the IDs of the entry and everything below it, children first.
func (c *Collection) Subtree(id string) []string {
	var result []string
	var walk func(string)
	walk = func(parentID string) {
		for _, child := range c.Children(&parentID) {
			walk(child.ID)
		}
		result = append(result, parentID)
	}
	if c.Get(id) != nil {
		walk(id)
	}
	return result
}

// Path returns the folder chain from root down to the given folder.
// Returns nil for root or an unknown folder.
func (c *Collection) Path(folderID *string) []Entry {
	if folderID == nil {
		return nil
	}
	var chain []Entry
	e := c.Get(*folderID)
	for steps := 0; e != nil && steps <= len(c.Entries); steps++ {
		chain = append([]Entry{*e}, chain...)
		if e.Parent == nil {
			return chain
		}
		e = c.Get(*e.Parent)
	}
	return nil
}

// normalize rewrites positions of one parent's children to 0..n-1,
// keeping their current relative order.
func (c *Collection) normalize(parent *string) {
	var idx []int
	for i := range c.Entries {
		if SameParent(c.Entries[i].Parent, parent) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return c.Entries[idx[a]].Position < c.Entries[idx[b]].Position
	})
	for pos, i := range idx {
		c.Entries[i].Position = pos
	}
}

// normalizeAll settles every parent referenced by the given entries.
func (c *Collection) normalizeAll(groups ...[]Entry) {
	seen := make(map[string]bool)
	for _, group := range groups {
		for _, e := range group {
			key := ""
			if e.Parent != nil {
				key = "/" + *e.Parent
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			c.normalize(e.Parent)
		}
	}
}

package model

// findFolder returns the folder with the given title directly under parent,
// looking at the collection first and then at pending.
func (c *Collection) findFolder(title string, parent *string, pending []Entry) *Entry {
	for _, list := range [][]Entry{c.Entries, pending} {
		for i := range list {
			e := &list[i]
			if e.IsFolder() && e.Title == title && SameParent(e.Parent, parent) {
				return e
			}
		}
	}
	return nil
}

// ImportMerge merges imported entries into the collection.
// Folders with the same title at the same level are reused, bookmarks whose URL
// already exists are skipped. Entries must be ordered parents before children.
// Returns the number of bookmarks added and skipped.
func (c *Collection) ImportMerge(entries []Entry) (added, skipped int) {
	remap := make(map[string]string)
	urls := make(map[string]bool)
	for _, e := range c.Bookmarks() {
		urls[e.URL] = true
	}
	next := make(map[string]int) // next free position per parent key
	nextPosition := func(parent *string) int {
		key := ""
		if parent != nil {
			key = "/" + *parent
		}
		if _, ok := next[key]; !ok {
			next[key] = len(c.Children(parent))
		}
		pos := next[key]
		next[key]++
		return pos
	}

	mapParent := func(parent *string) *string {
		if parent == nil {
			return nil
		}
		if id, ok := remap[*parent]; ok {
			return &id
		}
		return CopyID(parent)
	}

	var pending []Entry
	for _, e := range entries {
		e.Parent = mapParent(e.Parent)

		if e.IsFolder() {
			if existing := c.findFolder(e.Title, e.Parent, pending); existing != nil {
				remap[e.ID] = existing.ID
				continue
			}
			remap[e.ID] = e.ID
			e.Position = nextPosition(e.Parent)
			pending = append(pending, e)
			continue
		}

		if urls[e.URL] {
			skipped++
			continue
		}
		urls[e.URL] = true
		e.Position = nextPosition(e.Parent)
		pending = append(pending, e)
		added++
	}

	c.AppendMany(pending)
	return added, skipped
}

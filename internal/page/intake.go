package page

import (
	"fmt"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/model"
)

// Apply folds one backend notification into the Store.
func (c *Controller) Apply(n bridge.Notification) error {
	s := c.store
	switch n := n.(type) {
	case bridge.Added:
		if err := c.add([]model.Entry{n.Entry}); err != nil {
			return fmt.Errorf("added %w", err)
		}
	case bridge.AddedMany:
		if err := c.add(n.Entries); err != nil {
			return fmt.Errorf("added batch %w", err)
		}
	case bridge.Edited:
		if s.Collection.Get(n.Entry.ID) == nil {
			return fmt.Errorf("edited %s: %w", n.Entry.ID, ErrNotFound)
		}
		if _, err := s.Collection.Replace(n.Entry); err != nil {
			return fmt.Errorf("edited %s: %w", n.Entry.ID, err)
		}
	case bridge.Deleted:
		c.remove(n.ID)
	default:
		return fmt.Errorf("unknown notification %T", n)
	}
	s.ClampCursor()
	return nil
}

// add inserts the entries in one batch, replacing any with a known id.
// The first entries to arrive send the view back to root.
func (c *Controller) add(entries []model.Entry) error {
	coll := c.store.Collection
	wasEmpty := coll.Len() == 0
	replaced, err := coll.Upsert(entries)
	if err != nil {
		return err
	}
	if replaced > 0 {
		c.logger.WithField("count", replaced).Debug("added entries already known, replaced")
	}
	if wasEmpty && coll.Len() > 0 {
		c.store.GoToFolder(nil)
	}
	return nil
}

func (c *Controller) remove(id string) {
	s := c.store
	if !s.Collection.Remove(id) {
		return
	}
	s.Selection.Remove(id)
	if s.Drag != nil && s.Drag.HoveredID == id {
		s.Drag.HoveredID = ""
	}
	if s.CurrentFolder != nil && s.Collection.Get(*s.CurrentFolder) == nil {
		s.GoToFolder(nil)
	}
}

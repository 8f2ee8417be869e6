package page

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/model"
)

// Point is a pointer position in terminal cells.
type Point struct {
	X, Y int
}

// DragSession tracks one drag gesture from grab to release.
type DragSession struct {
	DraggedID string
	HoveredID string // "" = nothing hovered
	Pointer   Point
	Preview   Point // top-left anchor of the floating preview
	Visible   bool  // set on the first pointer move
}

// BeginDrag starts a session on the given entry, replacing any previous one.
func (c *Controller) BeginDrag(id string) error {
	if c.store.Collection.Get(id) == nil {
		return fmt.Errorf("begin drag %s: %w", id, ErrNotFound)
	}
	c.store.Drag = &DragSession{DraggedID: id}
	return nil
}

// PointerMove reveals the preview and centers it horizontally under the pointer.
func (c *Controller) PointerMove(x, y int) {
	d := c.store.Drag
	if d == nil {
		return
	}
	if !d.Visible {
		d.Visible = true
	}
	d.Pointer = Point{X: x, Y: y}
	d.Preview = Point{X: x - c.previewWidth/2, Y: y}
}

// Hover marks the entry under the pointer as the drop target.
func (c *Controller) Hover(id string) {
	if c.store.Drag == nil {
		return
	}
	c.store.Drag.HoveredID = id
}

// Unhover clears the drop target.
func (c *Controller) Unhover() {
	c.Hover("")
}

// ResetDrag ends the session without dropping.
func (c *Controller) ResetDrag() {
	c.store.Drag = nil
}

// PointerRelease resolves the drop. Dropping onto a folder moves the dragged
// entry into it; dropping onto any other sibling relocates the dragged entry
// to that sibling's index. The session always ends. The returned task, if
// any, must be run to persist the change.
func (c *Controller) PointerRelease() (*Task, error) {
	d := c.store.Drag
	if d == nil {
		return nil, nil
	}
	defer c.ResetDrag()

	coll := c.store.Collection
	dragged := coll.Get(d.DraggedID)
	if dragged == nil {
		return nil, fmt.Errorf("%w: dragged entry %s no longer exists", ErrInvalidDrop, d.DraggedID)
	}
	if d.HoveredID == "" || d.HoveredID == dragged.ID {
		return nil, nil
	}

	hovered := coll.Get(d.HoveredID)
	if hovered != nil && hovered.IsFolder() {
		return c.dropIntoFolder(*dragged, *hovered)
	}
	if hovered == nil {
		c.logger.WithField("hovered", d.HoveredID).Debug("drop target gone, nothing to reorder")
		return nil, nil
	}
	return c.dropOnSibling(*dragged, *hovered)
}

func (c *Controller) dropIntoFolder(dragged, folder model.Entry) (*Task, error) {
	coll := c.store.Collection
	if model.SameParent(dragged.Parent, &folder.ID) {
		return nil, nil
	}

	id, title := dragged.ID, dragged.Title
	newParent := folder.ID
	oldParent := model.CopyID(dragged.Parent)
	oldIndex := coll.SiblingIndex(id)

	if err := coll.Reparent(id, &newParent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDrop, err)
	}

	c.logger.WithFields(logrus.Fields{"id": id, "folder": newParent}).Debug("dropped into folder")

	return c.bind(&Task{
		Op:  OpEdit,
		IDs: []string{id},
		call: func(ctx context.Context, b bridge.Bridge) error {
			return b.Edit(ctx, id, title, &newParent)
		},
		undo: func(s *Store) {
			if err := s.Collection.Reparent(id, oldParent); err != nil {
				return
			}
			s.Collection.MoveSibling(id, oldIndex)
		},
	}), nil
}

func (c *Controller) dropOnSibling(dragged, hovered model.Entry) (*Task, error) {
	coll := c.store.Collection
	if !model.SameParent(dragged.Parent, hovered.Parent) {
		return nil, fmt.Errorf("%w: %s and %s are not siblings", ErrInvalidDrop, dragged.ID, hovered.ID)
	}

	id := dragged.ID
	oldIndex := coll.SiblingIndex(id)
	newIndex := coll.SiblingIndex(hovered.ID)
	if oldIndex == newIndex {
		return nil, nil
	}
	if _, err := coll.MoveSibling(id, newIndex); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDrop, err)
	}
	parent := model.CopyID(hovered.Parent)

	c.logger.WithFields(logrus.Fields{"id": id, "from": oldIndex, "to": newIndex}).Debug("reordered")

	return c.bind(&Task{
		Op:  OpReorder,
		IDs: []string{id},
		call: func(ctx context.Context, b bridge.Bridge) error {
			return b.Reorder(ctx, id, parent, oldIndex, newIndex)
		},
		undo: func(s *Store) {
			s.Collection.MoveSibling(id, oldIndex)
		},
	}), nil
}

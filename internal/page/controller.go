package page

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/model"
)

// ErrNotFound is model.ErrNotFound, so either matches with errors.Is.
var ErrNotFound = model.ErrNotFound

var (
	ErrInvalidDrop        = errors.New("invalid drop")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// DefaultPreviewWidth is the drag preview width in cells.
const DefaultPreviewWidth = 24

// DefaultNewFolderTitle names folders created from the drawer.
const DefaultNewFolderTitle = "New folder"

// Controller applies user gestures to the Store and produces the backend
// tasks that persist them.
type Controller struct {
	store          *Store
	bridge         bridge.Bridge
	previewWidth   int
	newFolderTitle string
	logger         logrus.FieldLogger
}

// ControllerParams holds parameters for creating a Controller.
type ControllerParams struct {
	Store          *Store // optional, a fresh one is created
	Bridge         bridge.Bridge
	PreviewWidth   int                // optional
	NewFolderTitle string             // optional
	Logger         logrus.FieldLogger // optional
}

// NewController creates a controller.
func NewController(params ControllerParams) *Controller {
	store := params.Store
	if store == nil {
		store = NewStore()
	}
	width := params.PreviewWidth
	if width <= 0 {
		width = DefaultPreviewWidth
	}
	title := params.NewFolderTitle
	if title == "" {
		title = DefaultNewFolderTitle
	}
	logger := params.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Controller{
		store:          store,
		bridge:         params.Bridge,
		previewWidth:   width,
		newFolderTitle: title,
		logger:         logger,
	}
}

// Store returns the page state.
func (c *Controller) Store() *Store {
	return c.store
}

// PreviewWidth returns the drag preview width in cells.
func (c *Controller) PreviewWidth() int {
	return c.previewWidth
}

// SetModifier records whether the command modifier is held.
func (c *Controller) SetModifier(held bool) {
	c.store.ModifierHeld = held
}

// SelectAll adds every visible entry to the selection.
func (c *Controller) SelectAll() {
	for _, e := range c.store.VisibleItems() {
		c.store.Selection.Add(e.ID)
	}
}

// DeselectAll clears the selection.
func (c *Controller) DeselectAll() {
	c.store.Selection.Clear()
}

// Toggle flips the selection state of one entry.
func (c *Controller) Toggle(id string) {
	c.store.Selection.Toggle(id)
}

// DeleteAllSelected requests deletion of every selected entry in one batch.
// The selection is cleared now and restored if the backend refuses.
// Entries stay visible until the backend confirms each removal.
func (c *Controller) DeleteAllSelected() *Task {
	if c.store.Selection.Len() == 0 {
		return nil
	}
	ids := c.store.Selection.IDs()
	c.store.Selection.Clear()
	return c.deleteTask(ids, func(s *Store) {
		for _, id := range ids {
			if s.Collection.Get(id) != nil {
				s.Selection.Add(id)
			}
		}
	})
}

// Delete requests deletion of a single entry.
func (c *Controller) Delete(id string) (*Task, error) {
	if c.store.Collection.Get(id) == nil {
		return nil, fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	return c.deleteTask([]string{id}, nil), nil
}

func (c *Controller) deleteTask(ids []string, undo func(*Store)) *Task {
	c.logger.WithField("count", len(ids)).Debug("delete requested")
	return c.bind(&Task{
		Op:  OpDelete,
		IDs: ids,
		call: func(ctx context.Context, b bridge.Bridge) error {
			return b.Delete(ctx, ids...)
		},
		undo: undo,
	})
}

// AddFolder requests a new folder in the current folder. The folder appears
// once the backend reports it.
func (c *Controller) AddFolder() *Task {
	return c.AddNamedFolder(c.newFolderTitle)
}

// AddNamedFolder requests a new folder with the given title in the current folder.
func (c *Controller) AddNamedFolder(title string) *Task {
	if strings.TrimSpace(title) == "" {
		title = c.newFolderTitle
	}
	parent := model.CopyID(c.store.CurrentFolder)
	return c.bind(&Task{
		Op: OpAddFolder,
		call: func(ctx context.Context, b bridge.Bridge) error {
			return b.AddFolder(ctx, title, parent)
		},
	})
}

// AddBookmark requests a new bookmark in the current folder.
func (c *Controller) AddBookmark(title, url string) (*Task, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("add bookmark: url is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = url
	}
	parent := model.CopyID(c.store.CurrentFolder)
	return c.bind(&Task{
		Op: OpAdd,
		call: func(ctx context.Context, b bridge.Bridge) error {
			return b.Add(ctx, title, url, parent)
		},
	}), nil
}

// Rename retitles an entry in place and requests the backend to persist it.
func (c *Controller) Rename(id, title string) (*Task, error) {
	e := c.store.Collection.Get(id)
	if e == nil {
		return nil, fmt.Errorf("rename %s: %w", id, ErrNotFound)
	}
	title = strings.TrimSpace(title)
	if title == "" || title == e.Title {
		return nil, nil
	}

	oldTitle := e.Title
	parent := model.CopyID(e.Parent)
	e.Title = title

	return c.bind(&Task{
		Op:  OpEdit,
		IDs: []string{id},
		call: func(ctx context.Context, b bridge.Bridge) error {
			return b.Edit(ctx, id, title, parent)
		},
		undo: func(s *Store) {
			if e := s.Collection.Get(id); e != nil && e.Title == title {
				e.Title = oldTitle
			}
		},
	}), nil
}

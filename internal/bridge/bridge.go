package bridge

import (
	"context"

	"github.com/nikbrunner/bmpage/internal/model"
)

// Bridge is the backend that owns durable bookmark state.
// Calls may run off the UI goroutine; results of mutations arrive later as
// Notifications on the subscription channel.
type Bridge interface {
	Delete(ctx context.Context, ids ...string) error
	AddFolder(ctx context.Context, title string, parent *string) error
	Add(ctx context.Context, title, url string, parent *string) error
	Edit(ctx context.Context, id, title string, parent *string) error
	Reorder(ctx context.Context, id string, parent *string, oldIndex, newIndex int) error
	Subscribe() (<-chan Notification, func())
}

// Notification is a change pushed by the backend.
// Exactly one of Added, AddedMany, Edited, Deleted.
type Notification interface {
	notification()
}

// Added carries a single new entry.
type Added struct {
	Entry model.Entry
}

// AddedMany carries a batch of new entries, e.g. the initial load.
type AddedMany struct {
	Entries []model.Entry
}

// Edited carries the full updated entry.
type Edited struct {
	Entry model.Entry
}

// Deleted names a removed entry.
type Deleted struct {
	ID string
}

func (Added) notification()     {}
func (AddedMany) notification() {}
func (Edited) notification()    {}
func (Deleted) notification()   {}

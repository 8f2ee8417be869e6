package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/storage"
)

// subscriberBuffer is the channel capacity per subscriber. Notifications
// beyond it wait in the subscriber's backlog.
const subscriberBuffer = 64

// Local is an in-process Bridge backed by a storage.Storage.
// Every mutation is persisted before its notification is published.
type Local struct {
	mu      sync.Mutex
	coll    *model.Collection
	storage storage.Storage
	logger  logrus.FieldLogger

	subs    map[int]*subscriber
	nextSub int
}

// LocalParams holds parameters for creating a Local bridge.
type LocalParams struct {
	Storage storage.Storage
	Logger  logrus.FieldLogger // optional
}

// NewLocal loads the collection from storage and returns a ready bridge.
func NewLocal(params LocalParams) (*Local, error) {
	logger := params.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	coll, err := params.Storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	return &Local{
		coll:    coll,
		storage: params.Storage,
		logger:  logger,
		subs:    make(map[int]*subscriber),
	}, nil
}

// Snapshot returns a copy of the authoritative collection.
func (l *Local) Snapshot() *model.Collection {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &model.Collection{Entries: cloneEntries(l.coll.Entries)}
}

// Subscribe registers a listener. The current contents are delivered first as
// a single AddedMany. The returned func unsubscribes and closes the channel.
func (l *Local) Subscribe() (<-chan Notification, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sub := newSubscriber(subscriberBuffer)
	id := l.nextSub
	l.nextSub++
	l.subs[id] = sub

	if l.coll.Len() > 0 {
		sub.send(AddedMany{Entries: cloneEntries(l.coll.Entries)})
	}

	return sub.ch, func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
		sub.close()
	}
}

// Delete removes the given entries. Folders take their whole subtree with them.
// Unknown IDs are ignored.
func (l *Local) Delete(ctx context.Context, ids ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var removed []string
	err := l.mutate(func() error {
		for _, id := range ids {
			for _, sub := range l.coll.Subtree(id) {
				if l.coll.Remove(sub) {
					removed = append(removed, sub)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.WithField("count", len(removed)).Debug("entries deleted")
	for _, id := range removed {
		l.publish(Deleted{ID: id})
	}
	return nil
}

// AddFolder creates a folder at the end of parent.
func (l *Local) AddFolder(ctx context.Context, title string, parent *string) error {
	return l.add(ctx, model.NewFolder(model.NewFolderParams{Title: title, Parent: parent}))
}

// Add creates a bookmark at the end of parent.
func (l *Local) Add(ctx context.Context, title, url string, parent *string) error {
	return l.add(ctx, model.NewBookmark(model.NewBookmarkParams{Title: title, URL: url, Parent: parent}))
}

func (l *Local) add(ctx context.Context, e model.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.mutate(func() error {
		if err := l.checkParent(e.Parent); err != nil {
			return err
		}
		e.Position = len(l.coll.Children(e.Parent))
		l.coll.Append(e)
		return nil
	})
	if err != nil {
		return fmt.Errorf("add %q: %w", e.Title, err)
	}

	l.logger.WithFields(logrus.Fields{"id": e.ID, "type": e.Type}).Debug("entry added")
	l.publish(Added{Entry: e})
	return nil
}

// Edit renames an entry and moves it to parent if that differs.
func (l *Local) Edit(ctx context.Context, id, title string, parent *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var updated model.Entry
	err := l.mutate(func() error {
		e := l.coll.Get(id)
		if e == nil {
			return model.ErrNotFound
		}
		e.Title = title
		if err := l.coll.Reparent(id, parent); err != nil {
			return err
		}
		updated = *l.coll.Get(id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("edit %s: %w", id, err)
	}

	l.logger.WithField("id", id).Debug("entry edited")
	l.publish(Edited{Entry: updated})
	return nil
}

// Reorder moves an entry to newIndex among the children of parent.
func (l *Local) Reorder(ctx context.Context, id string, parent *string, oldIndex, newIndex int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.mutate(func() error {
		e := l.coll.Get(id)
		if e == nil {
			return model.ErrNotFound
		}
		if !model.SameParent(e.Parent, parent) {
			return fmt.Errorf("entry is not a child of the given parent: %w", model.ErrNotFound)
		}
		if current := l.coll.SiblingIndex(id); current != oldIndex {
			l.logger.WithFields(logrus.Fields{
				"id":       id,
				"expected": oldIndex,
				"actual":   current,
			}).Warn("reorder from stale index")
		}
		_, err := l.coll.MoveSibling(id, newIndex)
		return err
	})
	if err != nil {
		return fmt.Errorf("reorder %s: %w", id, err)
	}
	return nil
}

// mutate applies fn and persists the result, restoring the previous
// entries if either step fails. Caller holds l.mu.
func (l *Local) mutate(fn func() error) error {
	prev := cloneEntries(l.coll.Entries)
	if err := fn(); err != nil {
		l.coll.Entries = prev
		return err
	}
	if err := l.storage.Save(l.coll); err != nil {
		l.coll.Entries = prev
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func (l *Local) checkParent(parent *string) error {
	if parent == nil {
		return nil
	}
	p := l.coll.Get(*parent)
	if p == nil {
		return model.ErrNotFound
	}
	if !p.IsFolder() {
		return model.ErrNotFolder
	}
	return nil
}

// publish fans n out to every subscriber without blocking. Caller holds l.mu,
// which keeps notifications in mutation order.
func (l *Local) publish(n Notification) {
	for _, sub := range l.subs {
		sub.send(n)
	}
}

func cloneEntries(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	return out
}

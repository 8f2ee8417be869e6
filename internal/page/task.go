package page

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/bmpage/internal/bridge"
)

// Op names the backend call a Task makes.
type Op string

const (
	OpEdit      Op = "edit"
	OpReorder   Op = "reorder"
	OpDelete    Op = "delete"
	OpAddFolder Op = "add folder"
	OpAdd       Op = "add"
)

// Task is a pending backend call. Local state has already been updated
// optimistically; Complete rolls it back if the call fails.
type Task struct {
	Op  Op
	IDs []string // entries the call is about, if any

	bridge bridge.Bridge
	call   func(ctx context.Context, b bridge.Bridge) error
	undo   func(s *Store)
}

// Run performs the backend call. It is safe to call off the UI goroutine.
func (t *Task) Run(ctx context.Context) error {
	if t.bridge == nil {
		return fmt.Errorf("%s: no backend", t.Op)
	}
	return t.call(ctx, t.bridge)
}

func (c *Controller) bind(t *Task) *Task {
	t.bridge = c.bridge
	return t
}

// Complete reports the outcome of a task run. On failure the optimistic
// change is reverted and the error is returned wrapped in
// ErrBackendUnavailable. Must run on the goroutine that owns the Store.
func (c *Controller) Complete(t *Task, err error) error {
	if err == nil {
		return nil
	}
	if t.undo != nil {
		t.undo(c.store)
		c.store.ClampCursor()
	}
	c.logger.WithFields(logrus.Fields{
		"op":  t.Op,
		"ids": t.IDs,
	}).WithError(err).Warn("backend call failed, local change reverted")

	if errors.Is(err, ErrBackendUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", t.Op, ErrBackendUnavailable, err)
}

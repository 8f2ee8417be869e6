package page_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/page"
	"github.com/nikbrunner/bmpage/internal/storage"
)

func TestApply_RejectsBadParent(t *testing.T) {
	tests := []struct {
		name string
		n    bridge.Notification
		want error
	}{
		{
			"added under a bookmark",
			bridge.Added{Entry: model.Entry{ID: "x", Title: "X", Parent: stringPtr("2")}},
			model.ErrNotFolder,
		},
		{
			"added under a missing folder",
			bridge.Added{Entry: model.Entry{ID: "x", Title: "X", Parent: stringPtr("nope")}},
			page.ErrNotFound,
		},
		{
			"batch with one orphan",
			bridge.AddedMany{Entries: []model.Entry{
				{ID: "x", Title: "X"},
				{ID: "y", Title: "Y", Parent: stringPtr("3")},
			}},
			model.ErrNotFolder,
		},
		{
			"edited into a bookmark",
			bridge.Edited{Entry: model.Entry{ID: "4", Title: "Four", Parent: stringPtr("2")}},
			model.ErrNotFolder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t)
			coll := c.Store().Collection

			err := c.Apply(tt.n)
			assert.Assert(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, coll.Len(), 4)
			assert.Check(t, coll.Get("x") == nil)
			assert.Equal(t, *coll.Get("4").Parent, "1")
		})
	}
}

func TestApply_AddedManyChildBeforeParent(t *testing.T) {
	c := page.NewController(page.ControllerParams{})
	s := c.Store()

	assert.NilError(t, c.Apply(bridge.AddedMany{Entries: []model.Entry{
		{ID: "b", Title: "B", Parent: stringPtr("f"), Position: 0},
		{ID: "f", Title: "F", Type: model.TypeFolder, Position: 0},
	}}))

	s.GoToFolder(stringPtr("f"))
	assert.DeepEqual(t, visibleIDs(s), []string{"b"})
}

// A reorder the backend has stored must survive a fresh subscription.
func TestApply_SnapshotKeepsStoredOrder(t *testing.T) {
	ctx := context.Background()
	store := storage.NewJSONStorage(filepath.Join(t.TempDir(), "bookmarks.json"))
	local, err := bridge.NewLocal(bridge.LocalParams{Storage: store})
	assert.NilError(t, err)
	for _, title := range []string{"A", "B", "C"} {
		assert.NilError(t, local.Add(ctx, title, "https://"+title+".example", nil))
	}

	first := page.NewController(page.ControllerParams{Bridge: local})
	ch, unsubscribe := local.Subscribe()
	assert.NilError(t, first.Apply(<-ch))

	ids := visibleIDs(first.Store())
	task, err := drag(t, first, ids[2], ids[0])
	assert.NilError(t, err)
	assert.NilError(t, first.Complete(task, task.Run(ctx)))
	unsubscribe()

	var stored []string
	for _, e := range local.Snapshot().Children(nil) {
		stored = append(stored, e.ID)
	}
	assert.DeepEqual(t, stored, []string{ids[2], ids[0], ids[1]})
	assert.DeepEqual(t, visibleIDs(first.Store()), stored)

	second := page.NewController(page.ControllerParams{Bridge: local})
	ch, unsubscribe = local.Subscribe()
	defer unsubscribe()
	assert.NilError(t, second.Apply(<-ch))
	assert.DeepEqual(t, visibleIDs(second.Store()), stored)
}

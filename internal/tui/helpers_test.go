package tui_test

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/page"
	"github.com/nikbrunner/bmpage/internal/storage"
	"github.com/nikbrunner/bmpage/internal/tui"
	"github.com/nikbrunner/bmpage/internal/tui/layout"
)

func stringPtr(s string) *string { return &s }

// brokenStorage loads from the wrapped storage but refuses to save.
type brokenStorage struct {
	storage.Storage
}

func (brokenStorage) Save(*model.Collection) error {
	return errors.New("disk full")
}

// harness wires an App to an in-process backend the way the binary does.
type harness struct {
	t      *testing.T
	app    tui.App
	local  *bridge.Local
	ch     <-chan bridge.Notification
	copied []string
	opened []string
}

// seedCollection returns a root holding [Dev (folder), News, Mail] with
// Dev holding [Go].
func seedCollection() *model.Collection {
	coll := model.NewCollection()
	coll.Append(model.Entry{ID: "f1", Title: "Dev", Type: model.TypeFolder, Position: 0})
	coll.Append(model.Entry{ID: "b1", Title: "Go", URL: "https://go.dev", Type: model.TypeBookmark, Parent: stringPtr("f1")})
	coll.Append(model.Entry{ID: "b2", Title: "News", URL: "https://news.example", Type: model.TypeBookmark, Position: 1})
	coll.Append(model.Entry{ID: "b3", Title: "Mail", URL: "https://mail.example", Type: model.TypeBookmark, Position: 2})
	return coll
}

func newHarness(t *testing.T, coll *model.Collection) *harness {
	return newHarnessWith(t, coll, nil)
}

// newHarnessWith seeds a JSON file with coll. wrap, if set, decorates the
// storage the backend writes through.
func newHarnessWith(t *testing.T, coll *model.Collection, wrap func(storage.Storage) storage.Storage) *harness {
	t.Helper()
	var store storage.Storage = storage.NewJSONStorage(filepath.Join(t.TempDir(), "bookmarks.json"))
	if err := store.Save(coll); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if wrap != nil {
		store = wrap(store)
	}

	local, err := bridge.NewLocal(bridge.LocalParams{Storage: store})
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	ch, unsubscribe := local.Subscribe()
	t.Cleanup(unsubscribe)

	h := &harness{t: t, local: local, ch: ch}
	ctrl := page.NewController(page.ControllerParams{Bridge: local})
	cfg := layout.DefaultConfig()
	h.app = tui.NewApp(tui.AppParams{
		Controller:    ctrl,
		Notifications: ch,
		LayoutConfig:  &cfg,
		CopyText: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
		OpenURL: func(s string) error {
			h.opened = append(h.opened, s)
			return nil
		},
	}).WithDimensions(100, 30)

	h.drain()
	return h
}

// send feeds messages to the app and returns the command of the last one.
func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = h.app.Update(msg)
		h.app = m.(tui.App)
	}
	return cmd
}

// keys sends each rune as its own key press.
func (h *harness) keys(s string) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, r := range s {
		cmd = h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return cmd
}

// run executes a task command, feeds its result back and delivers every
// notification the backend published meanwhile.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		h.t.Fatal("expected a command")
	}
	h.send(cmd())
	h.drain()
}

func (h *harness) drain() {
	h.t.Helper()
	for {
		select {
		case n, ok := <-h.ch:
			if !ok {
				return
			}
			h.send(n)
		default:
			return
		}
	}
}

func (h *harness) view() string {
	return layout.StripANSI(h.app.View())
}

func (h *harness) visibleIDs() []string {
	var ids []string
	for _, e := range h.app.Store().VisibleItems() {
		ids = append(ids, e.ID)
	}
	return ids
}

func backendRootIDs(l *bridge.Local) []string {
	var ids []string
	for _, e := range l.Snapshot().Children(nil) {
		ids = append(ids, e.ID)
	}
	return ids
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func press(x, y int, ctrl bool) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Ctrl: ctrl, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int, ctrl bool) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Ctrl: ctrl, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

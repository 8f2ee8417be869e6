package picker_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/picker"
	"github.com/nikbrunner/bmpage/internal/search"
)

func stringPtr(s string) *string { return &s }

// nestedCollection holds Dev/Go/{GitHub Docs} and a root level GitLab.
func nestedCollection() *model.Collection {
	c := model.NewCollection()
	c.AppendMany([]model.Entry{
		{ID: "f1", Title: "Dev", Type: model.TypeFolder, Position: 0},
		{ID: "f2", Title: "Go", Type: model.TypeFolder, Parent: stringPtr("f1"), Position: 0},
		{ID: "b1", Title: "GitHub Docs", URL: "https://docs.github.com", Type: model.TypeBookmark, Parent: stringPtr("f2"), Position: 0},
		{ID: "b2", Title: "GitLab", URL: "https://gitlab.com", Type: model.TypeBookmark, Position: 1},
	})
	return c
}

func send(p picker.Picker, msgs ...tea.Msg) (picker.Picker, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = p.Update(msg)
		p = m.(picker.Picker)
	}
	return p, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestItems_CarryFolderPath(t *testing.T) {
	coll := nestedCollection()
	items := picker.Items(coll, search.FuzzySearchBookmarks(coll, "git"))

	folders := map[string]string{}
	for _, it := range items {
		folders[it.Entry.ID] = it.Folder
		assert.Check(t, len(it.Matched) > 0)
	}
	assert.DeepEqual(t, folders, map[string]string{"b1": "Dev / Go", "b2": ""})
}

func TestPicker_ViewShowsFolderAndURL(t *testing.T) {
	coll := nestedCollection()
	p := picker.New(picker.Items(coll, search.FuzzySearchBookmarks(coll, "docs")), "docs")

	view := ansi.Strip(p.View())
	assert.Check(t, is.Contains(view, "Search: docs (1 results)"))
	assert.Check(t, is.Contains(view, "> GitHub Docs"))
	assert.Check(t, is.Contains(view, "Dev / Go  https://docs.github.com"))
}

func TestPicker_Navigate(t *testing.T) {
	items := []picker.Item{
		{Entry: model.Entry{ID: "b1", Title: "GitHub", URL: "https://github.com"}},
		{Entry: model.Entry{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"}},
	}

	tests := []struct {
		name string
		keys []tea.Msg
		want string
	}{
		{"j moves down", []tea.Msg{runes("j")}, "b2"},
		{"down arrow moves down", []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}}, "b2"},
		{"k at top stays", []tea.Msg{runes("k")}, "b1"},
		{"j at bottom stays", []tea.Msg{runes("j"), runes("j"), runes("j")}, "b2"},
		{"up arrow returns", []tea.Msg{runes("j"), tea.KeyMsg{Type: tea.KeyUp}}, "b1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := send(picker.New(items, "git"), tt.keys...)
			p, cmd := send(p, tea.KeyMsg{Type: tea.KeyEnter})
			assert.Assert(t, cmd != nil, "enter quits")
			got := p.SelectedEntry()
			assert.Assert(t, got != nil)
			assert.Equal(t, got.ID, tt.want)
		})
	}
}

func TestPicker_Cancel(t *testing.T) {
	items := []picker.Item{{Entry: model.Entry{ID: "b1", Title: "GitHub"}}}

	for _, k := range []tea.Msg{tea.KeyMsg{Type: tea.KeyEsc}, runes("q")} {
		p, cmd := send(picker.New(items, "git"), k)
		assert.Check(t, p.Cancelled())
		assert.Check(t, cmd != nil)
		assert.Check(t, p.SelectedEntry() == nil)
	}
}

func TestPicker_NoSelectionBeforeEnter(t *testing.T) {
	items := []picker.Item{{Entry: model.Entry{ID: "b1", Title: "GitHub"}}}
	p := picker.New(items, "git")
	assert.Check(t, p.SelectedEntry() == nil)
	assert.Check(t, !p.Cancelled())
}

func TestPicker_ScrollsWithCursor(t *testing.T) {
	var items []picker.Item
	for _, title := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"} {
		items = append(items, picker.Item{Entry: model.Entry{ID: title, Title: title}})
	}

	// 10 lines leave room for three two-line items
	p, _ := send(picker.New(items, "a"), tea.WindowSizeMsg{Width: 40, Height: 10})
	view := ansi.Strip(p.View())
	assert.Check(t, is.Contains(view, "Charlie"))
	assert.Check(t, !strings.Contains(view, "Delta"))
	assert.Check(t, is.Contains(view, "(3 more)"))

	p, _ = send(p, runes("j"), runes("j"), runes("j"), runes("j"))
	view = ansi.Strip(p.View())
	assert.Check(t, is.Contains(view, "> Echo"))
	assert.Check(t, !strings.Contains(view, "Bravo"))
	assert.Check(t, is.Contains(view, "Charlie"))
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/tui/layout"
)

// drawerSearchRow is the drawer row holding the search input.
const drawerSearchRow = 1

func (a App) geometry() layout.PageGeometry {
	return layout.CalculatePageGeometry(a.width, a.height, a.layoutConfig)
}

// listOffset returns the index of the first visible list row.
func (a App) listOffset(total int) int {
	g := a.geometry()
	return layout.CalculateViewportOffset(a.ctrl.Store().Cursor, total, g.PaneHeight)
}

// entryAt returns the visible entry under a screen cell and its index.
func (a App) entryAt(x, y int) (*model.Entry, int) {
	row, ok := a.geometry().ListRowAt(x, y)
	if !ok {
		return nil, -1
	}
	items := a.ctrl.Store().VisibleItems()
	i := a.listOffset(len(items)) + row
	if i >= len(items) {
		return nil, -1
	}
	return &items[i], i
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.mode != ModeNormal {
		return a, nil
	}
	a.ctrl.SetModifier(msg.Ctrl || msg.Alt)
	store := a.ctrl.Store()

	if tea.MouseEvent(msg).IsWheel() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			store.MoveCursor(-1)
		case tea.MouseButtonWheelDown:
			store.MoveCursor(1)
		}
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		return a.mousePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if !a.gesture.Pressed {
			return a, nil
		}
		a.gesture.Moved = true
		a.ctrl.PointerMove(msg.X, msg.Y)
		if e, _ := a.entryAt(msg.X, msg.Y); e != nil {
			a.ctrl.Hover(e.ID)
		} else {
			a.ctrl.Unhover()
		}
		return a, nil

	case tea.MouseActionRelease:
		if !a.gesture.Pressed {
			return a, nil
		}
		moved := a.gesture.Moved
		a.gesture.Reset()
		if moved {
			return a.release()
		}
		var id string
		if store.Drag != nil {
			id = store.Drag.DraggedID
		}
		a.ctrl.ResetDrag()
		return a.click(id)
	}

	return a, nil
}

func (a App) mousePress(x, y int) (tea.Model, tea.Cmd) {
	g := a.geometry()
	a.keyboardDrag = false

	if e, _ := a.entryAt(x, y); e != nil {
		if err := a.ctrl.BeginDrag(e.ID); err != nil {
			return a, nil
		}
		a.gesture.Pressed = true
		a.gesture.Moved = false
		return a, nil
	}

	if row, ok := g.DrawerRowAt(x, y); ok {
		if row == drawerSearchRow {
			return a.openSearch()
		}
		return a.runDrawerAction(row - a.layoutConfig.Pane.DrawerHeaderLines)
	}

	if col, ok := g.TreeBarColumnAt(x, y); ok {
		crumbs := a.crumbs(a.treeBarWidth())
		labels := make([]string, len(crumbs))
		for i, c := range crumbs {
			labels[i] = c.Label
		}
		if i := layout.SegmentAt(labels, crumbSeparator, col); i >= 0 {
			a.ctrl.Store().GoToFolder(crumbs[i].Target)
		}
	}
	return a, nil
}

// click handles a press and release without movement on an entry.
func (a App) click(id string) (tea.Model, tea.Cmd) {
	store := a.ctrl.Store()
	e := store.Collection.Get(id)
	if e == nil {
		return a, nil
	}

	if store.ModifierHeld {
		a.ctrl.Toggle(id)
		return a, nil
	}
	if e.IsFolder() {
		store.GoToFolder(&e.ID)
		return a, nil
	}
	for i, item := range store.VisibleItems() {
		if item.ID == id {
			store.Cursor = i
			break
		}
	}
	return a, nil
}

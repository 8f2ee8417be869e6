package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type drawerActionKind int

const (
	actionAdd drawerActionKind = iota
	actionNewFolder
	actionDivider
	actionSelectAll
	actionDeselectAll
	actionDeleteSelected
)

type drawerAction struct {
	Kind  drawerActionKind
	Label string
}

// drawerActions lists the drawer entries for the current view. Creation
// actions are offered only while nothing is selected.
func drawerActions(itemCount, selectedCount int) []drawerAction {
	var actions []drawerAction
	if selectedCount == 0 {
		actions = append(actions,
			drawerAction{Kind: actionAdd, Label: "Add bookmark"},
			drawerAction{Kind: actionNewFolder, Label: "New folder"},
		)
		if itemCount > 0 {
			actions = append(actions, drawerAction{Kind: actionDivider})
		}
	}
	if itemCount > 0 && selectedCount != itemCount {
		actions = append(actions, drawerAction{Kind: actionSelectAll, Label: "Select all"})
	}
	if selectedCount > 0 {
		actions = append(actions,
			drawerAction{Kind: actionDeselectAll, Label: "Deselect all"},
			drawerAction{Kind: actionDeleteSelected, Label: fmt.Sprintf("Delete selected (%d)", selectedCount)},
		)
	}
	return actions
}

func (a App) currentDrawerActions() []drawerAction {
	store := a.ctrl.Store()
	return drawerActions(len(store.VisibleItems()), store.Selection.Len())
}

// runDrawerAction performs the drawer entry at index i.
func (a App) runDrawerAction(i int) (tea.Model, tea.Cmd) {
	actions := a.currentDrawerActions()
	if i < 0 || i >= len(actions) {
		return a, nil
	}

	switch actions[i].Kind {
	case actionAdd:
		return a.openAddBookmark()
	case actionNewFolder:
		return a, runTask(a.ctrl.AddFolder())
	case actionSelectAll:
		a.ctrl.SelectAll()
	case actionDeselectAll:
		a.ctrl.DeselectAll()
	case actionDeleteSelected:
		return a.deleteAction()
	}
	return a, nil
}

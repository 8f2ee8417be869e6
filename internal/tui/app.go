package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/page"
	"github.com/nikbrunner/bmpage/internal/tui/layout"
)

// App is the main bubbletea model for the bookmarks page.
type App struct {
	ctrl          *page.Controller
	notifications <-chan bridge.Notification
	keys          KeyMap
	styles        Styles
	layoutConfig  layout.LayoutConfig
	logger        logrus.FieldLogger
	copyText      func(string) error
	openURL       func(string) error

	mode    Mode
	modal   ModalState
	search  SearchState
	gesture GestureState

	// Drag started with the grab key; cursor movement picks the target
	keyboardDrag bool

	// For gg command
	lastKeyWasG bool

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Controller    *page.Controller
	Notifications <-chan bridge.Notification // optional, backend change feed
	Keys          *KeyMap                    // optional, uses default if nil
	Styles        *Styles                    // optional, uses default if nil
	LayoutConfig  *layout.LayoutConfig       // optional, uses default if nil
	Logger        logrus.FieldLogger         // optional
	CopyText      func(string) error         // optional, system clipboard
	OpenURL       func(string) error         // optional, system browser
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	ctrl := params.Controller
	if ctrl == nil {
		ctrl = page.NewController(page.ControllerParams{Logger: logger})
	}

	copyText := params.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	openURL := params.OpenURL
	if openURL == nil {
		openURL = OpenURL
	}

	return App{
		ctrl:          ctrl,
		notifications: params.Notifications,
		keys:          keys,
		styles:        styles,
		layoutConfig:  layoutConfig,
		logger:        logger,
		copyText:      copyText,
		openURL:       openURL,
		modal:         NewModalState(layoutConfig),
		search:        NewSearchState(layoutConfig),
		width:         80,
		height:        24,
	}
}

// WithDimensions returns a copy of the app sized as if a WindowSizeMsg arrived.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Store returns the page state.
func (a App) Store() *page.Store {
	return a.ctrl.Store()
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.ctrl.Store().Cursor
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the status message text.
func (a App) Message() string {
	return a.messageText
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.notifications == nil {
		return nil
	}
	return listen(a.notifications)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case bridge.Notification:
		if err := a.ctrl.Apply(msg); err != nil {
			a.logger.WithError(err).Warn("notification ignored")
		}
		if a.notifications == nil {
			return a, nil
		}
		return a, listen(a.notifications)

	case subscriptionClosedMsg:
		a.logger.Debug("notification feed closed")
		return a, nil

	case taskDoneMsg:
		if err := a.ctrl.Complete(msg.task, msg.err); err != nil {
			a.setMessage(MessageError, err.Error())
		}
		return a, nil

	case openDoneMsg:
		if msg.err != nil {
			a.setMessage(MessageError, "Open failed: "+msg.err.Error())
		}
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.handleSearchKey(msg)
		case ModeAddBookmark, ModeRename:
			return a.handleModalKey(msg)
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		}
		return a.handleNormalKey(msg)
	}

	return a, nil
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := a.ctrl.Store()
	a.messageText = ""

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			store.Cursor = 0
			a.lastKeyWasG = false
			a.hoverCursor()
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		store.MoveCursor(1)
		a.hoverCursor()

	case key.Matches(msg, a.keys.Up):
		store.MoveCursor(-1)
		a.hoverCursor()

	case key.Matches(msg, a.keys.Bottom):
		store.Cursor = len(store.VisibleItems()) - 1
		store.ClampCursor()
		a.hoverCursor()

	case key.Matches(msg, a.keys.Right):
		if e := store.CursorEntry(); e != nil && e.IsFolder() {
			store.GoToFolder(&e.ID)
			a.hoverCursor()
		}

	case key.Matches(msg, a.keys.Left):
		store.GoUp()
		a.hoverCursor()

	case key.Matches(msg, a.keys.Toggle):
		if e := store.CursorEntry(); e != nil {
			a.ctrl.Toggle(e.ID)
		}

	case key.Matches(msg, a.keys.SelectAll):
		a.ctrl.SelectAll()

	case key.Matches(msg, a.keys.Cancel):
		switch {
		case store.Drag != nil:
			a.ctrl.ResetDrag()
			a.keyboardDrag = false
			a.setMessage(MessageInfo, "Move cancelled")
		case store.Selection.Len() > 0:
			a.ctrl.DeselectAll()
		case store.Query != "":
			a.clearSearch()
		}

	case key.Matches(msg, a.keys.Delete):
		return a.deleteAction()

	case key.Matches(msg, a.keys.AddFolder):
		return a, runTask(a.ctrl.AddFolder())

	case key.Matches(msg, a.keys.AddBookmark):
		return a.openAddBookmark()

	case key.Matches(msg, a.keys.Rename):
		if e := store.CursorEntry(); e != nil {
			a.modal.ResetInputs()
			a.modal.EditItemID = e.ID
			a.modal.TitleInput.SetValue(e.Title)
			a.modal.TitleInput.CursorEnd()
			a.mode = ModeRename
			cmd := a.modal.TitleInput.Focus()
			return a, cmd
		}

	case key.Matches(msg, a.keys.Search):
		return a.openSearch()

	case key.Matches(msg, a.keys.Grab):
		if e := store.CursorEntry(); e != nil {
			if err := a.ctrl.BeginDrag(e.ID); err != nil {
				a.setMessage(MessageError, err.Error())
				return a, nil
			}
			a.keyboardDrag = true
			a.hoverCursor()
			a.setMessage(MessageInfo, fmt.Sprintf("Moving %q: pick a target, p to drop", e.Title))
		}

	case key.Matches(msg, a.keys.Drop):
		if !a.keyboardDrag {
			return a, nil
		}
		a.keyboardDrag = false
		return a.release()

	case key.Matches(msg, a.keys.YankURL):
		e := store.CursorEntry()
		if e == nil || e.IsFolder() {
			return a, nil
		}
		if err := a.copyText(e.URL); err != nil {
			a.setMessage(MessageError, "Copy failed: "+err.Error())
		} else {
			a.setMessage(MessageSuccess, "Copied URL")
		}

	case key.Matches(msg, a.keys.Open):
		e := store.CursorEntry()
		if e == nil || e.IsFolder() {
			return a, nil
		}
		return a, openCmd(a.openURL, e.URL)

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// hoverCursor retargets a keyboard drag at the entry under the cursor and
// pins the preview to the right edge of that row.
func (a *App) hoverCursor() {
	if !a.keyboardDrag {
		return
	}
	store := a.ctrl.Store()
	e := store.CursorEntry()
	if e == nil {
		a.ctrl.Unhover()
		return
	}
	a.ctrl.Hover(e.ID)

	g := a.geometry()
	row := store.Cursor - a.listOffset(len(store.VisibleItems()))
	a.ctrl.PointerMove(g.ListX+g.ListWidth-a.ctrl.PreviewWidth()/2, g.ContentY+row)
}

// release ends the current drag and dispatches its backend call.
func (a App) release() (tea.Model, tea.Cmd) {
	task, err := a.ctrl.PointerRelease()
	if err != nil {
		a.setMessage(MessageWarning, err.Error())
		return a, nil
	}
	a.messageText = ""
	return a, runTask(task)
}

func (a App) deleteAction() (tea.Model, tea.Cmd) {
	store := a.ctrl.Store()
	if store.Selection.Len() > 0 {
		n := store.Selection.Len()
		a.setMessage(MessageInfo, fmt.Sprintf("Deleting %d items", n))
		return a, runTask(a.ctrl.DeleteAllSelected())
	}
	e := store.CursorEntry()
	if e == nil {
		return a, nil
	}
	task, err := a.ctrl.Delete(e.ID)
	if err != nil {
		a.setMessage(MessageError, err.Error())
		return a, nil
	}
	return a, runTask(task)
}

func (a App) openAddBookmark() (tea.Model, tea.Cmd) {
	a.modal.ResetInputs()
	a.mode = ModeAddBookmark
	cmd := a.modal.TitleInput.Focus()
	return a, cmd
}

func (a App) openSearch() (tea.Model, tea.Cmd) {
	a.mode = ModeSearch
	a.search.Input.SetValue(a.ctrl.Store().Query)
	a.search.Input.CursorEnd()
	cmd := a.search.Input.Focus()
	return a, cmd
}

func (a *App) clearSearch() {
	a.search.Input.Reset()
	store := a.ctrl.Store()
	store.Query = ""
	store.ClampCursor()
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.search.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	case tea.KeyEsc:
		a.search.Input.Blur()
		a.clearSearch()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	store := a.ctrl.Store()
	store.Query = a.search.Input.Value()
	store.Cursor = 0
	return a, cmd
}

func (a App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.modal.ResetInputs()
		a.mode = ModeNormal
		return a, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if a.mode != ModeAddBookmark {
			return a, nil
		}
		if a.modal.TitleInput.Focused() {
			a.modal.TitleInput.Blur()
			cmd := a.modal.URLInput.Focus()
			return a, cmd
		}
		a.modal.URLInput.Blur()
		cmd := a.modal.TitleInput.Focus()
		return a, cmd

	case tea.KeyEnter:
		return a.submitModal()
	}

	var cmd tea.Cmd
	if a.modal.URLInput.Focused() {
		a.modal.URLInput, cmd = a.modal.URLInput.Update(msg)
	} else {
		a.modal.TitleInput, cmd = a.modal.TitleInput.Update(msg)
	}
	return a, cmd
}

func (a App) submitModal() (tea.Model, tea.Cmd) {
	var (
		task *page.Task
		err  error
	)
	switch a.mode {
	case ModeAddBookmark:
		task, err = a.ctrl.AddBookmark(a.modal.TitleInput.Value(), a.modal.URLInput.Value())
	case ModeRename:
		task, err = a.ctrl.Rename(a.modal.EditItemID, a.modal.TitleInput.Value())
	}
	if err != nil {
		a.setMessage(MessageError, err.Error())
		return a, nil
	}

	a.modal.ResetInputs()
	a.mode = ModeNormal
	return a, runTask(task)
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

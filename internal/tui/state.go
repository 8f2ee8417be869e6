package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/bmpage/internal/tui/layout"
)

// Mode is the input mode of the page.
type Mode int

const (
	ModeNormal      Mode = iota
	ModeSearch           // drawer search input focused
	ModeAddBookmark      // title + URL modal
	ModeRename           // title modal
	ModeHelp
)

// MessageType controls how the status message is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// ModalState holds state for the add and rename modals.
type ModalState struct {
	TitleInput textinput.Model
	URLInput   textinput.Model
	EditItemID string // entry being renamed
}

// NewModalState creates a new ModalState with initialized inputs.
func NewModalState(cfg layout.LayoutConfig) ModalState {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = cfg.Input.TitleCharLimit
	titleInput.Width = cfg.Input.StandardWidth

	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.StandardWidth

	return ModalState{
		TitleInput: titleInput,
		URLInput:   urlInput,
	}
}

// ResetInputs clears all modal inputs for a new modal session.
func (m *ModalState) ResetInputs() {
	m.TitleInput.Reset()
	m.URLInput.Reset()
	m.TitleInput.Blur()
	m.URLInput.Blur()
	m.EditItemID = ""
}

// SearchState holds the drawer search input.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a new SearchState with initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search"
	input.Prompt = "/"
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// GestureState tracks one mouse press until its release.
type GestureState struct {
	Pressed bool // left button went down on an entry
	Moved   bool // pointer moved while pressed
}

// Reset forgets the current gesture.
func (g *GestureState) Reset() {
	g.Pressed = false
	g.Moved = false
}

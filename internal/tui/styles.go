package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App              lipgloss.Style
	Pane             lipgloss.Style
	PaneActive       lipgloss.Style
	Title            lipgloss.Style
	Item             lipgloss.Style
	ItemCursor       lipgloss.Style
	ItemMarked       lipgloss.Style
	ItemMarkedCursor lipgloss.Style
	ItemDropTarget   lipgloss.Style // hovered entry while dragging
	ItemDragged      lipgloss.Style // entry being dragged
	DrawerAction     lipgloss.Style
	Divider          lipgloss.Style
	DragPreview      lipgloss.Style
	URL              lipgloss.Style
	Help             lipgloss.Style
	Empty            lipgloss.Style
	HintKey          lipgloss.Style // Key portion of hints (e.g., "space", "j/k")
	HintDesc         lipgloss.Style // Description portion of hints (e.g., "select", "move")
	HintLabel        lipgloss.Style // Status prefix in the help bar
	TreeBar          lipgloss.Style // Folder path above the panes
	TreeBarCurrent   lipgloss.Style // Last tree bar segment
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	marked := lipgloss.AdaptiveColor{Light: "#D0D8D8", Dark: "#2F3A3A"}  // selection background
	dark := lipgloss.Color("#1A1A1A")

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemCursor: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(dark),

		ItemMarked: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(marked).
			Foreground(primary),

		ItemMarkedCursor: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(dark).
			Bold(true),

		ItemDropTarget: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(accent).
			Underline(true).
			Bold(true),

		ItemDragged: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(subtle).
			Faint(true),

		DrawerAction: lipgloss.NewStyle().
			Foreground(primary),

		Divider: lipgloss.NewStyle().
			Foreground(border),

		DragPreview: lipgloss.NewStyle().
			Background(accent).
			Foreground(dark).
			Padding(0, 1),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(accent),

		TreeBar: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),

		TreeBarCurrent: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/tui/layout"
)

const (
	rootCrumb      = "Bookmarks"
	crumbSeparator = " / "
	markedPrefix   = "▸ "
	plainPrefix    = "  "
)

// crumb is one tree bar segment and the folder it navigates to.
type crumb struct {
	Label  string
	Target *string // nil = root
}

// View implements tea.Model.
func (a App) View() string {
	view := a.renderView()

	if d := a.ctrl.Store().Drag; d != nil && d.Visible {
		view = layout.Overlay(view, a.renderDragPreview(), d.Preview.X, d.Preview.Y)
	}

	switch a.mode {
	case ModeAddBookmark, ModeRename:
		view = a.overlayCentered(view, a.renderModal())
	case ModeHelp:
		view = a.overlayCentered(view, a.renderHelpOverlay())
	}
	return view
}

// renderView lays out the tree bar, the drawer, the list and the help bar.
func (a App) renderView() string {
	g := a.geometry()

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderDrawer(g),
		a.renderList(g),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderTreeBar(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) treeBarWidth() int {
	p := a.layoutConfig.Page
	return a.width - p.PaddingLeft - p.PaddingRight - p.TreeBarIndent
}

// crumbs returns the tree bar segments for the current folder. When the full
// path does not fit, the middle folders fold into a single "..." segment that
// leads to the deepest folded one.
func (a App) crumbs(maxWidth int) []crumb {
	store := a.ctrl.Store()
	out := []crumb{{Label: rootCrumb}}
	for _, f := range store.Collection.Path(store.CurrentFolder) {
		out = append(out, crumb{Label: f.Title, Target: model.CopyID(&f.ID)})
	}

	if crumbsWidth(out) <= maxWidth || len(out) <= 3 {
		return out
	}

	last := out[len(out)-1]
	folded := []crumb{out[0], {Label: a.layoutConfig.Text.Ellipsis, Target: out[len(out)-2].Target}, last}
	if w := crumbsWidth(folded); w > maxWidth {
		room := maxWidth - (w - layout.VisibleLength(last.Label))
		folded[2].Label, _ = layout.TruncateText(last.Label, room, a.layoutConfig.Text)
	}
	return folded
}

func crumbsWidth(crumbs []crumb) int {
	w := 0
	for i, c := range crumbs {
		if i > 0 {
			w += layout.VisibleLength(crumbSeparator)
		}
		w += layout.VisibleLength(c.Label)
	}
	return w
}

func (a App) renderTreeBar() string {
	crumbs := a.crumbs(a.treeBarWidth())
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = a.styles.TreeBarCurrent.Render(c.Label)
		} else {
			parts[i] = c.Label
		}
	}
	bar, _ := layout.TruncateText(strings.Join(parts, crumbSeparator), a.treeBarWidth(), a.layoutConfig.Text)
	return a.styles.TreeBar.Render(bar)
}

// renderDrawer renders the left pane: title, search input and actions.
func (a App) renderDrawer(g layout.PageGeometry) string {
	store := a.ctrl.Store()
	inner := g.DrawerWidth - 2

	lines := []string{a.styles.Title.Render(rootCrumb)}

	switch {
	case a.mode == ModeSearch:
		lines = append(lines, a.search.Input.View())
	case store.Query != "":
		q, _ := layout.TruncateText(store.Query, inner-1, a.layoutConfig.Text)
		lines = append(lines, "/"+q)
	default:
		lines = append(lines, a.styles.Empty.Render("/ search"))
	}
	for len(lines) < a.layoutConfig.Pane.DrawerHeaderLines {
		lines = append(lines, "")
	}

	for _, action := range a.currentDrawerActions() {
		if action.Kind == actionDivider {
			lines = append(lines, a.styles.Divider.Render(strings.Repeat("─", inner)))
			continue
		}
		label, _ := layout.TruncateText(action.Label, inner, a.layoutConfig.Text)
		lines = append(lines, a.styles.DrawerAction.Render(label))
	}

	style := a.styles.Pane
	if a.mode == ModeSearch {
		style = a.styles.PaneActive
	}
	return style.Width(g.DrawerWidth).Render(fitLines(lines, g.PaneHeight))
}

// renderList renders the entries of the current folder.
func (a App) renderList(g layout.PageGeometry) string {
	store := a.ctrl.Store()
	items := store.VisibleItems()
	itemWidth := layout.CalculateItemWidth(g.ListWidth, a.layoutConfig.Pane)

	var lines []string
	if len(items) == 0 {
		empty := "(empty)"
		if store.Query != "" {
			empty = "(no matches)"
		}
		lines = append(lines, a.styles.Empty.Render(" "+empty))
	}

	offset := a.listOffset(len(items))
	end := offset + g.PaneHeight
	if end > len(items) {
		end = len(items)
	}
	for i := offset; i < end; i++ {
		lines = append(lines, a.renderItem(items[i], i == store.Cursor, itemWidth))
	}

	style := a.styles.Pane
	if a.mode == ModeNormal {
		style = a.styles.PaneActive
	}
	return style.Width(g.ListWidth).Render(fitLines(lines, g.PaneHeight))
}

// renderItem renders one list row. Marked entries carry a prefix; folders
// end with a slash. Bookmarks show their URL when there is room.
func (a App) renderItem(e model.Entry, isCursor bool, maxWidth int) string {
	store := a.ctrl.Store()
	marked := store.Selection.Has(e.ID)

	prefix := plainPrefix
	if marked {
		prefix = markedPrefix
	}
	suffix := ""
	if e.IsFolder() {
		suffix = "/"
	}
	text, _ := layout.TruncateWithPrefixSuffix(e.Title, maxWidth, prefix, suffix, a.layoutConfig.Text)

	if !e.IsFolder() && e.URL != "" {
		if room := maxWidth - layout.VisibleLength(text) - 2; room >= 8 {
			url, _ := layout.TruncateText(e.URL, room, a.layoutConfig.Text)
			text += "  " + url
		}
	}

	var style lipgloss.Style
	d := store.Drag
	switch {
	case d != nil && d.DraggedID == e.ID:
		style = a.styles.ItemDragged
	case d != nil && d.HoveredID == e.ID:
		style = a.styles.ItemDropTarget
	case isCursor && marked:
		style = a.styles.ItemMarkedCursor
	case isCursor:
		style = a.styles.ItemCursor
	case marked:
		style = a.styles.ItemMarked
	default:
		style = a.styles.Item
	}
	return style.Width(maxWidth + 1).Render(text)
}

// renderDragPreview renders the floating label that follows the pointer.
func (a App) renderDragPreview() string {
	store := a.ctrl.Store()
	e := store.Collection.Get(store.Drag.DraggedID)
	if e == nil {
		return ""
	}
	width := a.ctrl.PreviewWidth()

	label := e.Title
	if e.IsFolder() {
		label += "/"
	}
	if n := store.Selection.Len(); n > 1 && store.Selection.Has(e.ID) {
		label = fmt.Sprintf("%s +%d", label, n-1)
	}
	label, _ = layout.TruncateText(label, width-2, a.layoutConfig.Text)
	return a.styles.DragPreview.Width(width).Render(label)
}

// fitLines pads or cuts lines to exactly height rows.
func fitLines(lines []string, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderHelpBar renders the message line and the contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: status and contextual hints
	hints := a.renderHints(a.getContextualHints())
	if status := a.renderStatus(); status != "" {
		hints = a.styles.HintLabel.Render(status) + "  " + hints
	}
	lines = append(lines, hints)

	width := a.width - a.layoutConfig.Page.PaddingLeft - a.layoutConfig.Page.PaddingRight
	for i, l := range lines {
		lines[i], _ = layout.TruncateText(l, width, a.layoutConfig.Text)
	}
	return strings.Join(lines, "\n")
}

// renderStatus summarizes an active selection or drag.
func (a App) renderStatus() string {
	store := a.ctrl.Store()
	if d := store.Drag; d != nil {
		if e := store.Collection.Get(d.DraggedID); e != nil {
			return "moving " + e.Title
		}
	}
	if n := store.Selection.Len(); n > 0 {
		return fmt.Sprintf("%d selected", n)
	}
	return ""
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	return msgStyle.Render(prefix + a.messageText)
}

// overlayCentered draws box over the middle of view.
func (a App) overlayCentered(view, box string) string {
	x := (a.width - lipgloss.Width(box)) / 2
	y := (a.height - lipgloss.Height(box)) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return layout.Overlay(view, box, x, y)
}

// renderModal renders the add and rename dialogs.
func (a App) renderModal() string {
	var title, content strings.Builder

	// Industrial style: thick borders, teal accent
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeAddBookmark:
		title.WriteString("Add Bookmark\n\n")
		content.WriteString("Title:\n")
		content.WriteString(a.modal.TitleInput.View())
		content.WriteString("\n\n")
		content.WriteString("URL:\n")
		content.WriteString(a.modal.URLInput.View())

	case ModeRename:
		title.WriteString("Rename\n\n")
		content.WriteString("Title:\n")
		content.WriteString(a.modal.TitleInput.View())
	}

	hints := a.getContextualHints().All()
	body := a.styles.Title.Render(title.String()) + content.String() +
		"\n\n" + a.renderHintsInline(hints)
	return modalStyle.Render(body)
}

// renderHelpOverlay lists every key binding in two columns.
func (a App) renderHelpOverlay() string {
	bindings := a.keys.helpBindings()
	half := (len(bindings) + 1) / 2

	column := func(title string, from, to int) string {
		var b strings.Builder
		b.WriteString(a.styles.Title.Render(title) + "\n")
		for _, k := range bindings[from:to] {
			h := k.Help()
			fmt.Fprintf(&b, "%-8s %s\n", h.Key, h.Desc)
		}
		return b.String()
	}

	leftCol := lipgloss.NewStyle().Width(28).Render(column("keys", 0, half))
	rightCol := lipgloss.NewStyle().Width(28).Render(column("", half, len(bindings)))
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
		Padding(1, 2)
	return modalStyle.Render(cols + "\n" + a.styles.Help.Render("mouse: drag to move, ctrl+click to select"))
}

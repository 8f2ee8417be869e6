package layout

import "github.com/charmbracelet/x/ansi"

// ListRowAt maps a screen cell to a row of the list viewport.
// ok is false outside the list pane's inner area.
func (g PageGeometry) ListRowAt(x, y int) (row int, ok bool) {
	return paneRowAt(x, y, g.ListX, g.ListWidth, g.ContentY, g.PaneHeight)
}

// DrawerRowAt maps a screen cell to a content row of the drawer.
func (g PageGeometry) DrawerRowAt(x, y int) (row int, ok bool) {
	return paneRowAt(x, y, g.DrawerX, g.DrawerWidth, g.ContentY, g.PaneHeight)
}

// TreeBarColumnAt returns the column within the tree bar text, or ok=false
// when the cell is not on the tree bar.
func (g PageGeometry) TreeBarColumnAt(x, y int) (col int, ok bool) {
	if y != g.TreeBarY || x < g.TreeBarX {
		return 0, false
	}
	return x - g.TreeBarX, true
}

func paneRowAt(x, y, paneX, paneWidth, contentY, height int) (int, bool) {
	if x <= paneX || x > paneX+paneWidth {
		return 0, false
	}
	row := y - contentY
	if row < 0 || row >= height {
		return 0, false
	}
	return row, true
}

// SegmentAt returns the index of the segment under col when segments are
// joined by sep, or -1 for separators and anything past the end.
func SegmentAt(segments []string, sep string, col int) int {
	if col < 0 {
		return -1
	}
	sepWidth := ansi.StringWidth(sep)
	start := 0
	for i, s := range segments {
		end := start + ansi.StringWidth(s)
		if col < start {
			return -1
		}
		if col < end {
			return i
		}
		start = end + sepWidth
	}
	return -1
}

package layout

// PageGeometry holds where the page regions land on screen, in cells.
// Columns and rows are zero-based terminal coordinates.
type PageGeometry struct {
	TreeBarX int // first column of the tree bar text
	TreeBarY int

	ContentY   int // first content row inside both panes
	PaneHeight int // content rows per pane

	DrawerX     int // left border column of the drawer
	DrawerWidth int // excluding borders
	ListX       int // left border column of the list pane
	ListWidth   int // excluding borders
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePageGeometry lays out the tree bar, the drawer on the left and the
// list pane filling the rest of the width.
func CalculatePageGeometry(terminalWidth, terminalHeight int, cfg LayoutConfig) PageGeometry {
	p := cfg.Pane
	drawerX := cfg.Page.PaddingLeft
	listX := drawerX + p.DrawerWidth + p.BorderWidth

	listWidth := terminalWidth - cfg.Page.PaddingRight - listX - p.BorderWidth
	if listWidth < p.MinListWidth {
		listWidth = p.MinListWidth
	}

	return PageGeometry{
		TreeBarX:    cfg.Page.PaddingLeft + cfg.Page.TreeBarIndent,
		TreeBarY:    cfg.Page.PaddingTop,
		ContentY:    cfg.Page.PaddingTop + 2, // tree bar + top border
		PaneHeight:  CalculatePaneHeight(terminalHeight, p),
		DrawerX:     drawerX,
		DrawerWidth: p.DrawerWidth,
		ListX:       listX,
		ListWidth:   listWidth,
	}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}

package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Page  PageConfig
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PageConfig holds the outer frame of the page.
type PageConfig struct {
	// PaddingTop and PaddingLeft match the App style padding.
	PaddingTop   int
	PaddingLeft  int
	PaddingRight int

	// TreeBarIndent is the left padding of the tree bar text.
	TreeBarIndent int
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + tree bar (1) + pane borders (2) + help bar (2) = 6
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// DrawerWidth is the drawer width excluding borders.
	DrawerWidth int

	// MinListWidth is the minimum list pane width excluding borders.
	MinListWidth int

	// BorderWidth is the horizontal space one pane spends on its two borders.
	BorderWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane padding on each side plus the item indent.
	ContentPadding int

	// DrawerHeaderLines are the drawer rows above the action list:
	// title, search input, spacer.
	DrawerHeaderLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	TitleCharLimit  int
	URLCharLimit    int
	SearchCharLimit int

	// Display widths
	StandardWidth int // Used for title and URL
	SearchWidth   int // Drawer search field
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Page: PageConfig{
			PaddingTop:    1,
			PaddingLeft:   2,
			PaddingRight:  2,
			TreeBarIndent: 1,
		},
		Pane: PaneConfig{
			HeightReduction:   6, // app padding (1) + tree bar (1) + pane borders (2) + help bar (2)
			MinHeight:         5,
			DrawerWidth:       26,
			MinListWidth:      20,
			BorderWidth:       2,
			ContentPadding:    3,
			DrawerHeaderLines: 3,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            40,
			MaxWidth:            70,
		},
		Input: InputConfig{
			TitleCharLimit:  100,
			URLCharLimit:    500,
			SearchCharLimit: 100,
			StandardWidth:   40,
			SearchWidth:     18,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}

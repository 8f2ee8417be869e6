package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nikbrunner/bmpage/internal/model"
	"github.com/nikbrunner/bmpage/internal/search"
)

const folderSeparator = " / "

// chromeLines counts the header (with margin) and footer lines around the list.
const (
	chromeLines  = 4
	linesPerItem = 2
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Item is one pickable bookmark with the folder it lives in.
type Item struct {
	Entry   model.Entry
	Folder  string // "" for root
	Matched []int  // byte offsets into Entry.Title hit by the query
}

// Items pairs search results with their folder path in coll.
func Items(coll *model.Collection, results []search.SearchResult) []Item {
	items := make([]Item, len(results))
	for i, r := range results {
		var names []string
		for _, f := range coll.Path(r.Entry.Parent) {
			names = append(names, f.Title)
		}
		items[i] = Item{
			Entry:   r.Entry,
			Folder:  strings.Join(names, folderSeparator),
			Matched: r.MatchedIndexes,
		}
	}
	return items
}

// KeyMap defines the picker bindings.
type KeyMap struct {
	Down   key.Binding
	Up     key.Binding
	Select key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns vim-style bindings with arrow key fallbacks.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
		Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
		Select: key.NewBinding(key.WithKeys("enter")),
		Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// Picker lets the user choose one bookmark from a list of matches.
type Picker struct {
	items     []Item
	query     string
	keys      KeyMap
	cursor    int
	offset    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over items found for query.
func New(items []Item, query string) Picker {
	return Picker{
		items:  items,
		query:  query,
		keys:   DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.scrollToCursor()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Select):
			p.selected = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		}
		p.scrollToCursor()
	}

	return p, nil
}

// pageSize is how many items fit between header and footer.
func (p Picker) pageSize() int {
	return max(1, (p.height-chromeLines)/linesPerItem)
}

func (p *Picker) scrollToCursor() {
	size := p.pageSize()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+size {
		p.offset = p.cursor - size + 1
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.items))))
	b.WriteString("\n\n")

	end := min(len(p.items), p.offset+p.pageSize())
	for i := p.offset; i < end; i++ {
		item := p.items[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		b.WriteString(cursor + highlight(item.Entry.Title, item.Matched, style) + "\n")
		b.WriteString("   " + detailStyle.Render(ansi.Truncate(detail(item), max(1, p.width-3), "…")) + "\n")
	}

	b.WriteString("\n")
	footer := "j/k: move  Enter: open  q/Esc: cancel"
	if hidden := len(p.items) - (end - p.offset); hidden > 0 {
		footer = fmt.Sprintf("%s  (%d more)", footer, hidden)
	}
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

// detail is the folder path followed by the URL.
func detail(item Item) string {
	if item.Folder == "" {
		return item.Entry.URL
	}
	return item.Folder + "  " + item.Entry.URL
}

// highlight renders title with the matched characters emphasised.
func highlight(title string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(title)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(matchStyle.Inherit(base).Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedEntry returns the chosen entry, or nil if cancelled.
func (p Picker) SelectedEntry() *model.Entry {
	if p.cancelled || !p.selected || p.cursor >= len(p.items) {
		return nil
	}
	e := p.items[p.cursor].Entry
	return &e
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws fg over bg with its top-left corner at (x, y). Lines of fg
// falling outside bg are clipped; bg keeps its size. Negative x clips the
// left side of fg.
func Overlay(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	fgWidth := 0
	for _, l := range fgLines {
		if w := ansi.StringWidth(l); w > fgWidth {
			fgWidth = w
		}
	}
	if fgWidth == 0 {
		return bg
	}

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		if w := ansi.StringWidth(fgLine); w < fgWidth {
			fgLine += strings.Repeat(" ", fgWidth-w)
		}

		left, lineX := x, fgLine
		if left < 0 {
			lineX = ansi.Cut(fgLine, -left, fgWidth)
			left = 0
		}

		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)
		prefix := ansi.Cut(bgLine, 0, left)
		if w := ansi.StringWidth(prefix); w < left {
			prefix += strings.Repeat(" ", left-w)
		}
		right := left + ansi.StringWidth(lineX)
		suffix := ""
		if right < bgWidth {
			suffix = ansi.Cut(bgLine, right, bgWidth)
		}
		bgLines[row] = prefix + lineX + suffix
	}
	return strings.Join(bgLines, "\n")
}

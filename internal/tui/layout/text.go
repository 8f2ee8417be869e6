package layout

import "github.com/charmbracelet/x/ansi"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the display width of a string in cells
// (excluding ANSI codes).
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}

	// Not enough room for any text + ellipsis
	if maxWidth <= ansi.StringWidth(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("Development", 12, "* ", "/", cfg) -> "* Develo.../"
// Returns the truncated text and whether truncation occurred.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	if ansi.StringWidth(combined) <= maxWidth {
		return combined, false
	}

	overhead := ansi.StringWidth(prefix) + ansi.StringWidth(suffix) + ansi.StringWidth(cfg.Ellipsis)
	if overhead >= maxWidth {
		// Not enough room even for prefix + ellipsis + suffix
		return TruncateText(combined, maxWidth, cfg)
	}

	return prefix + ansi.Truncate(text, maxWidth-overhead+ansi.StringWidth(cfg.Ellipsis), cfg.Ellipsis) + suffix, true
}

// TruncateFromLeft keeps the end of text, replacing the dropped start with
// the ellipsis.
func TruncateFromLeft(text string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	width := ansi.StringWidth(text)
	if width <= maxWidth {
		return text
	}
	ellipsis := ansi.StringWidth(cfg.Ellipsis)
	if maxWidth <= ellipsis {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, "")
	}
	return ansi.TruncateLeft(text, width-(maxWidth-ellipsis), cfg.Ellipsis)
}

package layout

import "testing"

func TestOverlay(t *testing.T) {
	bg := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"

	tests := []struct {
		name string
		fg   string
		x, y int
		want string
	}{
		{"single line", "XY", 3, 1, "aaaaaaaaaa\nbbbXYbbbbb\ncccccccccc"},
		{"clipped below", "12\n3", 8, 2, "aaaaaaaaaa\nbbbbbbbbbb\ncccccccc12"},
		{"short line padded", "12\n3", 0, 0, "12aaaaaaaa\n3 bbbbbbbb\ncccccccccc"},
		{"negative x clips left", "XYZ", -1, 0, "YZaaaaaaaa\nbbbbbbbbbb\ncccccccccc"},
		{"past right edge extends", "XY", 12, 0, "aaaaaaaaaa  XY\nbbbbbbbbbb\ncccccccccc"},
		{"above top", "XY", 0, -1, bg},
		{"empty overlay", "", 2, 2, bg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlay(bg, tt.fg, tt.x, tt.y)
			if got != tt.want {
				t.Errorf("Overlay(%q, %d, %d) =\n%q\nwant\n%q", tt.fg, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestOverlay_StyledBackground(t *testing.T) {
	bg := "\x1b[1mbold\x1b[0m text"

	got := StripANSI(Overlay(bg, "X", 1, 0))
	if got != "bXld text" {
		t.Errorf("Overlay over styled text = %q, want %q", got, "bXld text")
	}
}

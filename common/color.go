package common

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ColorFromRGBA converts an 8-bit color to a clear color.
//
// Parameters:
//   - c: the 8-bit color
//
// Returns:
//   - Color: the color with channels scaled to [0, 1]
func ColorFromRGBA(c color.RGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// ColorFromName looks up an SVG 1.1 color keyword such as "black" or "cornflowerblue".
//
// Parameters:
//   - name: the color keyword, case-insensitive
//
// Returns:
//   - Color: the named color, opaque
//   - bool: false if the name is unknown
func ColorFromName(name string) (Color, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, false
	}
	return ColorFromRGBA(c), true
}

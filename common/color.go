package common

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ColorFromHex parses a hex color string of the form "#rrggbb" into a Color
// with full alpha.
//
// Parameters:
//   - s: the hex string, leading '#' required
//
// Returns:
//   - Color: the parsed color
//   - error: an error if the string is not a valid hex color
func ColorFromHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}, nil
}

// ColorFromName looks up an SVG 1.1 color name (e.g. "rebeccapurple").
//
// Parameters:
//   - name: the lower-case color name
//
// Returns:
//   - Color: the named color with full alpha
//   - bool: false when the name is unknown
func ColorFromName(name string) (Color, bool) {
	rgba, ok := colornames.Map[name]
	if !ok {
		return Color{}, false
	}
	return Color{
		R: float32(rgba.R) / 255,
		G: float32(rgba.G) / 255,
		B: float32(rgba.B) / 255,
		A: float32(rgba.A) / 255,
	}, true
}

// BlendLab blends c toward o by fraction f in the perceptually uniform CIE-L*a*b*
// space. Alpha is interpolated linearly. Lab blending avoids the muddy midpoints
// that plain RGB interpolation produces between saturated colors.
//
// Parameters:
//   - o: the target color
//   - f: the blend fraction in [0, 1]
//
// Returns:
//   - Color: the blended color
func (c Color) BlendLab(o Color, f float64) Color {
	a := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	b := colorful.Color{R: float64(o.R), G: float64(o.G), B: float64(o.B)}
	m := a.BlendLab(b, f).Clamped()
	return Color{
		R: float32(m.R),
		G: float32(m.G),
		B: float32(m.B),
		A: Lerp32(c.A, o.A, f),
	}
}

// RGBA implements image/color.Color so a Color can be handed to stdlib image
// code directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA64{
		R: uint16(Clamp01(float64(c.R)) * 0xffff),
		G: uint16(Clamp01(float64(c.G)) * 0xffff),
		B: uint16(Clamp01(float64(c.B)) * 0xffff),
		A: uint16(Clamp01(float64(c.A)) * 0xffff),
	}.RGBA()
}

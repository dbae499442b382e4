package render

import "image/color"

// Color is a packed 24-bit RGB value (0xRRGGBB).
type Color uint32

// RGB packs three 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// RGBA implements color.Color. The alpha channel is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xFF}.RGBA()
}

// FromColor converts any color.Color to a Color, dropping alpha.
func FromColor(c color.Color) Color {
	if own, ok := c.(Color); ok {
		return own
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Blend mixes fg over bg with the given coverage. alpha must be in [0,1];
// it is not validated. Channels are truncated, not rounded.
func Blend(fg, bg Color, alpha float64) Color {
	return RGB(
		blendChannel(fg.R(), bg.R(), alpha),
		blendChannel(fg.G(), bg.G(), alpha),
		blendChannel(fg.B(), bg.B(), alpha),
	)
}

// bg + (fg-bg)*alpha equals fg*alpha + bg*(1-alpha) but stays exact at
// alpha 0 and 1 and when fg == bg.
func blendChannel(fg, bg uint8, alpha float64) uint8 {
	v := float64(bg) + (float64(fg)-float64(bg))*alpha
	return uint8(v)
}

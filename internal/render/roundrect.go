package render

import (
	"image"
	"math"
)

// FillRoundedRect fills [x, x+w) x [y, y+h) with fill, rounding the four
// corners with the given radius. Pixels on the curved edge are blended
// from fill towards edge by their coverage; pixels outside the curve are
// left untouched. A radius <= 0 fills a plain rectangle.
//
// Writes are clipped to the canvas. When radius exceeds half the shorter
// side the corner zones overlap and the first matching zone (top-left,
// top-right, bottom-left, bottom-right) decides.
func FillRoundedRect(dst Canvas, x, y, w, h, radius int, fill, edge Color) error {
	if err := Supported(dst.BitsPerPixel()); err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	area := clip(dst, image.Rect(x, y, x+w, y+h))
	if area.Empty() {
		return nil
	}

	r := float64(radius)
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			d, corner := cornerDistance(px-x, py-y, w, h, radius)
			switch {
			case !corner:
				dst.SetRGB(px, py, fill)
			case d > r:
				// outside the curve
			case d > r-1:
				dst.SetRGB(px, py, Blend(fill, edge, 1-(d-(r-1))))
			default:
				dst.SetRGB(px, py, fill)
			}
		}
	}
	return nil
}

// cornerDistance returns the distance from local pixel (lx, ly) to the
// circle center of the corner zone it falls in. Circle centers sit radius-1
// pixels in from the rectangle's outer corner pixel.
func cornerDistance(lx, ly, w, h, radius int) (float64, bool) {
	if radius <= 0 {
		return 0, false
	}
	left := lx < radius
	right := lx >= w-radius
	top := ly < radius
	bottom := ly >= h-radius

	var dx, dy int
	switch {
	case left && top:
		dx, dy = radius-1-lx, radius-1-ly
	case right && top:
		dx, dy = lx-(w-radius), radius-1-ly
	case left && bottom:
		dx, dy = radius-1-lx, ly-(h-radius)
	case right && bottom:
		dx, dy = lx-(w-radius), ly-(h-radius)
	default:
		return 0, false
	}
	return math.Hypot(float64(dx), float64(dy)), true
}

func clip(dst Canvas, rect image.Rectangle) image.Rectangle {
	width, height := dst.Size()
	return rect.Intersect(image.Rect(0, 0, width, height))
}

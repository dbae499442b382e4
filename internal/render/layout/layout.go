package layout

import "image"

// Inset moves every edge of rect paddingPx towards the middle. A rect too
// small for the padding collapses to zero width or height at its new Min;
// it never turns inside out.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	rect.Min = rect.Min.Add(image.Pt(paddingPx, paddingPx))
	rect.Max = rect.Max.Sub(image.Pt(paddingPx, paddingPx))
	rect.Max.X = max(rect.Max.X, rect.Min.X)
	rect.Max.Y = max(rect.Max.Y, rect.Min.Y)
	return rect
}

// Outset grows rect by paddingPx on all sides.
func Outset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	return image.Rectangle{
		Min: image.Pt(rect.Min.X-paddingPx, rect.Min.Y-paddingPx),
		Max: image.Pt(rect.Max.X+paddingPx, rect.Max.Y+paddingPx),
	}
}

// Center returns a rectangle of size (widthPx,heightPx) centered in rect.
// Offsets are truncated toward zero, so content larger than rect starts
// before rect.Min and hangs off both sides.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+widthPx, y+heightPx)}
}

// AnchorBottomCenter returns a rectangle of size (widthPx,heightPx) centered
// horizontally in rect with its bottom edge marginPx above rect's bottom.
// The result is not normalized: a non-positive size yields an empty rectangle.
func AnchorBottomCenter(rect image.Rectangle, widthPx, heightPx, marginPx int) image.Rectangle {
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Max.Y - heightPx - marginPx
	return image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+widthPx, y+heightPx)}
}

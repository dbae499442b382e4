package render

import (
	"image"

	"github.com/rook-computer/fbsplash/internal/ppm"
	"github.com/rook-computer/fbsplash/internal/render/layout"
)

// BlitCentered copies img onto dst, centered. Images larger than the
// canvas are cropped; pixels around a smaller image are left as they are.
// Nothing is written if the canvas format is unsupported.
func BlitCentered(dst Canvas, img *ppm.Image) error {
	if err := Supported(dst.BitsPerPixel()); err != nil {
		return err
	}
	width, height := dst.Size()
	placed := layout.Center(image.Rect(0, 0, width, height), img.Width, img.Height)
	visible := placed.Intersect(image.Rect(0, 0, width, height))

	for sy := visible.Min.Y; sy < visible.Max.Y; sy++ {
		for sx := visible.Min.X; sx < visible.Max.X; sx++ {
			r, g, b := img.RGBAt(sx-placed.Min.X, sy-placed.Min.Y)
			dst.SetRGB(sx, sy, RGB(r, g, b))
		}
	}
	return nil
}

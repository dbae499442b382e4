package render

import (
	"image"

	"github.com/rook-computer/fbsplash/internal/render/layout"
)

// BarRect returns where the bar (without its border) sits on a screen of
// the given size: horizontally centered, BottomMargin above the bottom edge.
func BarRect(screenWidth, screenHeight int, style ProgressBarStyle) image.Rectangle {
	screen := image.Rect(0, 0, screenWidth, screenHeight)
	return layout.AnchorBottomCenter(screen, style.Width, style.Height, style.BottomMargin)
}

// FillWidth is the width of the fill layer at percent, truncated.
func FillWidth(style ProgressBarStyle, percent int) int {
	return (style.Width - 2*style.Margin) * percent / 100
}

// PaintProgressBar draws the bar at percent as three stacked rounded
// rectangles: border, background, fill. Each layer's curved edge blends
// into the color of the layer beneath it.
func PaintProgressBar(dst Canvas, style ProgressBarStyle, percent int) error {
	if err := Supported(dst.BitsPerPixel()); err != nil {
		return err
	}
	width, height := dst.Size()
	bar := BarRect(width, height, style)

	border := layout.Outset(bar, style.BorderWidth)
	err := FillRoundedRect(dst, border.Min.X, border.Min.Y, border.Dx(), border.Dy(),
		style.CornerRadius+style.BorderWidth, style.BorderColor, Black)
	if err != nil {
		return err
	}

	err = FillRoundedRect(dst, bar.Min.X, bar.Min.Y, bar.Dx(), bar.Dy(),
		style.CornerRadius, style.BackgroundColor, style.BorderColor)
	if err != nil {
		return err
	}

	fillWidth := FillWidth(style, percent)
	if fillWidth <= 0 {
		return nil
	}
	fill := layout.Inset(bar, style.Margin)
	fill.Max.X = fill.Min.X + fillWidth
	return FillRoundedRect(dst, fill.Min.X, fill.Min.Y, fill.Dx(), fill.Dy(),
		style.CornerRadius-style.Margin, style.FillColor, style.BackgroundColor)
}

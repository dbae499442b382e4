package render

// Black is the blend target for the outermost layer's curved edge.
const Black Color = 0x000000

// ProgressBarStyle fixes the look and placement of the progress bar for a
// whole session.
type ProgressBarStyle struct {
	BorderColor     Color
	BackgroundColor Color
	FillColor       Color

	BorderWidth  int
	Margin       int // gap between the bar edge and the fill
	CornerRadius int
	BottomMargin int // distance from the bottom screen edge

	Width     int
	Height    int
	StepCount int
}

package output

import (
	"github.com/yourusername/calgrid/internal/types"
)

// ScalingContext handles coordinate transformation from the layout's pixel
// space to terminal character space
type ScalingContext struct {
	// Viewport dimensions in pixels
	PixelWidth  float64
	PixelHeight float64

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	// Scale factors
	ScaleX float64
	ScaleY float64
}

// NewScalingContext creates a scaling context for a grid viewport
func NewScalingContext(cfg types.GridConfig, termWidth, termHeight int) *ScalingContext {
	// Reserve one row for the status line
	availWidth := termWidth
	availHeight := termHeight - 1

	if availWidth < 20 {
		availWidth = 20
	}
	if availHeight < 10 {
		availHeight = 10
	}

	return &ScalingContext{
		PixelWidth:  cfg.Width,
		PixelHeight: cfg.Height,
		TermWidth:   availWidth,
		TermHeight:  availHeight,
		ScaleX:      float64(availWidth) / cfg.Width,
		ScaleY:      float64(availHeight) / cfg.Height,
	}
}

// PixelToTerminal converts pixel coordinates to terminal coordinates
func (sc *ScalingContext) PixelToTerminal(x, y float64) (int, int) {
	return int(x * sc.ScaleX), int(y * sc.ScaleY)
}

// ScaleRect converts a pixel rectangle to a terminal rectangle
func (sc *ScalingContext) ScaleRect(r types.Rect) (x, y, w, h int) {
	x, y = sc.PixelToTerminal(r.X, r.Y)
	x2, y2 := sc.PixelToTerminal(r.Right(), r.Bottom())
	w = x2 - x
	h = y2 - y
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return x, y, w, h
}

// ClampToCanvas ensures coordinates are within canvas bounds
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	// Clamp position
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	// Clamp size
	if x+w > sc.TermWidth {
		w = sc.TermWidth - x
	}
	if y+h > sc.TermHeight {
		h = sc.TermHeight - y
	}

	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	return x, y, w, h
}

package output

import (
	"testing"

	"github.com/yourusername/calgrid/internal/types"
)

func TestNewScalingContextReservesStatusRow(t *testing.T) {
	cfg := types.GridConfig{Width: 958, Height: 640}
	sc := NewScalingContext(cfg, 96, 65)
	if sc.TermWidth != 96 || sc.TermHeight != 64 {
		t.Errorf("terminal = %dx%d, want 96x64", sc.TermWidth, sc.TermHeight)
	}
	if sc.ScaleY != 0.1 {
		t.Errorf("ScaleY = %v, want 0.1", sc.ScaleY)
	}
}

func TestNewScalingContextEnforcesMinimums(t *testing.T) {
	cfg := types.GridConfig{Width: 958, Height: 640}
	sc := NewScalingContext(cfg, 10, 5)
	if sc.TermWidth != 20 || sc.TermHeight != 10 {
		t.Errorf("terminal = %dx%d, want 20x10", sc.TermWidth, sc.TermHeight)
	}
}

func TestPixelToTerminal(t *testing.T) {
	cfg := types.GridConfig{Width: 200, Height: 100}
	sc := NewScalingContext(cfg, 100, 51)
	if sc.ScaleX != 0.5 || sc.ScaleY != 0.5 {
		t.Fatalf("scale = (%v, %v), want (0.5, 0.5)", sc.ScaleX, sc.ScaleY)
	}
	x, y := sc.PixelToTerminal(40, 30)
	if x != 20 || y != 15 {
		t.Errorf("PixelToTerminal(40, 30) = (%d, %d), want (20, 15)", x, y)
	}
}

func TestScaleRectKeepsMinimumSize(t *testing.T) {
	cfg := types.GridConfig{Width: 200, Height: 100}
	sc := NewScalingContext(cfg, 100, 51)

	x, y, w, h := sc.ScaleRect(types.Rect{X: 20, Y: 10, Width: 40, Height: 20})
	if x != 10 || y != 5 || w != 20 || h != 10 {
		t.Errorf("ScaleRect = (%d, %d, %d, %d), want (10, 5, 20, 10)", x, y, w, h)
	}

	// A rect smaller than one cell still occupies one cell.
	_, _, w, h = sc.ScaleRect(types.Rect{X: 10, Y: 10, Width: 1, Height: 1})
	if w != 1 || h != 1 {
		t.Errorf("degenerate ScaleRect size = (%d, %d), want (1, 1)", w, h)
	}
}

func TestClampToCanvas(t *testing.T) {
	cfg := types.GridConfig{Width: 200, Height: 100}
	sc := NewScalingContext(cfg, 100, 51) // 100x50 canvas

	tests := []struct {
		name           string
		x, y, w, h     int
		wx, wy, ww, wh int
	}{
		{"inside", 10, 10, 20, 20, 10, 10, 20, 20},
		{"negative origin", -5, -3, 20, 10, 0, 0, 15, 7},
		{"overflows right and bottom", 95, 48, 20, 10, 95, 48, 5, 2},
		{"fully outside", 150, 60, 5, 5, 150, 60, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := sc.ClampToCanvas(tt.x, tt.y, tt.w, tt.h)
			if x != tt.wx || y != tt.wy || w != tt.ww || h != tt.wh {
				t.Errorf("ClampToCanvas = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					x, y, w, h, tt.wx, tt.wy, tt.ww, tt.wh)
			}
		})
	}
}

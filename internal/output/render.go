package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/calgrid/internal/layout"
	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/types"
)

// RenderOptions controls the appearance of the rendered grid
type RenderOptions struct {
	UseUnicode bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultRenderOptions returns sensible defaults
func DefaultRenderOptions() RenderOptions {
	width, height := getTerminalSize()
	return RenderOptions{
		UseUnicode: supportsUnicode(),
		MaxWidth:   width,
		MaxHeight:  height,
	}
}

// ItemSource resolves visible positions to schedule items, for labels and
// titles. The collection satisfies it.
type ItemSource interface {
	Item(position int) schedule.Item
}

// RenderGrid draws the laid-out week into a character grid
func RenderGrid(l *layout.Layout, items ItemSource, opts RenderOptions) string {
	cfg := l.Config()
	sc := NewScalingContext(cfg, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(sc.TermWidth, sc.TermHeight, opts.UseUnicode)

	positions := l.VisiblePositions()

	// Schedule rows first, back to front; the selected row last so its box
	// stays on top.
	selected := l.Selected()
	for _, pos := range positions {
		if pos == selected {
			continue
		}
		g, ok := l.Row(pos)
		if !ok || g.Kind != types.RowSchedule {
			continue
		}
		drawScheduleRow(canvas, sc, g, items.Item(pos))
	}
	if selected >= 0 {
		if g, ok := l.Row(selected); ok && g.Kind == types.RowSchedule {
			drawScheduleRow(canvas, sc, g, items.Item(selected))
		}
	}

	drawTimeScale(canvas, sc, l, cfg)
	drawHeader(canvas, sc, l, items, cfg)
	drawCurrentTime(canvas, sc, l)

	return canvas.String()
}

func drawScheduleRow(canvas *Canvas, sc *ScalingContext, g types.RowGeometry, item schedule.Item) {
	x, y, w, h := sc.ClampToCanvas(sc.ScaleRect(g.Rect))
	if w < 2 || h < 1 {
		return
	}

	fillRune := ' '
	if g.IsFillItem {
		fillRune = '░'
	}
	canvas.FillRect(x, y, w, h, fillRune)
	if h >= 2 {
		canvas.DrawBox(x, y, w, h)
	}

	label := itemTitle(item)
	if g.Selected {
		label = "*" + label
	}
	if label == "" {
		return
	}
	textY := y
	if h >= 3 {
		textY = y + 1
	}
	canvas.DrawText(x+1, textY, truncate(label, w-2))
}

// drawTimeScale draws the hour gutter along the left edge
func drawTimeScale(canvas *Canvas, sc *ScalingContext, l *layout.Layout, cfg types.GridConfig) {
	count := 0
	var ts types.RowGeometry
	for _, pos := range l.VisiblePositions() {
		if g, ok := l.Row(pos); ok && g.Kind == types.RowTimeScale {
			ts = g
			count++
		}
	}
	if count == 0 {
		return
	}

	gutterW, _ := sc.PixelToTerminal(cfg.TimeScaleWidth, 0)
	canvas.FillRect(0, 0, gutterW, sc.TermHeight, ' ')
	for hour := 0; hour < types.HoursPerDay; hour++ {
		py := ts.Rect.Y + float64(hour)*cfg.RowHeight
		_, y := sc.PixelToTerminal(0, py)
		if y < 0 || y >= sc.TermHeight {
			continue
		}
		canvas.DrawText(0, y, fmt.Sprintf("%2d:00", hour))
	}
	canvas.DrawVLine(gutterW, 0, sc.TermHeight, '|')
}

// drawHeader draws the pinned date label band across the top
func drawHeader(canvas *Canvas, sc *ScalingContext, l *layout.Layout, items ItemSource, cfg types.GridConfig) {
	_, headerH := sc.PixelToTerminal(0, cfg.HeaderOffset())
	if headerH < 1 {
		headerH = 1
	}
	canvas.FillRect(0, 0, sc.TermWidth, headerH, ' ')
	canvas.DrawHLine(0, headerH, sc.TermWidth, '-')

	for _, pos := range l.VisiblePositions() {
		g, ok := l.Row(pos)
		if !ok || g.Kind != types.RowDateLabel {
			continue
		}
		x, _ := sc.PixelToTerminal(g.Rect.X, 0)
		w, _ := sc.PixelToTerminal(g.Rect.Width, 0)
		if x+w <= 0 || x >= sc.TermWidth {
			continue
		}
		label, ok := items.Item(pos).(schedule.DateLabel)
		if !ok {
			continue
		}
		canvas.DrawTextCentered(x, 0, w, label.DateString())
		if headerH >= 2 {
			canvas.DrawTextCentered(x, 1, w, label.DayOfWeekString())
		}
	}
}

func drawCurrentTime(canvas *Canvas, sc *ScalingContext, l *layout.Layout) {
	for _, pos := range l.VisiblePositions() {
		g, ok := l.Row(pos)
		if !ok || g.Kind != types.RowCurrentTime {
			continue
		}
		x, y, w, _ := sc.ClampToCanvas(sc.ScaleRect(g.Rect))
		if w < 1 {
			continue
		}
		canvas.DrawHLine(x, y, w, '=')
	}
}

func itemTitle(item schedule.Item) string {
	switch it := item.(type) {
	case schedule.Event:
		return it.Title()
	case schedule.DateLabel:
		return it.DateString()
	default:
		return ""
	}
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	// Check LANG and LC_ALL environment variables
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintGrid prints a colored rendering of the grid to stdout
func PrintGrid(l *layout.Layout, items ItemSource, opts RenderOptions) {
	result := RenderGrid(l, items, opts)

	// Apply color if enabled
	if color.NoColor {
		fmt.Println(result)
	} else {
		cyan := color.New(color.FgCyan)
		cyan.Println(result)
	}
}

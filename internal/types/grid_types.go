package types

// RowKind classifies a row in the calendar grid.
type RowKind int

const (
	RowSchedule RowKind = iota
	RowDateLabel
	RowCurrentTime
	RowTimeScale
	RowHeader
	RowHeaderMask
)

// String returns a short name for the row kind.
func (k RowKind) String() string {
	switch k {
	case RowSchedule:
		return "schedule"
	case RowDateLabel:
		return "dateLabel"
	case RowCurrentTime:
		return "currentTime"
	case RowTimeScale:
		return "timeScale"
	case RowHeader:
		return "header"
	case RowHeaderMask:
		return "headerMask"
	default:
		return "unknown"
	}
}

// HoursPerDay is the number of vertical rows in a day column.
const HoursPerDay = 24

// FixViewCount is the number of always-present chrome rows appended at the
// end of the row index space: time scale, header, header mask.
const FixViewCount = 3

// MinVisualHeight is the minimum pixel height of a schedule row, so very
// short events remain tappable.
const MinVisualHeight = 16.0

// Rect represents pixel bounds in grid space.
type Rect struct {
	X      float64 // Left edge
	Y      float64 // Top edge
	Width  float64 // Width in pixels
	Height float64 // Height in pixels
}

// Point represents a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Right returns the right edge of the rect.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge of the rect.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// GridConfig holds the host-configured layout parameters for the calendar
// grid. All pixel values are in grid space; Width/Height are the viewport
// dimensions.
type GridConfig struct {
	DaysCount         int     // Number of visible day columns
	RowHeight         float64 // Pixel height of one hour
	DateLabelHeight   float64 // Height of the date-label header row
	TimeScaleWidth    float64 // Width of the time-scale ruler column
	CurrentTimeHeight float64 // Height of the current-time marker row
	ItemRightPadding  float64 // Right padding inside a day column
	SubColumnMargin   float64 // Margin between side-by-side sub-columns
	MinuteSpan        int     // Snap granularity in minutes
	Width             float64 // Viewport width
	Height            float64 // Viewport height
}

// ColumnWidth returns the pixel width of one day column.
func (c GridConfig) ColumnWidth() float64 {
	if c.DaysCount == 0 {
		return 0
	}
	return (c.Width - c.TimeScaleWidth) / float64(c.DaysCount)
}

// HeaderOffset returns the vertical offset consumed by the header chrome.
func (c GridConfig) HeaderOffset() float64 {
	return c.DateLabelHeight
}

// OverlapInfo describes how a schedule row overlaps other rows on the same
// calendar day. It is computed on demand, never stored on the row.
type OverlapInfo struct {
	// BeforePositions lists the positions of overlapping rows that precede
	// the row in the collection.
	BeforePositions []int

	// HeadPosition is the position that heads the row's sub-column group,
	// or nil if the row is itself the head.
	HeadPosition *int

	// MaxDuplicationCount is the maximum number of simultaneously
	// overlapping rows in the group.
	MaxDuplicationCount int
}

// ColumnPosition returns the 0-based sub-column slot the row should occupy.
func (o OverlapInfo) ColumnPosition() int {
	if o.HeadPosition == nil {
		return 0
	}
	n := 0
	for _, p := range o.BeforePositions {
		if p >= *o.HeadPosition {
			n++
		}
	}
	return n
}

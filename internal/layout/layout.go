package layout

import (
	"math"
	"time"

	"github.com/yourusername/calgrid/internal/logging"
	"github.com/yourusername/calgrid/internal/timegrid"
	"github.com/yourusername/calgrid/internal/types"
)

// DateLookup answers positional questions about the row source. The
// collection package provides a concrete implementation.
type DateLookup interface {
	Count() int
	LookupStart(position int) (time.Time, bool)
	LookupEnd(position int) (time.Time, bool)
	IsDateLabel(position int) bool
	IsCurrentTime(position int) bool
	IsFillItem(position int) bool
	IsStartSplit(position int) bool
	IsEndSplit(position int) bool
	LookupOverlap(position int) types.OverlapInfo
}

// Listener is notified when the leftmost fully tracked row changes, which
// hosts typically use to update a month/year title.
type Listener interface {
	FirstItemChanged(position int, date time.Time)
}

type nopListener struct{}

func (nopListener) FirstItemChanged(int, time.Time) {}

// Layout places schedule rows and chrome rows into viewport coordinates and
// maintains the visible window across scrolls and relayouts.
type Layout struct {
	cfg      types.GridConfig
	lookup   DateLookup
	listener Listener

	rows map[int]types.RowGeometry

	firstVisible int
	lastVisible  int
	selected     int

	// Set by PrepareForUpdate just before the row source mutates, checked
	// on the next LayoutAll to detect that the tracked window went stale.
	firstVisibleUnix *int64

	// Scroll offsets stashed across a full relayout.
	tmpVerticalScroll *float64
	tmpFirstLabelX    *float64

	pendingGrowth *GrowthRequest
}

// New returns a layout for cfg over lookup. A nil listener is allowed.
func New(cfg types.GridConfig, lookup DateLookup, listener Listener) *Layout {
	if listener == nil {
		listener = nopListener{}
	}
	return &Layout{
		cfg:          cfg,
		lookup:       lookup,
		listener:     listener,
		rows:         make(map[int]types.RowGeometry),
		firstVisible: -1,
		lastVisible:  0,
		selected:     -1,
	}
}

// Config returns the active grid configuration.
func (l *Layout) Config() types.GridConfig { return l.cfg }

// SetConfig replaces the grid configuration. The caller should follow with
// LayoutAll.
func (l *Layout) SetConfig(cfg types.GridConfig) { l.cfg = cfg }

// PrepareForUpdate records which date currently heads the visible window.
// Call it before mutating the row source so that the next LayoutAll can
// detect when the tracked positions no longer refer to the same rows.
func (l *Layout) PrepareForUpdate() {
	if l.firstVisible < 0 {
		return
	}
	if start, ok := l.lookup.LookupStart(l.firstVisible); ok {
		unix := start.Unix()
		l.firstVisibleUnix = &unix
	}
}

// LayoutAll discards and relays every visible row. Scroll offsets survive
// the relayout unless the tracked window is detected stale, in which case
// the layout resets to its initial anchoring.
func (l *Layout) LayoutAll() {
	count := l.lookup.Count()

	if len(l.rows) > 0 {
		v := l.verticalScroll()
		l.tmpVerticalScroll = &v
		if first, ok := l.firstDateLabel(); ok {
			x := first.Rect.X
			l.tmpFirstLabelX = &x
		}
	}

	if l.isStale(count) {
		logging.Debug().
			Int("firstVisible", l.firstVisible).
			Int("lastVisible", l.lastVisible).
			Int("count", count).
			Msg("layout window stale, resetting")
		l.firstVisible = -1
		l.lastVisible = 0
		l.tmpVerticalScroll = nil
		l.tmpFirstLabelX = nil
	}
	l.firstVisibleUnix = nil

	l.rows = make(map[int]types.RowGeometry)

	for i := maxInt(l.firstVisible, 0); i < count; i++ {
		right := l.addRow(i)
		l.lastVisible = i
		if right > l.cfg.Width && l.lookup.IsDateLabel(i+1) {
			break
		}
	}
	for i := count; i < count+types.FixViewCount; i++ {
		l.addRow(i)
	}

	l.tmpVerticalScroll = nil
	l.tmpFirstLabelX = nil

	if date, ok := l.FirstVisibleDate(); ok {
		l.listener.FirstItemChanged(l.firstVisible, date)
	}
}

func (l *Layout) isStale(count int) bool {
	if l.firstVisible > count || l.lastVisible > count {
		return true
	}
	if l.firstVisibleUnix == nil || l.firstVisible < 0 {
		return false
	}
	start, ok := l.lookup.LookupStart(l.firstVisible)
	return !ok || start.Unix() != *l.firstVisibleUnix
}

// addRow computes and stores the geometry for position, returning the row's
// right edge. Positions at and past Count() are the fixed chrome rows.
func (l *Layout) addRow(position int) float64 {
	count := l.lookup.Count()
	var g types.RowGeometry
	switch position {
	case count:
		g = l.timeScaleGeometry(position)
	case count + 1:
		g = l.headerGeometry(position)
	case count + 2:
		g = l.headerMaskGeometry(position)
	default:
		g = l.scheduleGeometry(position)
	}
	l.rows[position] = g
	return g.Rect.Right()
}

func (l *Layout) timeScaleGeometry(position int) types.RowGeometry {
	top := l.cfg.HeaderOffset()
	if l.tmpVerticalScroll != nil {
		top += *l.tmpVerticalScroll
	}
	return types.RowGeometry{
		Position: position,
		Kind:     types.RowTimeScale,
		Rect: types.Rect{
			X:      0,
			Y:      top,
			Width:  l.cfg.TimeScaleWidth,
			Height: float64(types.HoursPerDay) * l.cfg.RowHeight,
		},
	}
}

func (l *Layout) headerGeometry(position int) types.RowGeometry {
	return types.RowGeometry{
		Position: position,
		Kind:     types.RowHeader,
		Rect:     types.Rect{X: 0, Y: 0, Width: l.cfg.Width, Height: l.cfg.HeaderOffset()},
	}
}

func (l *Layout) headerMaskGeometry(position int) types.RowGeometry {
	return types.RowGeometry{
		Position: position,
		Kind:     types.RowHeaderMask,
		Rect:     types.Rect{X: 0, Y: 0, Width: l.cfg.TimeScaleWidth, Height: l.cfg.HeaderOffset()},
	}
}

func (l *Layout) scheduleGeometry(position int) types.RowGeometry {
	start, _ := l.lookup.LookupStart(position)
	end, _ := l.lookup.LookupEnd(position)
	isLabel := l.lookup.IsDateLabel(position)
	isCurrent := l.lookup.IsCurrentTime(position)
	isFill := l.lookup.IsFillItem(position)
	selected := position == l.selected

	overlap := l.lookup.LookupOverlap(position)
	subPos := overlap.ColumnPosition()
	subCount := overlap.MaxDuplicationCount
	if overlap.HeadPosition != nil {
		subCount = l.lookup.LookupOverlap(*overlap.HeadPosition).MaxDuplicationCount
	}
	if subCount < 1 {
		subCount = 1
	}

	cw := l.cfg.ColumnWidth()
	left := l.anchorLeft(start)

	subWidth := (cw - l.cfg.ItemRightPadding - float64(subCount-1)*l.cfg.SubColumnMargin) / float64(subCount)
	plain := !selected && !isFill && !isLabel && !isCurrent
	if plain {
		left += float64(subPos) * (subWidth + l.cfg.SubColumnMargin)
	}

	var top float64
	if !isLabel {
		top = timegrid.HourOfDay(start)*l.cfg.RowHeight + l.cfg.HeaderOffset() + l.verticalScroll()
	}

	var width, height float64
	switch {
	case isLabel:
		width = cw
		height = l.cfg.DateLabelHeight
	case isCurrent:
		width = cw
		height = l.cfg.CurrentTimeHeight
	case plain:
		width = subWidth
		height = math.Max(timegrid.HourDiff(end, start)*l.cfg.RowHeight, types.MinVisualHeight)
	default:
		// Selected and fill rows span the full column.
		width = cw
		height = math.Max(timegrid.HourDiff(end, start)*l.cfg.RowHeight, types.MinVisualHeight)
	}

	kind := types.RowSchedule
	switch {
	case isLabel:
		kind = types.RowDateLabel
	case isCurrent:
		kind = types.RowCurrentTime
	}

	return types.RowGeometry{
		Position:          position,
		Kind:              kind,
		Rect:              types.Rect{X: left, Y: top, Width: width, Height: height},
		Start:             start,
		End:               end,
		IsStartSplit:      l.lookup.IsStartSplit(position),
		IsEndSplit:        l.lookup.IsEndSplit(position),
		IsFillItem:        isFill,
		Selected:          selected,
		SubColumnPosition: subPos,
		SubColumnCount:    subCount,
	}
}

// anchorLeft resolves the left edge for a row starting at start, relative to
// the first visible date label. When no label has been laid out yet the
// stashed label X (or the time scale edge) seeds the anchoring.
func (l *Layout) anchorLeft(start time.Time) float64 {
	cw := l.cfg.ColumnWidth()
	if first, ok := l.firstDateLabel(); ok {
		return first.Rect.Right() + cw*float64(timegrid.DateDiff(start, first.Start)-1)
	}
	if l.firstVisible < 0 {
		l.firstVisible = 0
	}
	if l.tmpFirstLabelX != nil {
		return *l.tmpFirstLabelX
	}
	return l.cfg.TimeScaleWidth
}

// verticalScroll derives the current vertical offset from the time scale row.
func (l *Layout) verticalScroll() float64 {
	if ts, ok := l.timeScale(); ok {
		return ts.Rect.Y - l.cfg.HeaderOffset()
	}
	if l.tmpVerticalScroll != nil {
		return *l.tmpVerticalScroll
	}
	return 0
}

func (l *Layout) timeScale() (types.RowGeometry, bool) {
	for _, g := range l.rows {
		if g.Kind == types.RowTimeScale {
			return g, true
		}
	}
	return types.RowGeometry{}, false
}

// firstDateLabel returns the leftmost visible date label.
func (l *Layout) firstDateLabel() (types.RowGeometry, bool) {
	for i := maxInt(l.firstVisible, 0); i <= l.lastVisible; i++ {
		if g, ok := l.rows[i]; ok && g.Kind == types.RowDateLabel {
			return g, true
		}
	}
	return types.RowGeometry{}, false
}

// lastScheduleRow returns the highest-position visible schedule row.
func (l *Layout) lastScheduleRow() (types.RowGeometry, bool) {
	g, ok := l.rows[l.lastVisible]
	return g, ok
}

// Row returns the geometry stored for position, if visible.
func (l *Layout) Row(position int) (types.RowGeometry, bool) {
	g, ok := l.rows[position]
	return g, ok
}

// VisibleRange reports the tracked window of schedule positions. first is -1
// before the first layout pass.
func (l *Layout) VisibleRange() (first, last int) {
	return l.firstVisible, l.lastVisible
}

// VisiblePositions returns all visible positions in ascending order, chrome
// rows included.
func (l *Layout) VisiblePositions() []int {
	out := make([]int, 0, len(l.rows))
	for i := maxInt(l.firstVisible, 0); i <= l.lastVisible; i++ {
		if _, ok := l.rows[i]; ok {
			out = append(out, i)
		}
	}
	count := l.lookup.Count()
	for i := count; i < count+types.FixViewCount; i++ {
		if _, ok := l.rows[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// FirstVisibleDate returns the start date of the first tracked row.
func (l *Layout) FirstVisibleDate() (time.Time, bool) {
	if l.firstVisible < 0 {
		return time.Time{}, false
	}
	return l.lookup.LookupStart(l.firstVisible)
}

// SetSelected marks position as the selected row and recomputes the affected
// geometries. Pass a negative position to clear.
func (l *Layout) SetSelected(position int) {
	prev := l.selected
	l.selected = position
	if prev >= 0 && prev < l.lookup.Count() {
		if _, ok := l.rows[prev]; ok {
			l.addRow(prev)
		}
	}
	if position >= 0 && position < l.lookup.Count() {
		if _, ok := l.rows[position]; ok {
			l.addRow(position)
		}
	}
}

// Selected returns the selected position, -1 when none.
func (l *Layout) Selected() int { return l.selected }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package layout

import (
	"time"

	"github.com/yourusername/calgrid/internal/timegrid"
	"github.com/yourusername/calgrid/internal/types"
)

// DateAt maps a viewport point to a calendar instant, snapped to minuteSpan.
// When allowOverflow is false the time of day clamps to the touched column's
// own day. Fails before the first layout pass.
func (l *Layout) DateAt(x, y float64, minuteSpan int, allowOverflow bool) (time.Time, bool) {
	anchor, ok := l.firstDateLabel()
	if !ok {
		return time.Time{}, false
	}
	ts, ok := l.timeScale()
	if !ok {
		return time.Time{}, false
	}
	d := timegrid.DateAt(x, y, anchor.Start, anchor.Rect.X, l.cfg.ColumnWidth(),
		ts.Rect.Y, l.cfg.RowHeight, minuteSpan, allowOverflow)
	return d, true
}

// ValidPositionX snaps x to the left edge of the day column containing it.
func (l *Layout) ValidPositionX(x float64) (float64, bool) {
	anchor, ok := l.firstDateLabel()
	if !ok {
		return 0, false
	}
	cw := l.cfg.ColumnWidth()
	days := int((x - anchor.Rect.X + 1) / cw)
	return anchor.Rect.X + float64(days)*cw, true
}

// ValidPositionY snaps y to the nearest minuteSpan slot boundary at or above
// it. When allowNegative is false the result clamps at the top of the hour
// grid.
func (l *Layout) ValidPositionY(y float64, minuteSpan int, allowNegative bool) (float64, bool) {
	ts, ok := l.timeScale()
	if !ok {
		return 0, false
	}
	span := l.cfg.RowHeight * float64(minuteSpan) / 60
	slots := int((y - ts.Rect.Y) / span)
	pos := ts.Rect.Y + float64(slots)*span
	if !allowNegative && pos < ts.Rect.Y {
		pos = ts.Rect.Y
	}
	return pos, true
}

// RowAt returns the topmost schedule row containing the point. The selected
// row wins over anything it overlaps, and later positions win over earlier
// ones.
func (l *Layout) RowAt(x, y float64) (int, bool) {
	p := types.Point{X: x, Y: y}
	if l.selected >= 0 {
		if g, ok := l.rows[l.selected]; ok && g.Rect.Contains(p) {
			return l.selected, true
		}
	}
	found := -1
	for i := maxInt(l.firstVisible, 0); i <= l.lastVisible; i++ {
		g, ok := l.rows[i]
		if !ok || g.Kind != types.RowSchedule {
			continue
		}
		if g.Rect.Contains(p) {
			found = i
		}
	}
	if found < 0 {
		return 0, false
	}
	return found, true
}

// SavedState captures the scroll position and tracked window so a viewport
// can be restored across process restarts.
type SavedState struct {
	VerticalScroll   float64 `json:"verticalScroll"`
	FirstDateLabelX  float64 `json:"firstDateLabelX"`
	FirstVisible     int     `json:"firstVisible"`
	LastVisible      int     `json:"lastVisible"`
	FirstVisibleUnix int64   `json:"firstVisibleUnix"`
}

// SaveState snapshots the current viewport.
func (l *Layout) SaveState() SavedState {
	s := SavedState{
		VerticalScroll: l.verticalScroll(),
		FirstVisible:   l.firstVisible,
		LastVisible:    l.lastVisible,
	}
	if g, ok := l.firstDateLabel(); ok {
		s.FirstDateLabelX = g.Rect.X
	} else {
		s.FirstDateLabelX = l.cfg.TimeScaleWidth
	}
	if d, ok := l.FirstVisibleDate(); ok {
		s.FirstVisibleUnix = d.Unix()
	}
	return s
}

// RestoreState primes the layout from a snapshot. The caller follows with
// LayoutAll; the staleness guard resets the viewport if the snapshot no
// longer matches the row source.
func (l *Layout) RestoreState(s SavedState) {
	l.firstVisible = s.FirstVisible
	l.lastVisible = s.LastVisible
	v := s.VerticalScroll
	l.tmpVerticalScroll = &v
	x := s.FirstDateLabelX
	l.tmpFirstLabelX = &x
	if s.FirstVisibleUnix != 0 {
		unix := s.FirstVisibleUnix
		l.firstVisibleUnix = &unix
	}
	l.rows = make(map[int]types.RowGeometry)
}

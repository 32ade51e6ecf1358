package layout

import (
	"math"

	"github.com/yourusername/calgrid/internal/logging"
	"github.com/yourusername/calgrid/internal/types"
)

// GrowthDirection says which end of the row source should grow.
type GrowthDirection int

const (
	GrowPrevious GrowthDirection = iota
	GrowFollowing
)

// GrowthRequest asks the host to extend the row source by Days date labels.
// Requests coalesce: only the most recent unconsumed request is kept.
type GrowthRequest struct {
	Direction GrowthDirection
	Days      int
}

// TakeGrowthRequest returns and clears the pending growth request, nil when
// none is pending. Hosts drain it after each scroll, then call
// PrepareForUpdate, mutate the collection, and LayoutAll.
func (l *Layout) TakeGrowthRequest() *GrowthRequest {
	r := l.pendingGrowth
	l.pendingGrowth = nil
	return r
}

func (l *Layout) requestGrowth(dir GrowthDirection) {
	r := GrowthRequest{Direction: dir, Days: l.cfg.DaysCount}
	l.pendingGrowth = &r
}

// ScrollVertically shifts the hour grid by dy, clamped so the time scale
// never leaves the viewport. Returns the amount actually scrolled.
func (l *Layout) ScrollVertically(dy float64) float64 {
	ts, ok := l.timeScale()
	if !ok || dy == 0 {
		return 0
	}
	var amount float64
	if dy > 0 {
		amount = math.Min(dy, ts.Rect.Bottom()-l.cfg.Height)
	} else {
		amount = math.Max(dy, -(l.cfg.HeaderOffset() - ts.Rect.Y))
	}
	if amount == 0 {
		return 0
	}
	l.offsetVertical(-amount)
	return amount
}

// offsetVertical moves the rows that participate in vertical scrolling.
// Date labels, the header and the header mask stay pinned.
func (l *Layout) offsetVertical(delta float64) {
	for pos, g := range l.rows {
		switch g.Kind {
		case types.RowDateLabel, types.RowHeader, types.RowHeaderMask:
			continue
		}
		g.Rect.Y += delta
		l.rows[pos] = g
	}
}

// ScrollHorizontally shifts the day columns by dx, filling newly exposed
// columns and evicting rows that leave the viewport. Returns the amount
// actually scrolled. When the visible window reaches an end of the row
// source a growth request is recorded for the host to drain.
func (l *Layout) ScrollHorizontally(dx float64) float64 {
	first, ok := l.firstDateLabel()
	if !ok || dx == 0 {
		return 0
	}
	last, ok := l.lastScheduleRow()
	if !ok {
		return 0
	}

	amount := dx
	if dx > 0 {
		if last.Rect.Right()-dx < l.cfg.Width {
			l.fillFollowing(dx)
			if l.lastVisible >= l.lookup.Count()-1 {
				l.requestGrowth(GrowFollowing)
			}
		}
		if g, ok := l.lastScheduleRow(); ok && l.lastVisible >= l.lookup.Count()-1 {
			amount = math.Min(dx, math.Max(0, g.Rect.Right()-l.cfg.Width))
		}
		l.evictLeft(amount)
	} else {
		if first.Rect.X-dx > 0 {
			l.fillPrevious(dx)
			if l.firstVisible <= 0 {
				l.requestGrowth(GrowPrevious)
			}
		}
		if g, ok := l.firstDateLabel(); ok && l.firstVisible <= 0 {
			amount = math.Max(dx, math.Min(0, g.Rect.X-l.cfg.TimeScaleWidth))
		}
		l.evictRight(amount)
	}
	if amount == 0 {
		return 0
	}
	l.offsetHorizontal(-amount)

	if date, ok := l.FirstVisibleDate(); ok {
		l.listener.FirstItemChanged(l.firstVisible, date)
	}
	return amount
}

func (l *Layout) offsetHorizontal(delta float64) {
	for pos, g := range l.rows {
		switch g.Kind {
		case types.RowTimeScale, types.RowHeader, types.RowHeaderMask:
			continue
		}
		g.Rect.X += delta
		l.rows[pos] = g
	}
}

// fillFollowing lays out rows after the tracked window until the new columns
// cover the right edge of the viewport once everything has shifted by dx.
func (l *Layout) fillFollowing(dx float64) {
	count := l.lookup.Count()
	for i := l.lastVisible + 1; i < count; i++ {
		right := l.addRow(i)
		l.lastVisible = i
		if right-dx > l.cfg.Width && l.lookup.IsDateLabel(i+1) {
			break
		}
	}
}

// fillPrevious lays out rows before the tracked window until the new columns
// cover the left edge of the viewport once everything has shifted by -dx.
// Rows are added in descending position order; a date label completes its
// column.
func (l *Layout) fillPrevious(dx float64) {
	for i := l.firstVisible - 1; i >= 0; i-- {
		g := l.scheduleGeometry(i)
		l.rows[i] = g
		l.firstVisible = i
		if g.Kind == types.RowDateLabel && g.Rect.X-dx <= 0 {
			break
		}
	}
}

// evictLeft drops rows whose right edge will be off-screen after shifting
// left by amount.
func (l *Layout) evictLeft(amount float64) {
	for l.firstVisible < l.lastVisible {
		g, ok := l.rows[l.firstVisible]
		if !ok {
			break
		}
		if g.Rect.Right()-amount >= 0 {
			break
		}
		delete(l.rows, l.firstVisible)
		l.firstVisible++
	}
}

// evictRight drops rows whose left edge will be off-screen after shifting
// right by -amount.
func (l *Layout) evictRight(amount float64) {
	for l.lastVisible > l.firstVisible {
		g, ok := l.rows[l.lastVisible]
		if !ok {
			break
		}
		if g.Rect.X-amount <= l.cfg.Width {
			break
		}
		delete(l.rows, l.lastVisible)
		l.lastVisible--
	}
}

// ScrollToDate performs a horizontal jump so that date's column lands at the
// left content edge, relaying everything.
func (l *Layout) ScrollToDate(position int) {
	if position < 0 || position >= l.lookup.Count() {
		logging.Warn().Int("position", position).Msg("scrollToDate: position out of range")
		return
	}
	v := l.verticalScroll()
	l.firstVisible = position
	l.lastVisible = position
	l.rows = make(map[int]types.RowGeometry)
	l.tmpVerticalScroll = &v
	x := l.cfg.TimeScaleWidth
	l.tmpFirstLabelX = &x
	l.LayoutAll()
}

package gesture

import (
	"math"
	"time"

	"github.com/yourusername/calgrid/internal/layout"
	"github.com/yourusername/calgrid/internal/logging"
	"github.com/yourusername/calgrid/internal/schedule"
)

// State is the interaction mode of the controller.
type State int

const (
	// StateIdle means no row is selected and no gesture is in progress.
	StateIdle State = iota
	// StateSelected means a row is selected and waiting for an edit gesture.
	StateSelected
	// StateDrag means the selected row is being moved.
	StateDrag
	// StateDragStart means the top edge of the selected row is being dragged.
	StateDragStart
	// StateDragEnd means the bottom edge of the selected row is being dragged.
	StateDragEnd
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateDrag:
		return "drag"
	case StateDragStart:
		return "dragStart"
	case StateDragEnd:
		return "dragEnd"
	default:
		return "unknown"
	}
}

// EdgeScrollRatio is the fraction of the viewport height at each edge that
// triggers auto-scroll while dragging.
const EdgeScrollRatio = 0.2

const (
	defaultEdgeTouchSize = 16.0
	defaultTouchSlop     = 8.0
	defaultMaxDragScroll = 20.0
)

// Callback is the contract between the controller and the hosting
// application. The host owns the collection; OnMove is where edits are
// committed back to it.
type Callback interface {
	// IsEditable reports whether the row at position accepts edit gestures.
	IsEditable(position int) bool

	// ScheduleItem returns the item at position, nil when out of range.
	ScheduleItem(position int) schedule.Item

	// OnMove asks the host to move the selected item to the proposed
	// interval. Returns true when the move was applied.
	OnMove(position int, start, end time.Time) bool

	// OnSelected is called when a row becomes selected.
	OnSelected(position int)

	// OnSelectionFinished is called when a selection ends. position is nil
	// when the item was deleted while selected. prev is the item as it was
	// when the selection started. requestCode is the value passed to
	// ClearSelection, nil otherwise.
	OnSelectionFinished(position *int, prev schedule.Item, requestCode *int)

	// CreateItem asks the host to create a new item starting at date,
	// returning its position, or nil to decline.
	CreateItem(date time.Time) *int

	// MinuteSpan is the snapping granularity for edits, in minutes.
	MinuteSpan() int
}

// Controller turns pointer events into selection and edit operations on the
// layout. One interaction is active at a time.
type Controller struct {
	layout *layout.Layout
	cb     Callback

	state    State
	selected int

	// Item snapshot taken when the selection started, reported back on
	// OnSelectionFinished so hosts can offer undo.
	selectedItem schedule.Item

	tracking bool
	moved    bool

	initialTouchX float64
	initialTouchY float64

	// Snapped displacement from the selected row's position at gesture
	// start.
	dx float64
	dy float64

	// The selected row's geometry at the moment it was selected, so edits
	// stay anchored even as the layout relays underneath.
	selectedStartX float64
	selectedStartY float64
	selectedEndY   float64

	createWhenSingleTap bool
	createdPosition     *int

	dragScrollStart time.Time

	now           func() time.Time
	edgeTouchSize float64
	touchSlop     float64
	maxDragScroll float64
}

// NewController returns a controller driving layout through cb.
func NewController(l *layout.Layout, cb Callback) *Controller {
	return &Controller{
		layout:        l,
		cb:            cb,
		state:         StateIdle,
		selected:      -1,
		now:           time.Now,
		edgeTouchSize: defaultEdgeTouchSize,
		touchSlop:     defaultTouchSlop,
		maxDragScroll: defaultMaxDragScroll,
	}
}

// State returns the current interaction state.
func (c *Controller) State() State { return c.state }

// Selected returns the selected position, -1 when none.
func (c *Controller) Selected() int { return c.selected }

// TouchDown begins an interaction at the given viewport point. Returns true
// when the controller consumed the event.
func (c *Controller) TouchDown(x, y float64) bool {
	c.tracking = true
	c.moved = false
	c.initialTouchX = x
	c.initialTouchY = y
	c.createWhenSingleTap = c.selected < 0

	if c.selected >= 0 {
		if next, ok := c.checkStartDragging(x, y); ok {
			c.Select(c.selected, next, nil)
		} else {
			// Touch landed outside the selected row.
			c.Select(-1, StateIdle, nil)
		}
	}
	return c.selected >= 0
}

// checkStartDragging decides which edit state a touch on the selected row
// starts. The edge zones shrink for short rows, and split edges are not
// grabbable.
func (c *Controller) checkStartDragging(x, y float64) (State, bool) {
	g, ok := c.layout.Row(c.selected)
	if !ok {
		return StateIdle, false
	}
	offset := c.edgeTouchSize
	r := g.Rect
	if y < r.Y-offset || y > r.Bottom()+offset || x < r.X-offset || x > r.Right()+offset {
		return StateIdle, false
	}
	innerOffset := offset
	if r.Height <= offset*5 {
		innerOffset = math.Max(r.Height-offset*3, 0)
	}
	switch {
	case y < r.Y+innerOffset && !g.IsStartSplit:
		return StateDragStart, true
	case y > r.Bottom()-innerOffset && !g.IsEndSplit:
		return StateDragEnd, true
	default:
		return StateDrag, true
	}
}

// TouchMove continues the interaction. Returns true when the controller
// consumed the event.
func (c *Controller) TouchMove(x, y float64) bool {
	if !c.tracking {
		return false
	}
	if math.Abs(x-c.initialTouchX) > c.touchSlop || math.Abs(y-c.initialTouchY) > c.touchSlop {
		c.moved = true
	}
	if c.selected < 0 {
		return false
	}
	switch c.state {
	case StateDrag, StateDragStart, StateDragEnd:
		c.updateDxDy(x, y)
		c.moveIfNecessary()
		c.Tick()
		return true
	}
	return false
}

// TouchUp ends the interaction. A release without slop movement is a tap,
// which selects the row under the point or creates a new item in empty
// space.
func (c *Controller) TouchUp(x, y float64) {
	defer func() { c.tracking = false }()
	switch c.state {
	case StateDrag, StateDragStart, StateDragEnd:
		c.moveIfNecessary()
		c.Select(c.selected, StateSelected, nil)
		return
	}
	if c.tracking && !c.moved {
		c.singleTap(x, y)
	}
}

// Cancel aborts any interaction in progress and clears the selection.
func (c *Controller) Cancel() {
	c.tracking = false
	c.Select(-1, StateIdle, nil)
}

func (c *Controller) singleTap(x, y float64) {
	if pos, ok := c.layout.RowAt(x, y); ok {
		if !c.cb.IsEditable(pos) {
			return
		}
		c.initialTouchX = x
		c.initialTouchY = y
		c.dx, c.dy = 0, 0
		c.Select(pos, StateSelected, nil)
		return
	}
	if c.createWhenSingleTap && c.state == StateIdle && c.selected < 0 {
		date, ok := c.layout.DateAt(x, y, c.cb.MinuteSpan(), true)
		if !ok {
			return
		}
		if pos := c.cb.CreateItem(date); pos != nil {
			createdPos := *pos
			c.createdPosition = &createdPos
			logging.Debug().Int("position", createdPos).Msg("item created from tap")
		}
	}
}

// Select moves the controller to state with position selected. Pass a
// negative position with StateIdle to clear. A change of selection finalizes
// the previous one through OnSelectionFinished.
func (c *Controller) Select(position int, state State, requestCode *int) {
	if position == c.selected && state == c.state {
		return
	}
	changeSelection := position != c.selected && (state == StateSelected || state == StateIdle)
	c.state = state

	if c.selected >= 0 && changeSelection {
		c.finishSelection(c.selected, requestCode)
		c.selected = -1
		c.layout.SetSelected(-1)
	}

	if position >= 0 && state != StateIdle {
		if changeSelection {
			c.selectedItem = c.cb.ScheduleItem(position)
			c.cb.OnSelected(position)
		}
		c.selected = position
		c.layout.SetSelected(position)
		if g, ok := c.layout.Row(position); ok {
			c.selectedStartX = g.Rect.X
			c.selectedStartY = g.Rect.Y
			c.selectedEndY = g.Rect.Bottom()
		}
		c.dx, c.dy = 0, 0
	}

	if c.createdPosition != nil && c.selected != *c.createdPosition {
		c.createdPosition = nil
	}
}

// ClearSelection returns to idle, reporting requestCode through
// OnSelectionFinished.
func (c *Controller) ClearSelection(requestCode *int) {
	c.Select(-1, StateIdle, requestCode)
}

func (c *Controller) finishSelection(position int, requestCode *int) {
	prev := c.selectedItem
	cur := c.cb.ScheduleItem(position)
	var posPtr *int
	if cur != nil && prev != nil && cur.Key() == prev.Key() {
		p := position
		posPtr = &p
	}
	c.cb.OnSelectionFinished(posPtr, prev, requestCode)
	c.selectedItem = nil
}

// updateDxDy snaps the pointer displacement to column and slot boundaries.
// A fragment split on both edges cannot change its times vertically.
func (c *Controller) updateDxDy(x, y float64) {
	g, ok := c.layout.Row(c.selected)
	if !ok {
		return
	}
	vx, ok := c.layout.ValidPositionX(x)
	if !ok {
		return
	}
	c.dx = vx - c.selectedStartX

	if !g.IsStartSplit || !g.IsEndSplit {
		tmpDy := y - c.initialTouchY
		vy, ok := c.layout.ValidPositionY(c.selectedStartY+tmpDy, c.cb.MinuteSpan(), c.state == StateDrag)
		if !ok {
			return
		}
		c.dy = vy - c.selectedStartY
	} else {
		c.dy = 0
	}
}

// moveIfNecessary maps the displaced row back to a calendar interval and
// offers it to the host. Resizes clamp at the fixed edge so the interval
// never inverts.
func (c *Controller) moveIfNecessary() {
	g, ok := c.layout.Row(c.selected)
	if !ok {
		return
	}
	span := c.cb.MinuteSpan()

	var start, end time.Time
	switch c.state {
	case StateDrag:
		s, ok := c.layout.DateAt(c.selectedStartX+c.dx, c.selectedStartY+c.dy, span, true)
		if !ok {
			return
		}
		e, ok := c.layout.DateAt(c.selectedStartX+c.dx, c.selectedEndY+c.dy, span, true)
		if !ok {
			return
		}
		start, end = s, e
	case StateDragStart:
		end = g.End
		s, ok := c.layout.DateAt(c.selectedStartX, c.selectedStartY+c.dy, span, true)
		if !ok {
			return
		}
		if s.After(end) {
			s = end
		}
		start = s
	case StateDragEnd:
		start = g.Start
		e, ok := c.layout.DateAt(c.selectedStartX, c.selectedEndY+c.dy, span, true)
		if !ok {
			return
		}
		if e.Before(start) {
			e = start
		}
		end = e
	default:
		return
	}

	if g.Start.Equal(start) && g.End.Equal(end) {
		return
	}
	logging.Debug().
		Str("state", c.state.String()).
		Time("start", start).
		Time("end", end).
		Msg("proposing move")
	c.cb.OnMove(c.selected, start, end)
}

// OnRowAttached should be called when a row becomes visible. A freshly
// created item is auto-selected once its row appears.
func (c *Controller) OnRowAttached(position int) {
	if c.createdPosition != nil && *c.createdPosition == position {
		c.Select(position, StateSelected, nil)
	}
}

// OnRowDetached should be called when a row leaves the visible window. A
// selection whose row disappears is cleared.
func (c *Controller) OnRowDetached(position int) {
	if c.selected >= 0 && c.selected == position {
		c.Select(-1, StateIdle, nil)
	}
}

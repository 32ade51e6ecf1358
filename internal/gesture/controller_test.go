package gesture

import (
	"fmt"
	"testing"
	"time"

	"github.com/yourusername/calgrid/internal/collection"
	"github.com/yourusername/calgrid/internal/layout"
	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/types"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func testConfig() types.GridConfig {
	return types.GridConfig{
		DaysCount:         7,
		RowHeight:         48,
		DateLabelHeight:   32,
		TimeScaleWidth:    48,
		CurrentTimeHeight: 2,
		ItemRightPadding:  8,
		SubColumnMargin:   2,
		MinuteSpan:        15,
		Width:             958,
		Height:            640,
	}
}

// testCallback plays the host: it applies accepted edits to the collection
// and records every notification for assertion.
type testCallback struct {
	coll *collection.Collection
	lay  *layout.Layout

	selected      []int
	finished      []string
	moves         []string
	declineCreate bool
}

func (cb *testCallback) IsEditable(position int) bool {
	item := cb.coll.Item(position)
	return item != nil && !item.IsDateLabel() && !item.IsCurrentTime() && !item.IsFillItem()
}

func (cb *testCallback) ScheduleItem(position int) schedule.Item {
	return cb.coll.Item(position)
}

func (cb *testCallback) OnMove(position int, start, end time.Time) bool {
	cb.moves = append(cb.moves, fmt.Sprintf("%d %s %s", position, start.Format("01-02 15:04"), end.Format("15:04")))
	cb.lay.PrepareForUpdate()
	cb.coll.UpdateItem(position, start, end)
	cb.lay.LayoutAll()
	return true
}

func (cb *testCallback) OnSelected(position int) {
	cb.selected = append(cb.selected, position)
}

func (cb *testCallback) OnSelectionFinished(position *int, prev schedule.Item, requestCode *int) {
	pos := "nil"
	if position != nil {
		pos = fmt.Sprintf("%d", *position)
	}
	key := "nil"
	if prev != nil {
		key = prev.Key()
	}
	code := "nil"
	if requestCode != nil {
		code = fmt.Sprintf("%d", *requestCode)
	}
	cb.finished = append(cb.finished, fmt.Sprintf("%s %s %s", pos, key, code))
}

func (cb *testCallback) CreateItem(date time.Time) *int {
	if cb.declineCreate {
		return nil
	}
	cb.lay.PrepareForUpdate()
	cb.coll.AddItems(schedule.NewEventWithKey("created", "new", date, date.Add(time.Hour)))
	cb.lay.LayoutAll()
	positions := cb.coll.PositionsByKey("created")
	if len(positions) == 0 {
		return nil
	}
	p := positions[0]
	return &p
}

func (cb *testCallback) MinuteSpan() int { return 15 }

// fixture sets up a two-week grid starting Mon 2026-03-02 with one event on
// Wed Mar 4 at 9:00. The event sits at position 3 in column 2 (X 308).
func fixture() (*testCallback, *Controller) {
	coll := collection.New(nil)
	coll.AddItems(schedule.NewEventWithKey("a", "standup",
		at(2026, time.March, 4, 9, 0), at(2026, time.March, 4, 10, 0)))
	coll.AddPreviousDateLabels(2)
	coll.AddFollowingDateLabels(11)
	lay := layout.New(testConfig(), collection.NewLookup(coll), nil)
	lay.LayoutAll()
	cb := &testCallback{coll: coll, lay: lay}
	return cb, NewController(lay, cb)
}

func tapSelect(t *testing.T, ctrl *Controller, x, y float64) {
	t.Helper()
	ctrl.TouchDown(x, y)
	ctrl.TouchUp(x, y)
	if ctrl.State() != StateSelected {
		t.Fatalf("state after tap = %v, want selected", ctrl.State())
	}
}

func TestTapSelectsRow(t *testing.T) {
	cb, ctrl := fixture()

	if ctrl.TouchDown(350, 480) {
		t.Error("TouchDown with no selection should not consume")
	}
	ctrl.TouchUp(350, 480)

	if ctrl.State() != StateSelected || ctrl.Selected() != 3 {
		t.Fatalf("state = %v selected = %d, want selected/3", ctrl.State(), ctrl.Selected())
	}
	if len(cb.selected) != 1 || cb.selected[0] != 3 {
		t.Errorf("OnSelected calls = %v, want [3]", cb.selected)
	}
	if g, _ := cb.lay.Row(3); !g.Selected {
		t.Error("layout row not marked selected")
	}
}

func TestTapOnNonEditableRowIsIgnored(t *testing.T) {
	cb, ctrl := fixture()
	cb.lay.PrepareForUpdate()
	cb.coll.AddItems(schedule.NewFillEventWithKey("fill", "holiday",
		at(2026, time.March, 4, 0, 0), at(2026, time.March, 4, 23, 0)))
	cb.lay.LayoutAll()

	// The fill item heads its day; position 3 is now the fill row.
	ctrl.TouchDown(350, 200)
	ctrl.TouchUp(350, 200)

	if ctrl.State() != StateIdle || ctrl.Selected() != -1 {
		t.Errorf("state = %v selected = %d, want idle/none", ctrl.State(), ctrl.Selected())
	}
	if len(cb.selected) != 0 {
		t.Errorf("OnSelected calls = %v, want none", cb.selected)
	}
}

func TestTapEmptySpaceCreatesItem(t *testing.T) {
	cb, ctrl := fixture()

	ctrl.TouchDown(500, 500)
	ctrl.TouchUp(500, 500)

	positions := cb.coll.PositionsByKey("created")
	if len(positions) != 1 {
		t.Fatalf("created positions = %v, want one", positions)
	}
	created := cb.coll.Item(positions[0])
	if !created.Start().Equal(at(2026, time.March, 5, 9, 45)) {
		t.Errorf("created start = %v, want Mar 5 09:45", created.Start())
	}

	// The host reports the new row attached; it is then auto-selected.
	ctrl.OnRowAttached(positions[0])
	if ctrl.State() != StateSelected || ctrl.Selected() != positions[0] {
		t.Errorf("state = %v selected = %d, want selected/%d", ctrl.State(), ctrl.Selected(), positions[0])
	}
}

func TestTapEmptyWithSelectionOnlyDeselects(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)

	// A tap away from the selected row clears the selection and must not
	// create an item on the same gesture.
	consumed := ctrl.TouchDown(600, 200)
	ctrl.TouchUp(600, 200)

	if consumed {
		t.Error("TouchDown after deselect should not consume")
	}
	if ctrl.State() != StateIdle || ctrl.Selected() != -1 {
		t.Errorf("state = %v selected = %d, want idle/none", ctrl.State(), ctrl.Selected())
	}
	if got := cb.coll.PositionsByKey("created"); got != nil {
		t.Errorf("created positions = %v, want none", got)
	}
	if len(cb.finished) != 1 || cb.finished[0] != "3 a nil" {
		t.Errorf("finished = %v, want [3 a nil]", cb.finished)
	}
}

func TestDeclinedCreateLeavesIdle(t *testing.T) {
	cb, ctrl := fixture()
	cb.declineCreate = true

	ctrl.TouchDown(500, 500)
	ctrl.TouchUp(500, 500)

	if ctrl.createdPosition != nil {
		t.Error("createdPosition set after declined create")
	}
	if ctrl.State() != StateIdle {
		t.Errorf("state = %v, want idle", ctrl.State())
	}
}

func TestDragMovesItem(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)

	if !ctrl.TouchDown(350, 480) {
		t.Fatal("TouchDown on selected row should consume")
	}
	if ctrl.State() != StateDrag {
		t.Fatalf("state = %v, want drag", ctrl.State())
	}

	// Drag down by half an hour.
	if !ctrl.TouchMove(350, 504) {
		t.Fatal("TouchMove during drag should consume")
	}
	if len(cb.moves) != 1 || cb.moves[0] != "3 03-04 09:30 10:30" {
		t.Fatalf("moves = %v, want one half-hour shift", cb.moves)
	}

	ctrl.TouchUp(350, 504)
	if ctrl.State() != StateSelected || ctrl.Selected() != 3 {
		t.Errorf("state = %v selected = %d, want selected/3", ctrl.State(), ctrl.Selected())
	}
	item := cb.coll.Item(3)
	if !item.Start().Equal(at(2026, time.March, 4, 9, 30)) || !item.End().Equal(at(2026, time.March, 4, 10, 30)) {
		t.Errorf("item = [%v, %v], want shifted by 30m", item.Start(), item.End())
	}
	// No duplicate proposal on release.
	if len(cb.moves) != 1 {
		t.Errorf("moves after release = %v, want still one", cb.moves)
	}
}

func TestDragToNextColumn(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)
	ctrl.TouchDown(350, 480)

	// One full column right: dx snaps to the column grid.
	ctrl.TouchMove(350+130, 480)

	if len(cb.moves) != 1 || cb.moves[0] != "3 03-05 09:00 10:00" {
		t.Errorf("moves = %v, want shift to Mar 5", cb.moves)
	}
}

func TestDragStartEdgeResizes(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)

	// Within the edge touch zone above the row's top.
	ctrl.TouchDown(350, 460)
	if ctrl.State() != StateDragStart {
		t.Fatalf("state = %v, want dragStart", ctrl.State())
	}

	ctrl.TouchMove(350, 436)
	if len(cb.moves) != 1 || cb.moves[0] != "3 03-04 08:30 10:00" {
		t.Fatalf("moves = %v, want start pulled to 08:30", cb.moves)
	}

	ctrl.TouchUp(350, 436)
	item := cb.coll.Item(3)
	if !item.Start().Equal(at(2026, time.March, 4, 8, 30)) || !item.End().Equal(at(2026, time.March, 4, 10, 0)) {
		t.Errorf("item = [%v, %v], want [08:30, 10:00]", item.Start(), item.End())
	}
}

func TestDragEndEdgeClampsAtStart(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)

	ctrl.TouchDown(350, 520)
	if ctrl.State() != StateDragEnd {
		t.Fatalf("state = %v, want dragEnd", ctrl.State())
	}

	// Dragging the bottom edge far above the start collapses to a degenerate
	// interval instead of inverting.
	ctrl.TouchMove(350, 330)
	if len(cb.moves) != 1 || cb.moves[0] != "3 03-04 09:00 09:00" {
		t.Errorf("moves = %v, want end clamped at start", cb.moves)
	}
}

func TestSplitEdgeIsNotGrabbable(t *testing.T) {
	cb, ctrl := fixture()
	cb.lay.PrepareForUpdate()
	cb.coll.AddItems(schedule.NewEventWithKey("span", "overnight",
		at(2026, time.March, 4, 22, 0), at(2026, time.March, 5, 2, 0)))
	cb.lay.LayoutAll()

	// The first fragment (22:00 to midnight) sits at position 4 below the
	// standup event; its bottom edge is a split artifact.
	positions := cb.coll.PositionsByKey("span")
	if len(positions) != 2 || positions[0] != 4 {
		t.Fatalf("span positions = %v, want [4 6]", positions)
	}

	tapSelect(t, ctrl, 350, 1100)
	if ctrl.Selected() != 4 {
		t.Fatalf("selected = %d, want 4", ctrl.Selected())
	}

	// rect spans Y 1088..1184; the bottom edge zone would start at 1168.
	ctrl.TouchDown(350, 1175)
	if ctrl.State() != StateDrag {
		t.Errorf("state = %v, want drag (split edge not grabbable)", ctrl.State())
	}
}

func TestBothEdgesSplitLocksVertical(t *testing.T) {
	cb, ctrl := fixture()
	cb.lay.PrepareForUpdate()
	cb.coll.AddItems(schedule.NewEventWithKey("span", "multi",
		at(2026, time.March, 4, 22, 0), at(2026, time.March, 6, 2, 0)))
	cb.lay.LayoutAll()

	// The middle fragment covers all of Mar 5; both its edges are split.
	positions := cb.coll.PositionsByKey("span")
	if len(positions) != 3 {
		t.Fatalf("span positions = %v, want three", positions)
	}
	mid := positions[1]

	tapSelect(t, ctrl, 500, 500)
	if ctrl.Selected() != mid {
		t.Fatalf("selected = %d, want %d", ctrl.Selected(), mid)
	}

	ctrl.TouchDown(500, 500)
	ctrl.TouchMove(500, 560)

	if ctrl.dy != 0 {
		t.Errorf("dy = %v, want locked to 0", ctrl.dy)
	}
	if len(cb.moves) != 0 {
		t.Errorf("moves = %v, want none for a vertical drag of a day-spanning fragment", cb.moves)
	}
}

func TestClearSelectionReportsRequestCode(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)

	code := 42
	ctrl.ClearSelection(&code)

	if ctrl.State() != StateIdle || ctrl.Selected() != -1 {
		t.Errorf("state = %v selected = %d, want idle/none", ctrl.State(), ctrl.Selected())
	}
	if len(cb.finished) != 1 || cb.finished[0] != "3 a 42" {
		t.Errorf("finished = %v, want [3 a 42]", cb.finished)
	}
}

func TestSelectionFinishedNilWhenItemGone(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)

	// Deleting the selected item leaves a different row at its position.
	cb.lay.PrepareForUpdate()
	cb.coll.DeleteItems(3)
	cb.lay.LayoutAll()
	ctrl.ClearSelection(nil)

	if len(cb.finished) != 1 || cb.finished[0] != "nil a nil" {
		t.Errorf("finished = %v, want [nil a nil]", cb.finished)
	}
}

func TestRowDetachedClearsSelection(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)

	ctrl.OnRowDetached(3)

	if ctrl.State() != StateIdle || ctrl.Selected() != -1 {
		t.Errorf("state = %v selected = %d, want idle/none", ctrl.State(), ctrl.Selected())
	}
	if len(cb.finished) != 1 {
		t.Errorf("finished = %v, want one", cb.finished)
	}
}

func TestCancelAbortsDrag(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)
	ctrl.TouchDown(350, 480)

	ctrl.Cancel()

	if ctrl.State() != StateIdle || ctrl.Selected() != -1 {
		t.Errorf("state = %v selected = %d, want idle/none", ctrl.State(), ctrl.Selected())
	}
	if len(cb.moves) != 0 {
		t.Errorf("moves = %v, want none", cb.moves)
	}
}

func TestAutoScrollAtBottomEdge(t *testing.T) {
	cb, ctrl := fixture()
	tapSelect(t, ctrl, 350, 480)
	ctrl.TouchDown(350, 480)

	// Dragging near the bottom of the viewport pushes the row past the edge
	// and scrolls the hour grid.
	ctrl.TouchMove(350, 620)

	ts, _ := cb.lay.Row(cb.coll.Len())
	if ts.Rect.Y >= 32 {
		t.Errorf("time scale Y = %v, want scrolled above 32", ts.Rect.Y)
	}
	if ctrl.State() != StateDrag {
		t.Errorf("state = %v, want still dragging", ctrl.State())
	}
	if ctrl.dragScrollStart.IsZero() {
		t.Error("dragScrollStart not recorded")
	}
}

func TestInterpolatorMinimumStep(t *testing.T) {
	_, ctrl := fixture()

	tests := []struct {
		name        string
		viewSize    float64
		outOfBounds float64
		sinceStart  time.Duration
		expected    float64
	}{
		{"cold start floors to one", 130, 5, 0, 1},
		{"cold start negative floors", 130, -5, 0, -1},
		{"full speed at limit", 130, 130, dragScrollAccelerationLimit, 20},
		{"full speed negative", 130, -130, dragScrollAccelerationLimit, -20},
		// 10% out of bounds: 20 * (1 - 0.9^5), truncated.
		{"partial out of bounds caps hard", 130, 13, dragScrollAccelerationLimit, 8},
	}
	for _, tt := range tests {
		got := ctrl.interpolateOutOfBoundsScroll(tt.viewSize, tt.outOfBounds, tt.sinceStart)
		if got != tt.expected {
			t.Errorf("%s: interpolate = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

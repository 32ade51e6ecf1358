package schedule

import (
	"sort"
	"time"

	"github.com/yourusername/calgrid/internal/timegrid"
)

// Item is the interface implemented by anything placed on the calendar grid:
// ordinary schedule events, date labels, the current-time marker, and
// decorative fill items.
//
// Items follow an immutable-update pattern: Update and WithOrigin return new
// values and never mutate the receiver, so fragments and originals remain
// independently comparable.
type Item interface {
	// Key returns the stable identity of the item. All midnight-split
	// fragments of one logical item share its key.
	Key() string

	// Start returns the start of the half-open [start, end) interval.
	Start() time.Time

	// End returns the end of the half-open [start, end) interval.
	End() time.Time

	// Update returns a new Item with the interval replaced.
	Update(start, end time.Time) Item

	// Origin returns the pre-split item this fragment was derived from, or
	// nil for items that span a single day. The returned value is an
	// immutable snapshot, not a live reference.
	Origin() Item

	// WithOrigin returns a copy of the item with the origin snapshot set.
	WithOrigin(origin Item) Item

	// IsDateLabel reports whether this item is a date-label row.
	IsDateLabel() bool

	// IsCurrentTime reports whether this item is the current-time marker.
	IsCurrentTime() bool

	// IsFillItem reports whether this item is a decorative fill placeholder.
	IsFillItem() bool
}

// Equal reports whether two items are the same value: same key, interval
// and fill flag. Origins are intentionally ignored so a fragment compares
// equal to an identical fragment regardless of how it was produced.
func Equal(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key() &&
		a.Start().Equal(b.Start()) &&
		a.End().Equal(b.End()) &&
		a.IsFillItem() == b.IsFillItem()
}

// IsStartSplit reports whether the item's start edge is an artifact of
// midnight splitting rather than the true start of the original item.
func IsStartSplit(item Item) bool {
	origin := item.Origin()
	if origin == nil {
		return false
	}
	return item.Start().After(origin.Start())
}

// IsEndSplit reports whether the item's end edge is an artifact of midnight
// splitting rather than the true end of the original item.
func IsEndSplit(item Item) bool {
	origin := item.Origin()
	if origin == nil {
		return false
	}
	return item.End().Before(origin.End())
}

// SplitAtMidnight splits an item into one fragment per calendar day. Items
// whose interval falls on a single day are returned unchanged as a
// one-element slice. Every fragment carries the pre-split item as its
// origin, and every internal boundary lands exactly on local midnight.
func SplitAtMidnight(item Item) []Item {
	if timegrid.SameDay(item.Start(), item.End()) {
		return []Item{item}
	}

	origin := item
	var list []Item
	s := item.Start()
	e := item.End()
	for {
		start := s
		endOfDate := timegrid.Midnight(s).AddDate(0, 0, 1)
		if e.After(endOfDate) {
			list = append(list, item.Update(start, endOfDate).WithOrigin(origin))
			s = endOfDate
		} else {
			list = append(list, item.Update(start, e).WithOrigin(origin))
			break
		}
	}
	return list
}

// ReflectUpdateToOrigin reconstructs the update to apply to the original
// unsplit item, given a fragment and its proposed new edges. The edit is
// classified as a move when both edges shift, otherwise as a resize of the
// changed edge. Resizing a split edge is a no-op because that boundary is a
// midnight-splitting artifact, not a user-editable edge.
func ReflectUpdateToOrigin(item Item, start, end time.Time) Item {
	origin := item.Origin()
	if origin == nil {
		return item.Update(start, end)
	}
	switch {
	case start.Equal(item.Start()):
		// end is changed
		if IsEndSplit(item) {
			return origin
		}
		return origin.Update(origin.Start(), end)
	case end.Equal(item.End()):
		// start is changed
		if IsStartSplit(item) {
			return origin
		}
		return origin.Update(start, origin.End())
	default:
		// move: shift the origin by the touched edge's delta. When the
		// fragment's start is split, the end edge is the one the user holds.
		var minuteDiff int
		if IsStartSplit(item) {
			minuteDiff = int(timegrid.MinuteDiff(end, item.End()))
		} else {
			minuteDiff = int(timegrid.MinuteDiff(start, item.Start()))
		}
		d := time.Duration(minuteDiff) * time.Minute
		return origin.Update(origin.Start().Add(d), origin.End().Add(d))
	}
}

// Overlaps reports whether two items' intervals overlap.
//
// Boundary equality is special-cased: a shared start always counts, and a
// shared end counts only when both intervals are non-degenerate. When
// ignoreInclusion is false, pure containment of one interval inside the
// other also counts.
func Overlaps(a, b Item, ignoreInclusion bool) bool {
	s := a.Start()
	e := a.End()
	ts := b.Start()
	te := b.End()

	// start or end is same time.
	if s.Equal(ts) || (e.Equal(te) && s.Before(e) && ts.Before(te)) {
		return true
	}

	// overlaps (not inclusion)
	if (s.Before(ts) && e.After(ts) && e.Before(te)) || (s.Before(te) && e.After(te) && s.After(ts)) {
		return true
	}

	// inclusion
	if !ignoreInclusion {
		if (s.Before(ts) && e.After(te)) || (s.After(ts) && e.Before(te)) {
			return true
		}
	}

	return false
}

// Compare imposes the total order used by the row collection: start first,
// end as tie-break, except that a fill item sorts immediately before a
// same-day non-fill item when neither side is a date label.
func Compare(a, b Item) int {
	if a.IsFillItem() != b.IsFillItem() && timegrid.SameDay(a.Start(), b.Start()) && !a.IsDateLabel() && !b.IsDateLabel() {
		if a.IsFillItem() {
			return -1
		}
		return 1
	}
	if c := compareTime(a.Start(), b.Start()); c != 0 {
		return c
	}
	return compareTime(a.End(), b.End())
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Sort returns a copy of items sorted by the collection's total order.
func Sort(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return Compare(out[i], out[j]) < 0
	})
	return out
}

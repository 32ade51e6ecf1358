package collection

import (
	"time"

	"github.com/yourusername/calgrid/internal/logging"
	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/timegrid"
)

// Collection is the ordered, mutable sequence of all renderable rows: date
// labels interleaved with schedule fragments and an optional current-time
// row, kept sorted by schedule.Compare. It owns insertion-position search,
// update reconciliation, overlap computation and infinite-scroll date-label
// growth.
//
// Collection is not safe for concurrent use; like the layout and gesture
// layers it runs on the single event-driven thread.
type Collection struct {
	items    []schedule.Item
	listener Listener
}

// New creates an empty collection. A nil listener is replaced by a no-op.
func New(listener Listener) *Collection {
	if listener == nil {
		listener = nopListener{}
	}
	return &Collection{listener: listener}
}

// Len returns the number of rows, excluding chrome rows.
func (c *Collection) Len() int {
	return len(c.items)
}

// Item returns the row at position, or nil when out of range.
func (c *Collection) Item(position int) schedule.Item {
	if position < 0 || position >= len(c.items) {
		return nil
	}
	return c.items[position]
}

// insertPosition returns the first index whose row sorts after item: the
// stable insertion point honoring the total order, including the fill-item
// tie-break.
func (c *Collection) insertPosition(item schedule.Item) int {
	for i, existing := range c.items {
		if schedule.Compare(item, existing) < 0 {
			return i
		}
	}
	return len(c.items)
}

// indexOf returns the position of the row equal in value to item, or -1.
func (c *Collection) indexOf(item schedule.Item) int {
	for i, existing := range c.items {
		if schedule.Equal(existing, item) {
			return i
		}
	}
	return -1
}

// insert places one row at its sorted position and notifies, returning the
// position used.
func (c *Collection) insert(item schedule.Item) int {
	position := c.insertPosition(item)
	c.items = append(c.items, nil)
	copy(c.items[position+1:], c.items[position:])
	c.items[position] = item
	c.listener.Inserted(position, 1)
	return position
}

// removeAt removes the row at position without notifying; callers decide
// which notification the removal is part of.
func (c *Collection) removeAt(position int) {
	c.items = append(c.items[:position], c.items[position+1:]...)
}

// AddItems adds logical items to the collection. Input is sorted first. On
// the first call the date-label range is bootstrapped to span the earliest
// through the latest item; later calls extend the range only when new items
// fall outside current coverage. An item whose key already exists is
// diffed: identical values are a no-op, changed values replace the old
// fragment set. Non-label items are midnight-split and each fragment is
// inserted at its sorted position with a fine-grained notification.
func (c *Collection) AddItems(items ...schedule.Item) {
	list := schedule.Sort(items)
	if len(list) == 0 {
		return
	}
	firstItem := list[0]
	lastItem := list[len(list)-1]

	// first, establish date-label coverage
	if len(c.items) == 0 {
		labels := schedule.NewDateLabel(firstItem.Start()).NextDaysUntil(lastItem.Start(), true)
		if len(labels) == 0 {
			labels = []schedule.Item{schedule.NewDateLabel(firstItem.Start())}
		}
		c.items = append(c.items, labels...)
		c.listener.Inserted(0, len(labels))
	} else {
		if first := c.FirstDateLabel(); first != nil && first.Start().After(firstItem.Start()) {
			c.AddPreviousDateLabelsUntil(firstItem.Start())
		}
		if last := c.LastDateLabel(); last != nil && last.Start().Before(lastItem.Start()) {
			c.AddFollowingDateLabelsUntil(lastItem.Start())
		}
	}

	// next, add the schedule items themselves
	for _, item := range list {
		if item.IsDateLabel() {
			continue
		}
		if positions := c.PositionsByKey(item.Key()); len(positions) > 0 {
			old := c.items[positions[0]]
			if origin := old.Origin(); origin != nil {
				old = origin
			}
			if schedule.Equal(old, item) {
				// idempotent re-add, nothing to do
				continue
			}
			for i := len(positions) - 1; i >= 0; i-- {
				c.removeAt(positions[i])
				c.listener.Removed(positions[i], 1)
			}
		}
		for _, fragment := range schedule.SplitAtMidnight(item) {
			c.insert(fragment)
		}
	}
}

// ItemsWithSameKey returns all fragments that share the logical identity of
// the row at position. A row with no origin is its own only fragment.
func (c *Collection) ItemsWithSameKey(position int) []schedule.Item {
	item := c.Item(position)
	if item == nil {
		return nil
	}
	origin := item.Origin()
	if origin == nil {
		return []schedule.Item{item}
	}
	var list []schedule.Item
	for _, si := range c.items {
		if si.Key() == origin.Key() {
			list = append(list, si)
		}
		if si.Start().After(origin.End()) {
			break
		}
	}
	return list
}

// PositionsByKey returns the positions of every row carrying key.
func (c *Collection) PositionsByKey(key string) []int {
	var positions []int
	for i, si := range c.items {
		if si.Key() == key {
			positions = append(positions, i)
		}
	}
	return positions
}

// DateLabelPosition returns the position of the date label on the same day
// as date. It returns nil when the collection holds no labels, 0 when date
// precedes every label, and the last position when date follows every
// label.
func (c *Collection) DateLabelPosition(date time.Time) *int {
	var first *time.Time
	for _, si := range c.items {
		if si.IsDateLabel() {
			t := si.Start()
			first = &t
			break
		}
	}
	if first == nil {
		return nil
	}
	if date.Before(*first) {
		zero := 0
		return &zero
	}
	for i, si := range c.items {
		if si.IsDateLabel() && timegrid.SameDay(si.Start(), date) {
			pos := i
			return &pos
		}
	}
	last := len(c.items) - 1
	return &last
}

// FirstDateLabel returns the first date label in the collection, or nil.
func (c *Collection) FirstDateLabel() schedule.Item {
	for _, si := range c.items {
		if si.IsDateLabel() {
			return si
		}
	}
	return nil
}

// LastDateLabel returns the last date label in the collection, or nil.
func (c *Collection) LastDateLabel() schedule.Item {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i].IsDateLabel() {
			return c.items[i]
		}
	}
	return nil
}

// AddPreviousDateLabels prepends count date labels before the current
// first label, for infinite scroll toward the past.
func (c *Collection) AddPreviousDateLabels(count int) {
	first := c.FirstDateLabel()
	if first == nil || count <= 0 {
		return
	}
	labels := schedule.NewDateLabel(first.Start()).PreviousDays(count, false)
	c.prependLabels(labels)
}

// AddPreviousDateLabelsUntil extends label coverage back to date.
func (c *Collection) AddPreviousDateLabelsUntil(date time.Time) {
	first := c.FirstDateLabel()
	if first == nil || !first.Start().After(date) {
		return
	}
	labels := schedule.NewDateLabel(first.Start()).PreviousDaysUntil(date, false)
	c.prependLabels(labels)
}

// AddFollowingDateLabels appends count date labels after the current last
// label, for infinite scroll toward the future.
func (c *Collection) AddFollowingDateLabels(count int) {
	last := c.LastDateLabel()
	if last == nil || count <= 0 {
		return
	}
	labels := schedule.NewDateLabel(last.Start()).NextDays(count, false)
	c.appendLabels(labels)
}

// AddFollowingDateLabelsUntil extends label coverage forward to date.
func (c *Collection) AddFollowingDateLabelsUntil(date time.Time) {
	last := c.LastDateLabel()
	if last == nil || !last.Start().Before(date) {
		return
	}
	labels := schedule.NewDateLabel(last.Start()).NextDaysUntil(date, false)
	c.appendLabels(labels)
}

func (c *Collection) prependLabels(labels []schedule.Item) {
	if len(labels) == 0 {
		return
	}
	c.items = append(labels, c.items...)
	c.listener.Inserted(0, len(labels))
	logging.Debug().Int("count", len(labels)).Msg("date labels prepended")
}

func (c *Collection) appendLabels(labels []schedule.Item) {
	if len(labels) == 0 {
		return
	}
	position := len(c.items)
	c.items = append(c.items, labels...)
	c.listener.Inserted(position, len(labels))
	logging.Debug().Int("count", len(labels)).Msg("date labels appended")
}

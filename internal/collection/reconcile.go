package collection

import (
	"time"

	"github.com/yourusername/calgrid/internal/logging"
	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/timegrid"
)

// UpdateItem applies a new interval to the row at position. The row is
// resolved to its logical item (following origin when the row is a
// fragment), the fragment set is recomputed, and the old and new fragment
// lists are reconciled by count:
//
//   - equal count: pairwise move/replace; rows that keep their position are
//     notified as an in-place change so the host view survives.
//   - grew: the fragment on the originally-touched day (the priority index)
//     reuses the last old row, the rest are inserted.
//   - shrank: the touched old row consumes the last new fragment, surplus
//     old rows are removed.
//
// The count-changing rules exist because a drag only describes the touched
// fragment's new edges and the consequence must propagate across the whole
// multi-day chain without tearing down the dragged view.
func (c *Collection) UpdateItem(position int, start, end time.Time) {
	item := c.Item(position)
	if item == nil {
		return
	}
	var updated schedule.Item
	if item.Origin() == nil {
		updated = item.Update(start, end)
	} else {
		updated = schedule.ReflectUpdateToOrigin(item, start, end)
	}

	oldItems := c.ItemsWithSameKey(position)
	splitItems := schedule.SplitAtMidnight(updated)

	switch {
	case len(splitItems) == len(oldItems):
		logging.Debug().Int("position", position).Msg("updateItem: move")
		for index, oldItem := range oldItems {
			c.moveRow(oldItem, splitItems[index], position)
		}

	case len(splitItems) > len(oldItems):
		// The fragment on the touched fragment's day is kept in place.
		priorityIndex := -1
		for i, si := range splitItems {
			if timegrid.SameDay(si.Start(), item.Start()) {
				priorityIndex = i
				break
			}
		}
		logging.Debug().
			Int("position", position).
			Int("priorityIndex", priorityIndex).
			Int("oldCount", len(oldItems)).
			Int("newCount", len(splitItems)).
			Msg("updateItem: insert")
		for index, splitItem := range splitItems {
			oldItemIndex := index
			if index < priorityIndex && index >= len(oldItems)-1 {
				oldItemIndex = -1
			} else if index == priorityIndex {
				oldItemIndex = len(oldItems) - 1
			}
			if oldItemIndex >= 0 && oldItemIndex < len(oldItems) {
				c.moveRow(oldItems[oldItemIndex], splitItem, position)
			} else {
				c.insert(splitItem)
			}
		}

	default:
		// The old row at the touched position is moved, not deleted, when
		// it lies beyond the new fragment count.
		priorityIndex := -1
		for i, oi := range oldItems {
			if schedule.Equal(oi, item) {
				if i > len(splitItems)-1 {
					priorityIndex = i
				}
				break
			}
		}
		logging.Debug().
			Int("position", position).
			Int("priorityIndex", priorityIndex).
			Int("oldCount", len(oldItems)).
			Int("newCount", len(splitItems)).
			Msg("updateItem: remove")
		for index, oldItem := range oldItems {
			oldPos := c.indexOf(oldItem)
			if oldPos < 0 {
				continue
			}
			c.removeAt(oldPos)
			if index < priorityIndex && index >= len(splitItems)-1 {
				// the priority row will consume the remaining fragment;
				// this one simply disappears.
				c.listener.Removed(oldPos, 1)
				continue
			}
			splitItemIndex := index
			if index == priorityIndex {
				splitItemIndex = len(splitItems) - 1
			}
			if splitItemIndex < len(splitItems) {
				nextPos := c.insertPosition(splitItems[splitItemIndex])
				c.items = append(c.items, nil)
				copy(c.items[nextPos+1:], c.items[nextPos:])
				c.items[nextPos] = splitItems[splitItemIndex]
				if oldPos == nextPos {
					c.listener.Changed(position, true)
				} else {
					c.listener.Moved(oldPos, nextPos)
				}
			} else {
				c.listener.Removed(oldPos, 1)
			}
		}
	}
}

// moveRow replaces oldItem with newItem: the old row is removed, the new
// row inserted at its sorted position, and the change is reported as an
// in-place change when it lands at the same position, otherwise as a move.
// touchedPosition is the position the caller's edit addressed; in-place
// notifications carry it so the host updates the view under the pointer.
func (c *Collection) moveRow(oldItem, newItem schedule.Item, touchedPosition int) {
	oldPos := c.indexOf(oldItem)
	if oldPos < 0 {
		c.insert(newItem)
		return
	}
	c.removeAt(oldPos)
	nextPos := c.insertPosition(newItem)
	c.items = append(c.items, nil)
	copy(c.items[nextPos+1:], c.items[nextPos:])
	c.items[nextPos] = newItem
	if oldPos == nextPos {
		c.listener.Changed(touchedPosition, true)
	} else {
		c.listener.Moved(oldPos, nextPos)
	}
}

// DeleteItems removes every row sharing the logical identity of the row at
// position.
func (c *Collection) DeleteItems(position int) {
	item := c.Item(position)
	if item == nil {
		return
	}
	key := item.Key()
	if origin := item.Origin(); origin != nil {
		key = origin.Key()
	}
	positions := c.PositionsByKey(key)
	for i := len(positions) - 1; i >= 0; i-- {
		c.removeAt(positions[i])
		c.listener.Removed(positions[i], 1)
	}
	logging.Debug().Str("key", key).Int("rows", len(positions)).Msg("deleteItems")
}

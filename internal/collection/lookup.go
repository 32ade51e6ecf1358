package collection

import (
	"time"

	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/types"
)

// Lookup adapts a Collection to the layout engine's DateLookup interface.
// The layout layer only ever reads positions through it and never holds
// references into the backing store.
type Lookup struct {
	c *Collection
}

// NewLookup returns a read-only position lookup over c.
func NewLookup(c *Collection) *Lookup {
	return &Lookup{c: c}
}

func (l *Lookup) LookupStart(position int) (time.Time, bool) {
	item := l.c.Item(position)
	if item == nil {
		return time.Time{}, false
	}
	return item.Start(), true
}

func (l *Lookup) LookupEnd(position int) (time.Time, bool) {
	item := l.c.Item(position)
	if item == nil {
		return time.Time{}, false
	}
	return item.End(), true
}

func (l *Lookup) IsDateLabel(position int) bool {
	item := l.c.Item(position)
	return item != nil && item.IsDateLabel()
}

func (l *Lookup) IsCurrentTime(position int) bool {
	item := l.c.Item(position)
	return item != nil && item.IsCurrentTime()
}

func (l *Lookup) IsStartSplit(position int) bool {
	item := l.c.Item(position)
	return item != nil && schedule.IsStartSplit(item)
}

func (l *Lookup) IsEndSplit(position int) bool {
	item := l.c.Item(position)
	return item != nil && schedule.IsEndSplit(item)
}

func (l *Lookup) IsFillItem(position int) bool {
	item := l.c.Item(position)
	return item != nil && item.IsFillItem()
}

func (l *Lookup) LookupOverlap(position int) types.OverlapInfo {
	return l.c.OverlapInfoAt(position)
}

func (l *Lookup) Count() int {
	return l.c.Len()
}

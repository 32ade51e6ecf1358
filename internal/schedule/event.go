package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Event is an ordinary schedule item supplied by the host application.
// It is a value type; Update and WithOrigin return copies.
type Event struct {
	key    string
	title  string
	start  time.Time
	end    time.Time
	fill   bool
	origin Item
}

// NewEvent creates an event with a generated key.
func NewEvent(title string, start, end time.Time) Event {
	return Event{
		key:   uuid.New().String(),
		title: title,
		start: start,
		end:   end,
	}
}

// NewEventWithKey creates an event with an explicit key, for hosts that
// carry their own identity (e.g. an iCalendar UID).
func NewEventWithKey(key, title string, start, end time.Time) Event {
	return Event{
		key:   key,
		title: title,
		start: start,
		end:   end,
	}
}

// NewFillEvent creates a decorative, non-interactive fill item. Fill items
// claim the full column width and sort before same-day real items.
func NewFillEvent(title string, start, end time.Time) Event {
	ev := NewEvent(title, start, end)
	ev.fill = true
	return ev
}

// NewFillEventWithKey creates a fill item with an explicit key.
func NewFillEventWithKey(key, title string, start, end time.Time) Event {
	ev := NewEventWithKey(key, title, start, end)
	ev.fill = true
	return ev
}

// Title returns the display title of the event.
func (e Event) Title() string { return e.title }

func (e Event) Key() string { return e.key }

func (e Event) Start() time.Time { return e.start }

func (e Event) End() time.Time { return e.end }

func (e Event) Update(start, end time.Time) Item {
	updated := e
	updated.start = start
	updated.end = end
	return updated
}

func (e Event) Origin() Item { return e.origin }

func (e Event) WithOrigin(origin Item) Item {
	updated := e
	updated.origin = origin
	return updated
}

func (e Event) IsDateLabel() bool { return false }

func (e Event) IsCurrentTime() bool { return false }

func (e Event) IsFillItem() bool { return e.fill }

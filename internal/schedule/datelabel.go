package schedule

import (
	"time"

	"github.com/yourusername/calgrid/internal/timegrid"
)

// DateLabel is the schedule item representing one calendar day in the grid
// header. Its interval is degenerate: start == end == midnight of the day.
// Labels are created by day-range expansion and never mutated.
type DateLabel struct {
	day time.Time
}

// NewDateLabel returns the date label for the day containing date.
func NewDateLabel(date time.Time) DateLabel {
	return DateLabel{day: timegrid.Midnight(date)}
}

// FirstDayOfWeek returns the date label of the first day of the week
// containing date, where weekday is the configured week start.
func FirstDayOfWeek(date time.Time, weekday time.Weekday) DateLabel {
	diff := int(weekday) - int(date.Weekday())
	if diff > 0 {
		diff -= 7
	}
	return NewDateLabel(date.AddDate(0, 0, diff))
}

// AddDay returns the label days after this one (negative for before).
func (d DateLabel) AddDay(days int) DateLabel {
	return DateLabel{day: d.day.AddDate(0, 0, days)}
}

// NextDay returns the label for the following day.
func (d DateLabel) NextDay() DateLabel {
	return d.AddDay(1)
}

// PreviousDay returns the label for the preceding day.
func (d DateLabel) PreviousDay() DateLabel {
	return d.AddDay(-1)
}

// NextDays returns size labels following this one. When includeThis is true
// the sequence starts with this label instead of the next day.
func (d DateLabel) NextDays(size int, includeThis bool) []Item {
	initial := d
	if !includeThis {
		initial = d.NextDay()
	}
	list := make([]Item, size)
	for i := 0; i < size; i++ {
		list[i] = initial.AddDay(i)
	}
	return list
}

// NextDaysUntil returns the labels from this one up to endDate.
func (d DateLabel) NextDaysUntil(endDate time.Time, includeThis bool) []Item {
	size := timegrid.DateDiff(endDate, d.day)
	if size <= 0 {
		return nil
	}
	return d.NextDays(size, includeThis)
}

// PreviousDays returns size labels preceding this one, in ascending order.
func (d DateLabel) PreviousDays(size int, includeThis bool) []Item {
	initial := d
	if !includeThis {
		initial = d.PreviousDay()
	}
	list := make([]Item, size)
	for i := 0; i < size; i++ {
		list[i] = initial.AddDay(-size + 1 + i)
	}
	return list
}

// PreviousDaysUntil returns the labels from startDate up to this one.
func (d DateLabel) PreviousDaysUntil(startDate time.Time, includeThis bool) []Item {
	size := timegrid.DateDiff(d.day, startDate)
	if size <= 0 {
		return nil
	}
	return d.PreviousDays(size, includeThis)
}

// DateString returns the day-of-month as a display string.
func (d DateLabel) DateString() string {
	return d.day.Format("2")
}

// DayOfWeekString returns the abbreviated weekday name.
func (d DateLabel) DayOfWeekString() string {
	return d.day.Format("Mon")
}

func (d DateLabel) Key() string { return d.day.Format("2006-01-02") }

func (d DateLabel) Start() time.Time { return d.day }

func (d DateLabel) End() time.Time { return d.day }

// Update is not meaningful for date labels; the label is returned unchanged.
func (d DateLabel) Update(start, end time.Time) Item { return d }

func (d DateLabel) Origin() Item { return nil }

func (d DateLabel) WithOrigin(origin Item) Item { return d }

func (d DateLabel) IsDateLabel() bool { return true }

func (d DateLabel) IsCurrentTime() bool { return false }

func (d DateLabel) IsFillItem() bool { return false }

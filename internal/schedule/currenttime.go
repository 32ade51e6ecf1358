package schedule

import "time"

// CurrentTimeKey is the fixed key of the running current-time marker row.
const CurrentTimeKey = "currentTime"

// CurrentTime is the schedule item marking the present moment on the grid.
// Its interval is degenerate (start == end).
type CurrentTime struct {
	at time.Time
}

// Now returns a current-time marker at the present moment.
func Now() CurrentTime {
	return CurrentTime{at: time.Now()}
}

// CurrentTimeAt returns a marker at an explicit instant, for tests.
func CurrentTimeAt(at time.Time) CurrentTime {
	return CurrentTime{at: at}
}

func (c CurrentTime) Key() string { return CurrentTimeKey }

func (c CurrentTime) Start() time.Time { return c.at }

func (c CurrentTime) End() time.Time { return c.at }

func (c CurrentTime) Update(start, end time.Time) Item {
	return CurrentTime{at: start}
}

func (c CurrentTime) Origin() Item { return nil }

func (c CurrentTime) WithOrigin(origin Item) Item { return c }

func (c CurrentTime) IsDateLabel() bool { return false }

func (c CurrentTime) IsCurrentTime() bool { return true }

func (c CurrentTime) IsFillItem() bool { return false }

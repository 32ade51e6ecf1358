package timegrid

import (
	"time"
)

// MinutesPerDay is the number of snap minutes in one day column.
const MinutesPerDay = 24 * 60

// Midnight returns t with the time-of-day fields cleared.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateDiff returns the whole-day difference a - b, computed on
// midnight-cleared values so that times of day never influence the result.
func DateDiff(a, b time.Time) int {
	return int(Midnight(a).Sub(Midnight(b)).Hours() / 24)
}

// HourDiff returns the fractional hour difference a - b.
func HourDiff(a, b time.Time) float64 {
	return a.Sub(b).Hours()
}

// MinuteDiff returns the fractional minute difference a - b.
func MinuteDiff(a, b time.Time) float64 {
	return a.Sub(b).Minutes()
}

// HourOfDay returns the time of day of t as a fractional hour.
func HourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// SnapMinutes quantizes a minute offset to the nearest multiple of span,
// rounding half up. A span of zero or less leaves the value untouched.
func SnapMinutes(minutes, span int) int {
	if span <= 0 {
		return minutes
	}
	surplus := minutes % span
	if surplus < span/2 {
		return minutes - surplus
	}
	return minutes + span - surplus
}

// DateAt converts a pixel position to a calendar date.
//
// The day is found by whole-column division of the x offset relative to the
// anchor column. The x offset is shifted right by one pixel before dividing
// to absorb float rounding at column edges. The time of day is the y offset
// relative to the top of the time scale, quantized to minuteSpan.
//
// When allowOverflow is false, the minute offset is clamped into [0, 1440]
// so the result never leaves the anchor day's time scale.
func DateAt(x, y float64, anchorDate time.Time, anchorLeft, columnWidth float64, scaleTop, rowHeight float64, minuteSpan int, allowOverflow bool) time.Time {
	dateDiff := 0
	if columnWidth > 0 {
		dateDiff = int((x - anchorLeft + 1) / columnWidth)
	}
	day := Midnight(anchorDate).AddDate(0, 0, dateDiff)

	minutes := 0
	if rowHeight > 0 {
		minutes = SnapMinutes(int(((y-scaleTop)/rowHeight)*60), minuteSpan)
	}
	if !allowOverflow {
		if minutes < 0 {
			minutes = 0
		}
		if minutes > MinutesPerDay {
			minutes = MinutesPerDay
		}
	}
	return day.Add(time.Duration(minutes) * time.Minute)
}

// ColumnLeft returns the left edge of the day column holding date, relative
// to the anchor column.
func ColumnLeft(date, anchorDate time.Time, anchorLeft, columnWidth float64) float64 {
	return anchorLeft + columnWidth*float64(DateDiff(date, anchorDate))
}

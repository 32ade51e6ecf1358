package gesture

import (
	"math"
	"time"
)

// Drag scroll speed keeps accelerating until this long before being capped.
const dragScrollAccelerationLimit = 2000 * time.Millisecond

func accelerateInterpolation(t float64) float64 {
	return t * t * t * t * t
}

func capInterpolation(t float64) float64 {
	t -= 1
	return t*t*t*t*t + 1
}

// Tick performs one frame of edge auto-scroll while a drag holds the
// selected row against a viewport edge. Hosts call it from their frame loop
// during an active drag. Returns true when the layout scrolled, in which
// case the drag proposal is re-evaluated against the shifted grid.
func (c *Controller) Tick() bool {
	if !c.scrollIfNecessary() {
		return false
	}
	c.moveIfNecessary()
	return true
}

// scrollIfNecessary scrolls the layout when the dragged row is out of
// bounds. Follows the state of dx/dy rather than the raw pointer so the
// scroll only engages in the direction of the drag.
func (c *Controller) scrollIfNecessary() bool {
	switch c.state {
	case StateDrag, StateDragStart, StateDragEnd:
	default:
		c.dragScrollStart = time.Time{}
		return false
	}
	g, ok := c.layout.Row(c.selected)
	if !ok {
		return false
	}
	cfg := c.layout.Config()
	now := c.now()
	var sinceStart time.Duration
	if !c.dragScrollStart.IsZero() {
		sinceStart = now.Sub(c.dragScrollStart)
	}

	var scrollX, scrollY float64
	if c.state == StateDrag {
		// A column of slack on either side because dx snaps to whole
		// columns.
		offset := g.Rect.Width
		curX := c.selectedStartX + c.dx
		if c.dx <= 0 {
			if leftDiff := curX - offset; leftDiff < 0 {
				scrollX = leftDiff
			}
		}
		if c.dx >= 0 {
			if rightDiff := curX + g.Rect.Width - cfg.Width + offset; rightDiff > 0 {
				scrollX = rightDiff
			}
		}
	}

	touchY := c.initialTouchY + c.dy
	curY := c.selectedStartY + c.dy
	if c.dy < 0 {
		if topDiff := curY; topDiff < 0 && touchY < cfg.Height*EdgeScrollRatio {
			scrollY = topDiff
		}
	} else if c.dy > 0 {
		if bottomDiff := curY + g.Rect.Height - cfg.Height; bottomDiff > 0 && touchY > cfg.Height*(1-EdgeScrollRatio) {
			scrollY = bottomDiff
		}
	}

	if scrollX != 0 {
		scrollX = c.interpolateOutOfBoundsScroll(g.Rect.Width, scrollX, sinceStart)
	}
	if scrollY != 0 {
		scrollY = c.interpolateOutOfBoundsScroll(g.Rect.Height, scrollY, sinceStart)
	}
	if scrollX != 0 || scrollY != 0 {
		if c.dragScrollStart.IsZero() {
			c.dragScrollStart = now
		}
		if scrollX != 0 {
			c.layout.ScrollHorizontally(scrollX)
		}
		if scrollY != 0 {
			c.layout.ScrollVertically(scrollY)
		}
		return true
	}
	c.dragScrollStart = time.Time{}
	return false
}

// interpolateOutOfBoundsScroll eases the per-frame scroll amount: farther
// out of bounds scrolls faster, and speed keeps accelerating the longer the
// row is held at the edge. Never returns zero while out of bounds.
func (c *Controller) interpolateOutOfBoundsScroll(viewSize, outOfBounds float64, sinceStart time.Duration) float64 {
	absOutOfBounds := math.Abs(outOfBounds)
	direction := 1.0
	if outOfBounds < 0 {
		direction = -1.0
	}
	outOfBoundsRatio := math.Min(1, absOutOfBounds/viewSize)
	cappedScroll := direction * c.maxDragScroll * capInterpolation(outOfBoundsRatio)
	timeRatio := 1.0
	if sinceStart < dragScrollAccelerationLimit {
		timeRatio = float64(sinceStart) / float64(dragScrollAccelerationLimit)
	}
	value := math.Trunc(cappedScroll * accelerateInterpolation(timeRatio))
	if value == 0 {
		if outOfBounds > 0 {
			return 1
		}
		return -1
	}
	return value
}

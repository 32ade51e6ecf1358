package collection

import (
	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/timegrid"
	"github.com/yourusername/calgrid/internal/types"
)

// overlapCandidate reports whether the row at position participates in
// overlap computation: same-day ordinary schedule rows only.
func overlapCandidate(si schedule.Item) bool {
	return !si.IsDateLabel() && !si.IsCurrentTime() && !si.IsFillItem()
}

// OverlapPositions returns the positions of other rows whose intervals
// intersect the row at position on the same calendar day. Date labels, the
// current-time marker and fill items never participate.
func (c *Collection) OverlapPositions(position int) []int {
	item := c.Item(position)
	if item == nil || !overlapCandidate(item) {
		return nil
	}
	var out []int
	for i, si := range c.items {
		if i == position || !overlapCandidate(si) {
			continue
		}
		if !timegrid.SameDay(si.Start(), item.Start()) {
			continue
		}
		if schedule.Overlaps(item, si, false) {
			out = append(out, i)
		}
	}
	return out
}

// OverlapInfoAt computes the overlap information used to assign the row at
// position to a sub-column. Non-participating rows get a neutral result
// (no head, count 1).
func (c *Collection) OverlapInfoAt(position int) types.OverlapInfo {
	item := c.Item(position)
	if item == nil || !overlapCandidate(item) {
		return types.OverlapInfo{MaxDuplicationCount: 1}
	}

	overlapping := c.OverlapPositions(position)
	var before []int
	for _, p := range overlapping {
		if p < position {
			before = append(before, p)
		}
	}

	group := c.overlapGroup(position)
	var head *int
	if len(before) > 0 && len(group) > 0 && group[0] != position {
		h := group[0]
		head = &h
	}

	return types.OverlapInfo{
		BeforePositions:     before,
		HeadPosition:        head,
		MaxDuplicationCount: c.maxConcurrent(group),
	}
}

// overlapGroup returns the positions of the transitive overlap cluster
// containing position, ascending. Two rows are in the same cluster when a
// chain of pairwise overlaps on the same day connects them.
func (c *Collection) overlapGroup(position int) []int {
	item := c.Item(position)
	if item == nil {
		return nil
	}
	day := item.Start()

	// same-day candidates in order
	var candidates []int
	for i, si := range c.items {
		if overlapCandidate(si) && timegrid.SameDay(si.Start(), day) {
			candidates = append(candidates, i)
		}
	}

	member := map[int]bool{position: true}
	for changed := true; changed; {
		changed = false
		for _, p := range candidates {
			if member[p] {
				continue
			}
			for q := range member {
				if schedule.Overlaps(c.items[p], c.items[q], false) {
					member[p] = true
					changed = true
					break
				}
			}
		}
	}

	var group []int
	for _, p := range candidates {
		if member[p] {
			group = append(group, p)
		}
	}
	return group
}

// maxConcurrent returns the maximum number of group rows covering a common
// instant, via a boundary sweep. Degenerate intervals count at their start.
func (c *Collection) maxConcurrent(group []int) int {
	maxCount := 1
	for _, p := range group {
		at := c.items[p].Start()
		count := 0
		for _, q := range group {
			s, e := c.items[q].Start(), c.items[q].End()
			if (s.Equal(at) || s.Before(at)) && (e.After(at) || s.Equal(e) && s.Equal(at)) {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
		}
	}
	return maxCount
}

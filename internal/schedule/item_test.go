package schedule

import (
	"math/rand"
	"testing"
	"time"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

// === Split Tests ===

func TestSplitAtMidnightSingleDay(t *testing.T) {
	ev := NewEvent("standup", at(2026, time.March, 2, 9, 0), at(2026, time.March, 2, 9, 30))
	parts := SplitAtMidnight(ev)

	if len(parts) != 1 {
		t.Fatalf("len(parts) = %d, want 1", len(parts))
	}
	if !Equal(parts[0], ev) {
		t.Errorf("parts[0] = %v, want the original item", parts[0])
	}
	if parts[0].Origin() != nil {
		t.Error("single-day item should have nil origin")
	}
}

func TestSplitAtMidnightThreeDays(t *testing.T) {
	start := at(2026, time.March, 2, 22, 0)
	end := at(2026, time.March, 4, 2, 0)
	ev := NewEvent("conference", start, end)
	parts := SplitAtMidnight(ev)

	if len(parts) != 3 {
		t.Fatalf("len(parts) = %d, want 3", len(parts))
	}

	wantIntervals := []struct {
		start, end time.Time
	}{
		{start, at(2026, time.March, 3, 0, 0)},
		{at(2026, time.March, 3, 0, 0), at(2026, time.March, 4, 0, 0)},
		{at(2026, time.March, 4, 0, 0), end},
	}
	for i, w := range wantIntervals {
		if !parts[i].Start().Equal(w.start) || !parts[i].End().Equal(w.end) {
			t.Errorf("parts[%d] = [%v, %v], want [%v, %v]",
				i, parts[i].Start(), parts[i].End(), w.start, w.end)
		}
		if parts[i].Key() != ev.Key() {
			t.Errorf("parts[%d].Key() = %q, want %q", i, parts[i].Key(), ev.Key())
		}
		origin := parts[i].Origin()
		if origin == nil {
			t.Fatalf("parts[%d] has nil origin", i)
		}
		if !origin.Start().Equal(start) || !origin.End().Equal(end) {
			t.Errorf("parts[%d] origin = [%v, %v], want [%v, %v]",
				i, origin.Start(), origin.End(), start, end)
		}
	}

	wantFlags := []struct {
		startSplit, endSplit bool
	}{
		{false, true},
		{true, true},
		{true, false},
	}
	for i, w := range wantFlags {
		if got := IsStartSplit(parts[i]); got != w.startSplit {
			t.Errorf("IsStartSplit(parts[%d]) = %v, want %v", i, got, w.startSplit)
		}
		if got := IsEndSplit(parts[i]); got != w.endSplit {
			t.Errorf("IsEndSplit(parts[%d]) = %v, want %v", i, got, w.endSplit)
		}
	}
}

func TestSplitBoundariesLandOnMidnight(t *testing.T) {
	ev := NewEvent("trip", at(2026, time.March, 2, 13, 45), at(2026, time.March, 7, 11, 15))
	parts := SplitAtMidnight(ev)

	if len(parts) != 6 {
		t.Fatalf("len(parts) = %d, want 6", len(parts))
	}
	for i := 0; i < len(parts)-1; i++ {
		if !parts[i].End().Equal(parts[i+1].Start()) {
			t.Errorf("gap between parts[%d] and parts[%d]", i, i+1)
		}
		e := parts[i].End()
		if e.Hour() != 0 || e.Minute() != 0 {
			t.Errorf("parts[%d].End() = %v, want a midnight boundary", i, e)
		}
	}
}

// === ReflectUpdateToOrigin Tests ===

func TestReflectUpdateNoOrigin(t *testing.T) {
	ev := NewEvent("solo", at(2026, time.March, 2, 9, 0), at(2026, time.March, 2, 10, 0))
	got := ReflectUpdateToOrigin(ev, at(2026, time.March, 2, 11, 0), at(2026, time.March, 2, 12, 0))

	if !got.Start().Equal(at(2026, time.March, 2, 11, 0)) || !got.End().Equal(at(2026, time.March, 2, 12, 0)) {
		t.Errorf("got [%v, %v], want the proposed interval", got.Start(), got.End())
	}
}

func splitFixture(t *testing.T) []Item {
	t.Helper()
	ev := NewEvent("span", at(2026, time.March, 2, 22, 0), at(2026, time.March, 4, 2, 0))
	parts := SplitAtMidnight(ev)
	if len(parts) != 3 {
		t.Fatalf("fixture split = %d parts, want 3", len(parts))
	}
	return parts
}

func TestReflectUpdateResizeRealEdge(t *testing.T) {
	parts := splitFixture(t)

	// The last fragment's end is the item's true end; resizing it moves the
	// origin's end.
	last := parts[2]
	newEnd := at(2026, time.March, 4, 4, 30)
	got := ReflectUpdateToOrigin(last, last.Start(), newEnd)

	if !got.Start().Equal(at(2026, time.March, 2, 22, 0)) {
		t.Errorf("origin start moved to %v, want unchanged", got.Start())
	}
	if !got.End().Equal(newEnd) {
		t.Errorf("origin end = %v, want %v", got.End(), newEnd)
	}
}

func TestReflectUpdateResizeSplitEdgeIsNoop(t *testing.T) {
	parts := splitFixture(t)

	// The first fragment's end is a midnight artifact; resizing it returns
	// the origin untouched.
	first := parts[0]
	got := ReflectUpdateToOrigin(first, first.Start(), at(2026, time.March, 2, 23, 0))

	if !got.Start().Equal(at(2026, time.March, 2, 22, 0)) || !got.End().Equal(at(2026, time.March, 4, 2, 0)) {
		t.Errorf("got [%v, %v], want the untouched origin", got.Start(), got.End())
	}
}

func TestReflectUpdateMoveFromFirstFragment(t *testing.T) {
	parts := splitFixture(t)

	// Moving the first fragment 30 minutes later shifts the origin by the
	// start edge's delta.
	first := parts[0]
	got := ReflectUpdateToOrigin(first,
		first.Start().Add(30*time.Minute), first.End().Add(30*time.Minute))

	if !got.Start().Equal(at(2026, time.March, 2, 22, 30)) {
		t.Errorf("origin start = %v, want 22:30", got.Start())
	}
	if !got.End().Equal(at(2026, time.March, 4, 2, 30)) {
		t.Errorf("origin end = %v, want Mar 4 02:30", got.End())
	}
}

func TestReflectUpdateMoveFromMiddleFragmentUsesEndEdge(t *testing.T) {
	parts := splitFixture(t)

	// The middle fragment's start is split, so the end edge carries the
	// user's delta.
	mid := parts[1]
	got := ReflectUpdateToOrigin(mid,
		mid.Start().Add(-2*time.Hour), mid.End().Add(-1*time.Hour))

	if !got.Start().Equal(at(2026, time.March, 2, 21, 0)) {
		t.Errorf("origin start = %v, want 21:00", got.Start())
	}
	if !got.End().Equal(at(2026, time.March, 4, 1, 0)) {
		t.Errorf("origin end = %v, want Mar 4 01:00", got.End())
	}
}

// === Overlap Tests ===

func TestOverlaps(t *testing.T) {
	mk := func(sh, sm, eh, em int) Item {
		return NewEvent("x", at(2026, time.March, 2, sh, sm), at(2026, time.March, 2, eh, em))
	}

	tests := []struct {
		name            string
		a, b            Item
		ignoreInclusion bool
		expected        bool
	}{
		{"disjoint", mk(9, 0, 10, 0), mk(11, 0, 12, 0), false, false},
		{"abutting", mk(9, 0, 10, 0), mk(10, 0, 11, 0), false, false},
		{"partial", mk(9, 0, 11, 0), mk(10, 0, 12, 0), false, true},
		{"partial reversed", mk(10, 0, 12, 0), mk(9, 0, 11, 0), false, true},
		{"shared start", mk(9, 0, 10, 0), mk(9, 0, 12, 0), false, true},
		{"shared start degenerate", mk(9, 0, 9, 0), mk(9, 0, 12, 0), false, true},
		{"shared end", mk(9, 0, 12, 0), mk(10, 0, 12, 0), false, true},
		{"shared end degenerate", mk(12, 0, 12, 0), mk(10, 0, 12, 0), false, false},
		{"inclusion", mk(9, 0, 14, 0), mk(10, 0, 12, 0), false, true},
		{"inclusion reversed", mk(10, 0, 12, 0), mk(9, 0, 14, 0), false, true},
		{"inclusion ignored", mk(9, 0, 14, 0), mk(10, 0, 12, 0), true, false},
		{"partial with inclusion ignored", mk(9, 0, 11, 0), mk(10, 0, 12, 0), true, true},
	}

	for _, tt := range tests {
		if got := Overlaps(tt.a, tt.b, tt.ignoreInclusion); got != tt.expected {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := at(2026, time.March, 2, 0, 0)
	for i := 0; i < 200; i++ {
		a := NewEvent("a",
			base.Add(time.Duration(rng.Intn(1200))*time.Minute),
			base.Add(time.Duration(1200+rng.Intn(240))*time.Minute))
		b := NewEvent("b",
			base.Add(time.Duration(rng.Intn(1200))*time.Minute),
			base.Add(time.Duration(1200+rng.Intn(240))*time.Minute))
		if Overlaps(a, b, false) != Overlaps(b, a, false) {
			t.Fatalf("Overlaps not symmetric for [%v,%v] vs [%v,%v]",
				a.Start(), a.End(), b.Start(), b.End())
		}
	}
}

// === Ordering Tests ===

func TestCompareFillTieBreak(t *testing.T) {
	fill := NewFillEvent("", at(2026, time.March, 2, 12, 0), at(2026, time.March, 2, 13, 0))
	ev := NewEvent("early", at(2026, time.March, 2, 9, 0), at(2026, time.March, 2, 10, 0))

	if got := Compare(fill, ev); got != -1 {
		t.Errorf("Compare(fill, event) = %d, want -1", got)
	}
	if got := Compare(ev, fill); got != 1 {
		t.Errorf("Compare(event, fill) = %d, want 1", got)
	}

	// Different days fall back to time ordering.
	nextDay := NewEvent("next", at(2026, time.March, 3, 9, 0), at(2026, time.March, 3, 10, 0))
	if got := Compare(fill, nextDay); got != -1 {
		t.Errorf("Compare(fill, next-day event) = %d, want -1", got)
	}
}

func TestCompareLabelsByTime(t *testing.T) {
	label := NewDateLabel(at(2026, time.March, 2, 0, 0))
	fill := NewFillEvent("", at(2026, time.March, 2, 12, 0), at(2026, time.March, 2, 13, 0))

	// The fill tie-break never applies against labels.
	if got := Compare(label, fill); got != -1 {
		t.Errorf("Compare(label, fill) = %d, want -1", got)
	}
}

func TestCompareAntisymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	base := at(2026, time.March, 2, 0, 0)
	items := make([]Item, 0, 50)
	for i := 0; i < 50; i++ {
		s := base.Add(time.Duration(rng.Intn(7*24*60)) * time.Minute)
		e := s.Add(time.Duration(rng.Intn(300)) * time.Minute)
		switch i % 5 {
		case 0:
			items = append(items, NewDateLabel(s))
		case 1:
			items = append(items, NewFillEvent("", s, e))
		default:
			items = append(items, NewEvent("ev", s, e))
		}
	}

	for i := range items {
		for j := range items {
			if Compare(items[i], items[j]) != -Compare(items[j], items[i]) {
				t.Fatalf("Compare not antisymmetric at %d,%d", i, j)
			}
		}
	}
}

func TestSortIsStableAndOrdered(t *testing.T) {
	a := NewEvent("a", at(2026, time.March, 3, 9, 0), at(2026, time.March, 3, 10, 0))
	b := NewEvent("b", at(2026, time.March, 2, 9, 0), at(2026, time.March, 2, 10, 0))
	c := NewEvent("c", at(2026, time.March, 2, 9, 0), at(2026, time.March, 2, 10, 0))

	sorted := Sort([]Item{a, b, c})
	if sorted[0].Key() != b.Key() || sorted[1].Key() != c.Key() || sorted[2].Key() != a.Key() {
		t.Errorf("Sort order = [%s %s %s], want [b c a]",
			sorted[0].Key(), sorted[1].Key(), sorted[2].Key())
	}
	for i := 0; i < len(sorted)-1; i++ {
		if Compare(sorted[i], sorted[i+1]) > 0 {
			t.Errorf("Sort: items %d and %d out of order", i, i+1)
		}
	}
}

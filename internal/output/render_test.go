package output

import (
	"strings"
	"testing"
	"time"

	"github.com/yourusername/calgrid/internal/collection"
	"github.com/yourusername/calgrid/internal/layout"
	"github.com/yourusername/calgrid/internal/schedule"
	"github.com/yourusername/calgrid/internal/types"
)

func renderFixture() (*collection.Collection, *layout.Layout) {
	cfg := types.GridConfig{
		DaysCount:         7,
		RowHeight:         48,
		DateLabelHeight:   32,
		TimeScaleWidth:    48,
		CurrentTimeHeight: 2,
		ItemRightPadding:  8,
		SubColumnMargin:   2,
		MinuteSpan:        15,
		Width:             958,
		Height:            640,
	}
	coll := collection.New(nil)
	coll.AddItems(schedule.NewEventWithKey("ev", "standup",
		time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local),
		time.Date(2026, time.March, 2, 10, 0, 0, 0, time.Local)))
	coll.AddFollowingDateLabels(13)
	lay := layout.New(cfg, collection.NewLookup(coll), nil)
	lay.LayoutAll()
	return coll, lay
}

func TestRenderGridDrawsChromeAndItems(t *testing.T) {
	coll, lay := renderFixture()
	opts := RenderOptions{UseUnicode: false, MaxWidth: 96, MaxHeight: 65}

	out := RenderGrid(lay, coll, opts)

	lines := strings.Split(out, "\n")
	if len(lines) != 64 {
		t.Fatalf("rendered %d lines, want 64", len(lines))
	}
	for i, line := range lines {
		if len([]rune(line)) != 96 {
			t.Fatalf("line %d is %d runes wide, want 96", i, len([]rune(line)))
		}
	}

	if !strings.Contains(out, " 9:00") {
		t.Errorf("output missing hour gutter label 9:00")
	}
	if !strings.Contains(out, "standup") {
		t.Errorf("output missing event title")
	}
	if !strings.Contains(out, "Mon") {
		t.Errorf("output missing day-of-week header")
	}
}

func TestRenderGridMarksSelection(t *testing.T) {
	coll, lay := renderFixture()
	lay.SetSelected(1)
	opts := RenderOptions{UseUnicode: false, MaxWidth: 96, MaxHeight: 65}

	out := RenderGrid(lay, coll, opts)
	if !strings.Contains(out, "*standup") {
		t.Errorf("output missing selection marker on title")
	}
}

func TestItemKind(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	tests := []struct {
		name string
		item schedule.Item
		want string
	}{
		{"event", schedule.NewEvent("a", start, end), "event"},
		{"fill", schedule.NewFillEvent("off", start, end), "fill"},
		{"label", schedule.NewDateLabel(start), "label"},
	}
	for _, tt := range tests {
		if got := itemKind(tt.item); got != tt.want {
			t.Errorf("itemKind(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatItemTime(t *testing.T) {
	start := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.Local)
	ev := schedule.NewEvent("a", start, start.Add(time.Hour))
	if got := formatItemTime(ev.Start(), ev); got != "2026-03-02 09:30" {
		t.Errorf("event time = %q", got)
	}
	label := schedule.NewDateLabel(start)
	if got := formatItemTime(label.Start(), label); got != "2026-03-02" {
		t.Errorf("label time = %q", got)
	}
}

func TestItemTitle(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	if got := itemTitle(schedule.NewEvent("meet", start, start.Add(time.Hour))); got != "meet" {
		t.Errorf("event title = %q", got)
	}
	if got := itemTitle(schedule.NewDateLabel(start)); got != "2" {
		t.Errorf("label title = %q", got)
	}
}

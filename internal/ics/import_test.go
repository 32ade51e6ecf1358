package ics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const samplePayload = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
UID:meeting-1
SUMMARY:Weekly sync
DTSTART:20260302T090000Z
DTEND:20260302T100000Z
END:VEVENT
BEGIN:VEVENT
UID:holiday-1
SUMMARY:Public holiday
DTSTART;VALUE=DATE:20260304
DTEND;VALUE=DATE:20260305
END:VEVENT
BEGIN:VEVENT
UID:open-ended
SUMMARY:Quick call
DTSTART:20260302T140000Z
END:VEVENT
BEGIN:VEVENT
SUMMARY:No identity
DTSTART:20260302T150000Z
DTEND:20260302T160000Z
END:VEVENT
END:VCALENDAR
`

func TestParse(t *testing.T) {
	items, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// The UID-less event is skipped, not fatal.
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	meeting := items[0]
	if meeting.Key() != "meeting-1" {
		t.Errorf("key = %q, want the UID", meeting.Key())
	}
	wantStart := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	if !meeting.Start().Equal(wantStart) {
		t.Errorf("start = %v, want %v", meeting.Start(), wantStart)
	}
	if meeting.IsFillItem() {
		t.Error("timed event imported as fill item")
	}

	holiday := items[1]
	if !holiday.IsFillItem() {
		t.Error("all-day event should import as a fill item")
	}
	if holiday.Key() != "holiday-1" {
		t.Errorf("holiday key = %q", holiday.Key())
	}

	// Missing DTEND defaults to one hour.
	call := items[2]
	if got := call.End().Sub(call.Start()); got != time.Hour {
		t.Errorf("defaulted duration = %v, want 1h", got)
	}
}

func TestParseEmptyBody(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse([]byte("not an ics file")); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestParseInvertedInterval(t *testing.T) {
	payload := strings.ReplaceAll(samplePayload,
		"DTEND:20260302T100000Z", "DTEND:20260302T080000Z")
	items, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// The inverted event is dropped; the rest survive.
	for _, item := range items {
		if item.Key() == "meeting-1" {
			t.Error("event with DTEND before DTSTART not skipped")
		}
	}
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	if err := os.WriteFile(path, []byte(samplePayload), 0644); err != nil {
		t.Fatal(err)
	}

	items, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("len(items) = %d, want 3", len(items))
	}

	if _, err := ImportFile(filepath.Join(t.TempDir(), "missing.ics")); err == nil {
		t.Error("expected error for missing file")
	}
}

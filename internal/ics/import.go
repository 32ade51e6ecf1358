// Package ics imports schedule items from iCalendar files.
package ics

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/yourusername/calgrid/internal/logging"
	"github.com/yourusername/calgrid/internal/schedule"
)

// ImportFile reads an .ics file and converts its VEVENTs to schedule items.
// Recurrence rules are not expanded; only the base occurrence is imported.
func ImportFile(path string) ([]schedule.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse converts an ICS payload to schedule items. Events that cannot be
// parsed are skipped, not fatal.
func Parse(body []byte) ([]schedule.Item, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	items := make([]schedule.Item, 0)
	for _, ve := range cal.Events() {
		item, perr := parseVEvent(ve)
		if perr != nil {
			// Log and skip this event, but keep parsing others.
			logging.Warn().Err(perr).Msg("skipping unparsable vevent")
			continue
		}
		items = append(items, item)
	}
	logging.Info().Int("count", len(items)).Msg("ics import completed")
	return items, nil
}

func parseVEvent(ve *ical.VEvent) (schedule.Item, error) {
	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return nil, errors.New("missing UID")
	}
	uid := uidProp.Value

	var title string
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		title = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, err
	}
	end, endErr := ve.GetEndAt()
	if endErr != nil || end.IsZero() {
		// Missing DTEND defaults to a one hour event.
		end = start.Add(time.Hour)
	}
	if end.Before(start) {
		return nil, errors.New("DTEND before DTSTART")
	}

	if isAllDay(ve) {
		return schedule.NewFillEventWithKey(uid, title, start, end), nil
	}
	return schedule.NewEventWithKey(uid, title, start, end), nil
}

// isAllDay reports whether DTSTART carries VALUE=DATE or a date-only value.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

package config

import (
	"fmt"
	"time"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	keys := make(map[string]bool)
	for i, item := range c.Items {
		if err := validateItem(&item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if item.Key != "" {
			if keys[item.Key] {
				return fmt.Errorf("duplicate item key: %s", item.Key)
			}
			keys[item.Key] = true
		}
	}

	return nil
}

func validateSettings(s *Settings) error {
	if s.DaysCount < 1 {
		return fmt.Errorf("daysCount must be at least 1, got %d", s.DaysCount)
	}
	if s.RowHeight <= 0 {
		return fmt.Errorf("rowHeight must be positive, got %v", s.RowHeight)
	}
	if s.TimeScaleWidth < 0 {
		return fmt.Errorf("timeScaleWidth must not be negative, got %v", s.TimeScaleWidth)
	}
	if s.MinuteSpan < 1 || s.MinuteSpan > 60 {
		return fmt.Errorf("minuteSpan must be between 1 and 60, got %d", s.MinuteSpan)
	}
	if 60%s.MinuteSpan != 0 {
		return fmt.Errorf("minuteSpan must divide 60 evenly, got %d", s.MinuteSpan)
	}
	if s.Width <= s.TimeScaleWidth {
		return fmt.Errorf("width %v must exceed timeScaleWidth %v", s.Width, s.TimeScaleWidth)
	}
	if s.Height <= s.DateLabelHeight {
		return fmt.Errorf("height %v must exceed dateLabelHeight %v", s.Height, s.DateLabelHeight)
	}
	return nil
}

func validateItem(item *ItemConfig) error {
	if item.Title == "" && !item.Fill {
		return fmt.Errorf("missing title")
	}
	start, err := time.Parse(time.RFC3339, item.Start)
	if err != nil {
		return fmt.Errorf("invalid start %q: %w", item.Start, err)
	}
	end, err := time.Parse(time.RFC3339, item.End)
	if err != nil {
		return fmt.Errorf("invalid end %q: %w", item.End, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end %q before start %q", item.End, item.Start)
	}
	return nil
}

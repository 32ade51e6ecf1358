package config

// Config is the root configuration structure
type Config struct {
	Settings Settings     `yaml:"settings" json:"settings"`
	Items    []ItemConfig `yaml:"items,omitempty" json:"items,omitempty"`
}

// Settings contains the grid dimensions and editing behavior
type Settings struct {
	DaysCount         int     `yaml:"daysCount" json:"daysCount"`                 // Visible day columns
	RowHeight         float64 `yaml:"rowHeight" json:"rowHeight"`                 // Pixels per hour
	DateLabelHeight   float64 `yaml:"dateLabelHeight" json:"dateLabelHeight"`     // Header label band height
	TimeScaleWidth    float64 `yaml:"timeScaleWidth" json:"timeScaleWidth"`       // Hour gutter width
	CurrentTimeHeight float64 `yaml:"currentTimeHeight" json:"currentTimeHeight"` // Now-indicator height
	ItemRightPadding  float64 `yaml:"itemRightPadding" json:"itemRightPadding"`   // Gap at each column's right edge
	SubColumnMargin   float64 `yaml:"subColumnMargin" json:"subColumnMargin"`     // Gap between overlap sub-columns
	MinuteSpan        int     `yaml:"minuteSpan" json:"minuteSpan"`               // Edit snapping granularity
	Width             float64 `yaml:"width" json:"width"`                         // Viewport width
	Height            float64 `yaml:"height" json:"height"`                      // Viewport height
}

// ItemConfig seeds a schedule item from configuration. Times are RFC3339.
type ItemConfig struct {
	Key   string `yaml:"key,omitempty" json:"key,omitempty"`
	Title string `yaml:"title" json:"title"`
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
	Fill  bool   `yaml:"fill,omitempty" json:"fill,omitempty"`
}

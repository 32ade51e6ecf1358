package types

import "time"

// RowGeometry is the computed, immutable placement of one visible row. The
// layout engine produces these; a platform adapter copies the fields onto
// its native layout object.
type RowGeometry struct {
	Position int
	Kind     RowKind
	Rect     Rect

	Start time.Time
	End   time.Time

	IsStartSplit bool
	IsEndSplit   bool
	IsFillItem   bool
	Selected     bool

	SubColumnPosition int
	SubColumnCount    int
}

package collection

// Listener receives fine-grained change notifications from a Collection.
// Positions are row indices valid at the moment of the call.
type Listener interface {
	// Inserted reports count new rows starting at position.
	Inserted(position, count int)

	// Removed reports count rows removed starting at position.
	Removed(position, count int)

	// Moved reports a row relocated from one position to another.
	Moved(from, to int)

	// Changed reports a row whose value changed without moving. When
	// inPlace is true the host should update the row's view in place
	// instead of tearing it down, so an interactive drag keeps its
	// selection.
	Changed(position int, inPlace bool)
}

type nopListener struct{}

func (nopListener) Inserted(int, int)  {}
func (nopListener) Removed(int, int)   {}
func (nopListener) Moved(int, int)     {}
func (nopListener) Changed(int, bool)  {}

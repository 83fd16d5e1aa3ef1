// Package journal keeps an ordered record of observed registry updates.
package journal

import "github.com/facet-ui/facet/notify"

// Journal holds an ordered sequence of updates. Implementations must be safe
// for concurrent use.
type Journal interface {
	// ID returns the unique journal identifier.
	ID() string
	// Record appends an update to the journal.
	Record(u notify.Update)
	// Updates returns a defensive copy of the recorded updates.
	Updates() []notify.Update
	// Tail returns a defensive copy of the most recent n updates.
	Tail(n int) []notify.Update
	// Len returns the number of recorded updates.
	Len() int
	// Clear resets the journal.
	Clear()
}

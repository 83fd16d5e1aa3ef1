package registry

// DefaultPriority is assigned to entries added without an explicit priority.
const DefaultPriority = 50

// Entry is one keyed value in a store's ordered view. Lower priorities sort
// first; entries with equal priority keep insertion order.
type Entry struct {
	Key      string
	Value    any
	Priority int
}

// record is the stored form of an entry. seq is the insertion counter used
// to break priority ties; a forced replacement keeps the original seq so
// replacing a value does not reshuffle the view.
type record struct {
	value    any
	priority int
	seq      uint64
}

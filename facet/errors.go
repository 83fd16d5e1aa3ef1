package facet

import "errors"

// ErrUnknownSurface is returned by New when the configured render surface
// names neither stack nor grid.
var ErrUnknownSurface = errors.New("unknown render surface")

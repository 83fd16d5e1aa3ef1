package render

import "time"

// ChildResult is the outcome of rendering one child in a pass.
type ChildResult struct {
	Key     string
	Output  string
	Err     error
	Elapsed time.Duration
}

// Frame is the outcome of one render pass: the assembled output of every
// child that rendered successfully, plus per-child results for the whole
// pass including failures.
type Frame struct {
	Output   string
	Children []ChildResult
	Rendered int
	Failed   int
	Elapsed  time.Duration
}

// Clean reports whether every child in the pass rendered successfully.
func (f Frame) Clean() bool {
	return f.Failed == 0
}

// FailedKeys returns the keys of children that failed during this pass, in
// view order.
func (f Frame) FailedKeys() []string {
	if f.Failed == 0 {
		return nil
	}
	keys := make([]string, 0, f.Failed)
	for _, child := range f.Children {
		if child.Err != nil {
			keys = append(keys, child.Key)
		}
	}
	return keys
}

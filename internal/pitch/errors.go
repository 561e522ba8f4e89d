package pitch

import "errors"

// ErrNoPath is returned by Analyzer.ComputePath when no candidates have
// been generated yet (zero steps, or zero candidates per step).
var ErrNoPath = errors.New("pitch: no path to compute: no candidates generated yet")

package simulator

import "errors"

// ErrSimulatedFetch marks a failed simulated fetch. It never reaches callers
// of the Fetch* methods; they degrade to a fallback value instead.
var ErrSimulatedFetch = errors.New("simulated fetch failed")

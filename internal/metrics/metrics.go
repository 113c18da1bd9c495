// Package metrics provides simulator instrumentation and snapshot rollups.
package metrics

import "github.com/AngelCh415/adpulse/internal/models"

// Recorder captures simulator events.
type Recorder interface {
	ObserveTick(snap models.Snapshot)
	SetObservers(n int)
	IncObserverPanic()
	IncFetch(op, status string) // status: "success" or "fallback"
}

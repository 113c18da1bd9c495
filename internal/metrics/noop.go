package metrics

import "github.com/AngelCh415/adpulse/internal/models"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) ObserveTick(models.Snapshot) {}

func (n *NoopRecorder) SetObservers(int) {}

func (n *NoopRecorder) IncObserverPanic() {}

func (n *NoopRecorder) IncFetch(string, string) {}

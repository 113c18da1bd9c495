package simulator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/adpulse/internal/metrics"
	"github.com/AngelCh415/adpulse/internal/models"
)

// constRand returns the same value for every draw; 0.5 yields zero deltas.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
	BlockUntilContext(ctx context.Context, n int) error
}

type countingRecorder struct {
	metrics.NoopRecorder
	panics    atomic.Int64
	fallbacks atomic.Int64
	successes atomic.Int64
}

func (c *countingRecorder) IncObserverPanic() { c.panics.Add(1) }

func (c *countingRecorder) IncFetch(_, status string) {
	if status == "fallback" {
		c.fallbacks.Add(1)
		return
	}
	c.successes.Add(1)
}

var testEpoch = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestSim(t *testing.T, opts ...Option) (*Simulator, fakeClock) {
	t.Helper()
	fc := clockwork.NewFakeClockAt(testEpoch)
	rnd, err := NewRandom(7)
	require.NoError(t, err)
	base := []Option{WithClock(fc), WithRandom(rnd)}
	return New(append(base, opts...)...), fc
}

func recv(t *testing.T, ch <-chan models.Snapshot) models.Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot delivery")
		return models.Snapshot{}
	}
}

func requireNoDelivery(t *testing.T, ch <-chan models.Snapshot) {
	t.Helper()
	select {
	case s := <-ch:
		t.Fatalf("unexpected delivery with timestamp %d", s.CampaignMetrics.Timestamp)
	case <-time.After(50 * time.Millisecond):
	}
}

const (
	testWait = 2 * time.Second
	testPoll = 10 * time.Millisecond
)

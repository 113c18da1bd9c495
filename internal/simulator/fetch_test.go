package simulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/adpulse/internal/models"
)

type failingFetcher struct{}

func (failingFetcher) PlatformData(context.Context, []string) ([]models.CampaignRecord, error) {
	return nil, errors.New("upstream unavailable")
}

func (failingFetcher) Metrics(context.Context) (models.CampaignMetrics, error) {
	return models.CampaignMetrics{}, errors.New("upstream unavailable")
}

func TestFetchSimulatedPlatformData(t *testing.T) {
	sim, fc := newTestSim(t)
	before := sim.GetCurrentSnapshot()

	done := make(chan []models.CampaignRecord, 1)
	go func() {
		done <- sim.FetchSimulatedPlatformData(context.Background(), []string{"X", "Y"})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), testWait)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	fc.Advance(DefaultPlatformLatency - time.Millisecond)
	select {
	case <-done:
		t.Fatal("fetch returned before its simulated latency")
	case <-time.After(50 * time.Millisecond):
	}
	fc.Advance(time.Millisecond)

	var recs []models.CampaignRecord
	select {
	case recs = <-done:
	case <-time.After(testWait):
		t.Fatal("timed out waiting for fetch")
	}

	require.Len(t, recs, 2)
	for i, platform := range []string{"X", "Y"} {
		r := recs[i]
		require.Equal(t, platform, r.Platform)
		require.Equal(t, platform+" Campaign", r.Name)
		require.Contains(t, []models.CampaignStatus{models.StatusActive, models.StatusPaused}, r.Status)
		require.GreaterOrEqual(t, r.CTR, 2.0)
		require.Less(t, r.CTR, 5.0)
		require.GreaterOrEqual(t, r.CPC, 0.5)
		require.Less(t, r.Spend, 20000.0)
	}
	require.Equal(t, before, sim.GetCurrentSnapshot(), "fetch must not touch the shared snapshot")
}

func TestFetchPlatformStatus(t *testing.T) {
	active := New(WithRandom(constRand(0.5)), WithLatencies(0, 0))
	recs := active.FetchSimulatedPlatformData(context.Background(), []string{"TikTok"})
	require.Len(t, recs, 1)
	require.Equal(t, models.StatusActive, recs[0].Status)

	paused := New(WithRandom(constRand(0.9)), WithLatencies(0, 0))
	recs = paused.FetchSimulatedPlatformData(context.Background(), []string{"TikTok"})
	require.Len(t, recs, 1)
	require.Equal(t, models.StatusPaused, recs[0].Status)
}

func TestFetchSimulatedMetrics(t *testing.T) {
	rec := &countingRecorder{}
	sim := New(WithRandom(constRand(0.5)), WithLatencies(0, 0), WithRecorder(rec))

	m := sim.FetchSimulatedMetrics(context.Background())

	require.Equal(t, 35000.0, m.Revenue)
	require.Equal(t, 4.5, m.ConversionRate)
	require.Equal(t, 150000, m.Sessions)
	require.Equal(t, 20.0, m.GrowthRate)
	require.Equal(t, 5.0, m.ROAS)
	require.EqualValues(t, 1, rec.successes.Load())
}

func TestFetchFailureDegradesToFallback(t *testing.T) {
	rec := &countingRecorder{}
	sim, _ := newTestSim(t, WithFetcher(failingFetcher{}), WithRecorder(rec))

	recs := sim.FetchSimulatedPlatformData(context.Background(), []string{"X"})
	require.NotNil(t, recs)
	require.Empty(t, recs)

	m := sim.FetchSimulatedMetrics(context.Background())
	require.Equal(t, sim.GetCurrentSnapshot().CampaignMetrics, m)
	require.EqualValues(t, 2, rec.fallbacks.Load())
}

func TestFetchCancelledContextDegrades(t *testing.T) {
	rec := &countingRecorder{}
	sim, _ := newTestSim(t, WithRecorder(rec))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Empty(t, sim.FetchSimulatedPlatformData(ctx, []string{"X"}))
	require.Equal(t, sim.GetCurrentSnapshot().CampaignMetrics, sim.FetchSimulatedMetrics(ctx))
	require.EqualValues(t, 2, rec.fallbacks.Load())
}

func TestSimulatedFetcherWrapsSentinel(t *testing.T) {
	f := &simulatedFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Metrics(ctx)
	require.ErrorIs(t, err, ErrSimulatedFetch)
	require.ErrorIs(t, err, context.Canceled)
}

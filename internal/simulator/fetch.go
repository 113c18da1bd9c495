package simulator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/AngelCh415/adpulse/internal/models"
)

const (
	DefaultPlatformLatency = 500 * time.Millisecond
	DefaultMetricsLatency  = 300 * time.Millisecond
)

// Fetcher produces out-of-band data for live previews.
type Fetcher interface {
	PlatformData(ctx context.Context, platforms []string) ([]models.CampaignRecord, error)
	Metrics(ctx context.Context) (models.CampaignMetrics, error)
}

type simulatedFetcher struct {
	clock           clockwork.Clock
	rnd             Random
	platformLatency time.Duration
	metricsLatency  time.Duration
}

func (f *simulatedFetcher) PlatformData(ctx context.Context, platforms []string) ([]models.CampaignRecord, error) {
	if err := f.wait(ctx, f.platformLatency); err != nil {
		return nil, err
	}
	ts := f.clock.Now().UnixMilli()
	out := make([]models.CampaignRecord, 0, len(platforms))
	for _, p := range platforms {
		status := models.StatusActive
		if f.rnd.Float64() > 0.8 {
			status = models.StatusPaused
		}
		out = append(out, models.CampaignRecord{
			Platform:    p,
			Name:        p + " Campaign",
			Spend:       math.Floor(f.rnd.Float64() * 20000),
			Impressions: int(f.rnd.Float64() * 500000),
			Clicks:      int(f.rnd.Float64() * 15000),
			Conversions: int(f.rnd.Float64() * 500),
			CTR:         2 + f.rnd.Float64()*3,
			CPC:         0.5 + f.rnd.Float64()*1.5,
			ROAS:        2 + f.rnd.Float64()*4,
			Status:      status,
			Timestamp:   ts,
		})
	}
	return out, nil
}

func (f *simulatedFetcher) Metrics(ctx context.Context) (models.CampaignMetrics, error) {
	if err := f.wait(ctx, f.metricsLatency); err != nil {
		return models.CampaignMetrics{}, err
	}
	return models.CampaignMetrics{
		Revenue:        30000 + f.rnd.Float64()*10000,
		ConversionRate: 3 + f.rnd.Float64()*3,
		Sessions:       100000 + int(f.rnd.Float64()*100000),
		GrowthRate:     10 + f.rnd.Float64()*20,
		CTR:            2 + f.rnd.Float64()*3,
		CPC:            1 + f.rnd.Float64()*2,
		ROAS:           3 + f.rnd.Float64()*4,
		Timestamp:      f.clock.Now().UnixMilli(),
	}, nil
}

func (f *simulatedFetcher) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSimulatedFetch, err)
	}
	select {
	case <-f.clock.After(d):
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrSimulatedFetch, ctx.Err())
	}
}

package simulator

import (
	"math"
	"time"

	"github.com/AngelCh415/adpulse/internal/models"
)

// minCPC keeps cost-per-click strictly positive.
const minCPC = 0.1

// advance derives the next snapshot from prev. prev is not modified; the
// returned snapshot owns fresh campaign and traffic slices and shares
// revenueData, which never changes after construction.
func advance(prev models.Snapshot, r Random, now time.Time) models.Snapshot {
	ts := now.UnixMilli()
	next := prev

	cm := prev.CampaignMetrics
	next.CampaignMetrics = models.CampaignMetrics{
		Revenue:        maxf(cm.Revenue + delta(r, 100)),
		ConversionRate: maxf(cm.ConversionRate + delta(r, 0.2)),
		Sessions:       max0(cm.Sessions + idelta(r, 50)),
		GrowthRate:     maxf(cm.GrowthRate + delta(r, 1)),
		CTR:            cm.CTR,
		CPC:            cm.CPC,
		ROAS:           cm.ROAS,
		Timestamp:      ts,
	}

	next.Campaigns = make([]models.CampaignRecord, len(prev.Campaigns))
	for i, c := range prev.Campaigns {
		c.Spend = maxf(c.Spend + delta(r, 100))
		c.Impressions = max0(c.Impressions + idelta(r, 5000))
		c.Clicks = max0(c.Clicks + idelta(r, 200))
		c.Conversions = max0(c.Conversions + idelta(r, 10))
		c.CTR = maxf(c.CTR + delta(r, 0.2))
		c.CPC = math.Max(minCPC, c.CPC+delta(r, 0.1))
		c.ROAS = maxf(c.ROAS + delta(r, 0.5))
		c.Timestamp = ts
		next.Campaigns[i] = c
	}

	bm := prev.BrandMetrics
	next.BrandMetrics = models.BrandMetrics{
		BrandAwareness: clamp(bm.BrandAwareness+delta(r, 2), 0, 100),
		BrandSentiment: clamp(bm.BrandSentiment+delta(r, 1.5), 0, 100),
		SocialMentions: max0(bm.SocialMentions + idelta(r, 50)),
		ShareOfVoice:   clamp(bm.ShareOfVoice+delta(r, 1), 0, 100),
		EngagementRate: clamp(bm.EngagementRate+delta(r, 0.3), 0, 20),
		Timestamp:      ts,
	}

	next.TrafficSources = make([]models.TrafficSource, len(prev.TrafficSources))
	for i, src := range prev.TrafficSources {
		src.Visitors = max0(src.Visitors + idelta(r, 100))
		src.Conversions = max0(src.Conversions + idelta(r, 10))
		src.Revenue = maxf(src.Revenue + float64(idelta(r, 50)))
		next.TrafficSources[i] = src
	}

	return next
}

func idelta(r Random, spread float64) int { return int(math.Floor(delta(r, spread))) }

func clamp(f, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, f)) }

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
func maxf(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

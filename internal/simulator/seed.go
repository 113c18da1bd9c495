package simulator

import (
	"math"
	"time"

	"github.com/AngelCh415/adpulse/internal/models"
)

const revenueDays = 30

// baseline builds the fixed starting snapshot. Only revenueData is random.
func baseline(now time.Time, r Random) models.Snapshot {
	ts := now.UnixMilli()
	return models.Snapshot{
		Campaigns: []models.CampaignRecord{
			{
				Platform:    "Google Ads",
				Name:        "Summer Sale Campaign",
				Spend:       12500,
				Impressions: 450000,
				Clicks:      14400,
				Conversions: 432,
				CTR:         3.2,
				CPC:         0.87,
				ROAS:        4.8,
				Status:      models.StatusActive,
				Timestamp:   ts,
			},
			{
				Platform:    "Facebook Ads",
				Name:        "Brand Awareness Drive",
				Spend:       8900,
				Impressions: 380000,
				Clicks:      11400,
				Conversions: 285,
				CTR:         3.0,
				CPC:         0.78,
				ROAS:        3.6,
				Status:      models.StatusActive,
				Timestamp:   ts,
			},
			{
				Platform:    "Instagram Ads",
				Name:        "Product Launch",
				Spend:       6200,
				Impressions: 280000,
				Clicks:      8400,
				Conversions: 210,
				CTR:         3.0,
				CPC:         0.74,
				ROAS:        5.2,
				Status:      models.StatusActive,
				Timestamp:   ts,
			},
		},
		CampaignMetrics: models.CampaignMetrics{
			Revenue:        34521,
			ConversionRate: 4.8,
			Sessions:       145892,
			GrowthRate:     18.2,
			CTR:            3.2,
			CPC:            1.45,
			ROAS:           4.8,
			Timestamp:      ts,
		},
		BrandMetrics: models.BrandMetrics{
			BrandAwareness: 78.5,
			BrandSentiment: 82.3,
			SocialMentions: 1247,
			ShareOfVoice:   15.8,
			EngagementRate: 6.4,
			Timestamp:      ts,
		},
		TrafficSources: []models.TrafficSource{
			{Source: "Google Ads", Visitors: 45000, Conversions: 2160, Revenue: 12500},
			{Source: "Facebook Ads", Visitors: 38000, Conversions: 1824, Revenue: 10800},
			{Source: "Instagram", Visitors: 28000, Conversions: 1120, Revenue: 8200},
			{Source: "LinkedIn", Visitors: 15000, Conversions: 750, Revenue: 5500},
			{Source: "Organic", Visitors: 52000, Conversions: 1560, Revenue: 9200},
		},
		RevenueData: revenueData(now, r),
	}
}

// revenueData generates one point per day for the trailing 30 days ending
// at now's UTC date, oldest first.
func revenueData(now time.Time, r Random) []models.RevenuePoint {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	out := make([]models.RevenuePoint, 0, revenueDays)
	for i := revenueDays - 1; i >= 0; i-- {
		base := 1000 + r.Float64()*500
		seasonality := math.Sin(float64(i)/revenueDays*math.Pi*2) * 200
		trend := float64(i * 10)
		revenue := math.Round(base + seasonality + trend)
		out = append(out, models.RevenuePoint{
			Date:    today.AddDate(0, 0, -i).Format("2006-01-02"),
			Revenue: revenue,
			Profit:  math.Round(revenue * 0.3),
		})
	}
	return out
}

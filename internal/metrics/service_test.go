package metrics

import (
	"net/url"
	"testing"

	"github.com/AngelCh415/adpulse/internal/models"
)

type fixedSource struct{ snap models.Snapshot }

func (f fixedSource) GetCurrentSnapshot() models.Snapshot { return f.snap }

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Campaigns: []models.CampaignRecord{
			{Platform: "Google Ads", Name: "A", Spend: 100, Impressions: 1000, Clicks: 50, Conversions: 5, ROAS: 4, Status: models.StatusActive},
			{Platform: "Facebook Ads", Name: "B", Spend: 300, Impressions: 3000, Clicks: 150, Conversions: 9, ROAS: 2, Status: models.StatusPaused},
		},
		CampaignMetrics: models.CampaignMetrics{Timestamp: 1754000000000},
		TrafficSources: []models.TrafficSource{
			{Source: "Organic", Visitors: 0, Conversions: 0, Revenue: 0},
			{Source: "Google Ads", Visitors: 1000, Conversions: 50, Revenue: 2500},
		},
		RevenueData: []models.RevenuePoint{
			{Date: "2025-08-01", Revenue: 100, Profit: 30},
			{Date: "2025-08-02", Revenue: 200, Profit: 60},
		},
	}
}

func TestSummaryTotals(t *testing.T) {
	svc := NewService(fixedSource{sampleSnapshot()})
	sum := svc.Summary()

	if sum.Campaigns != 2 || sum.ActiveCampaigns != 1 {
		t.Fatalf("expected 2 campaigns/1 active, got %d/%d", sum.Campaigns, sum.ActiveCampaigns)
	}
	if sum.Spend != 400 || sum.Impressions != 4000 || sum.Clicks != 200 || sum.Conversions != 14 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if sum.CTR != 5 {
		t.Fatalf("expected ctr=5, got=%v", sum.CTR)
	}
	if sum.CPC != 2 {
		t.Fatalf("expected cpc=2, got=%v", sum.CPC)
	}
	if sum.ROAS != 2.5 {
		t.Fatalf("expected spend-weighted roas=2.5, got=%v", sum.ROAS)
	}
	if sum.TrafficVisitors != 1000 || sum.TrafficRevenue != 2500 {
		t.Fatalf("unexpected traffic totals: %+v", sum)
	}
	if sum.Revenue30d != 300 || sum.Profit30d != 90 {
		t.Fatalf("unexpected revenue totals: %+v", sum)
	}
	if sum.Timestamp != 1754000000000 {
		t.Fatalf("expected timestamp from campaign metrics, got=%d", sum.Timestamp)
	}
}

func TestSummarySafeDiv(t *testing.T) {
	svc := NewService(fixedSource{models.Snapshot{}})
	sum := svc.Summary()
	if sum.CTR != 0 || sum.CPC != 0 || sum.ROAS != 0 {
		t.Fatalf("expected zero ratios on empty snapshot, got %+v", sum)
	}
}

func TestQueryChannel(t *testing.T) {
	svc := NewService(fixedSource{sampleSnapshot()})

	rows, err := svc.QueryChannel(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0].Source != "Google Ads" {
		t.Fatalf("expected sorted rows, got %+v", rows)
	}
	if rows[0].ConversionRate != 5 || rows[0].RevenuePerVisitor != 2.5 {
		t.Fatalf("unexpected derived metrics: %+v", rows[0])
	}
	if rows[1].ConversionRate != 0 || rows[1].RevenuePerVisitor != 0 {
		t.Fatalf("expected zero ratios for empty source, got %+v", rows[1])
	}

	rows, _ = svc.QueryChannel(url.Values{"channel": {" google ads ,linkedin"}})
	if len(rows) != 1 || rows[0].Source != "Google Ads" {
		t.Fatalf("expected channel filter to match Google Ads, got %+v", rows)
	}

	rows, _ = svc.QueryChannel(url.Values{"limit": {"1"}, "offset": {"1"}})
	if len(rows) != 1 || rows[0].Source != "Organic" {
		t.Fatalf("expected second page to be Organic, got %+v", rows)
	}

	rows, _ = svc.QueryChannel(url.Values{"offset": {"10"}})
	if len(rows) != 0 {
		t.Fatalf("expected empty page, got %+v", rows)
	}
}

func TestQueryChannelBadParams(t *testing.T) {
	svc := NewService(fixedSource{sampleSnapshot()})
	if _, err := svc.QueryChannel(url.Values{"limit": {"abc"}}); err == nil {
		t.Fatal("expected error for bad limit")
	}
	if _, err := svc.QueryChannel(url.Values{"offset": {"x"}}); err == nil {
		t.Fatal("expected error for bad offset")
	}
}

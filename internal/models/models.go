package models

type CampaignStatus string

const (
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
)

type CampaignRecord struct {
	Platform    string         `json:"platform"`
	Name        string         `json:"name"`
	Spend       float64        `json:"spend"`
	Impressions int            `json:"impressions"`
	Clicks      int            `json:"clicks"`
	Conversions int            `json:"conversions"`
	CTR         float64        `json:"ctr"`
	CPC         float64        `json:"cpc"`
	ROAS        float64        `json:"roas"`
	Status      CampaignStatus `json:"status"`
	Timestamp   int64          `json:"timestamp"` // unix ms
}

// Key identifies a campaign across ticks.
func (c CampaignRecord) Key() string { return c.Platform + "|" + c.Name }

type CampaignMetrics struct {
	Revenue        float64 `json:"revenue"`
	ConversionRate float64 `json:"conversionRate"`
	Sessions       int     `json:"sessions"`
	GrowthRate     float64 `json:"growthRate"`
	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	ROAS           float64 `json:"roas"`
	Timestamp      int64   `json:"timestamp"`
}

type BrandMetrics struct {
	BrandAwareness float64 `json:"brandAwareness"` // %
	BrandSentiment float64 `json:"brandSentiment"` // %
	SocialMentions int     `json:"socialMentions"`
	ShareOfVoice   float64 `json:"shareOfVoice"`   // %
	EngagementRate float64 `json:"engagementRate"` // %, capped at 20
	Timestamp      int64   `json:"timestamp"`
}

type TrafficSource struct {
	Source      string  `json:"source"`
	Visitors    int     `json:"visitors"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

type RevenuePoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Snapshot is the full set of analytics values at one point in time.
// Values handed out by the simulator are shared and must be treated as
// read-only; use Clone before modifying.
type Snapshot struct {
	Campaigns       []CampaignRecord `json:"campaigns"`
	CampaignMetrics CampaignMetrics  `json:"campaignMetrics"`
	BrandMetrics    BrandMetrics     `json:"brandMetrics"`
	TrafficSources  []TrafficSource  `json:"trafficSources"`
	RevenueData     []RevenuePoint   `json:"revenueData"`
}

func (s Snapshot) Clone() Snapshot {
	out := s
	out.Campaigns = append([]CampaignRecord(nil), s.Campaigns...)
	out.TrafficSources = append([]TrafficSource(nil), s.TrafficSources...)
	out.RevenueData = append([]RevenuePoint(nil), s.RevenueData...)
	return out
}

// Summary is a rollup of a snapshot served to dashboards.
type Summary struct {
	Campaigns          int     `json:"campaigns"`
	ActiveCampaigns    int     `json:"active_campaigns"`
	Spend              float64 `json:"spend"`
	Impressions        int     `json:"impressions"`
	Clicks             int     `json:"clicks"`
	Conversions        int     `json:"conversions"`
	CTR                float64 `json:"ctr"`
	CPC                float64 `json:"cpc"`
	ROAS               float64 `json:"roas"`
	TrafficVisitors    int     `json:"traffic_visitors"`
	TrafficConversions int     `json:"traffic_conversions"`
	TrafficRevenue     float64 `json:"traffic_revenue"`
	Revenue30d         float64 `json:"revenue_30d"`
	Profit30d          float64 `json:"profit_30d"`
	Timestamp          int64   `json:"timestamp"`
}

type ChannelMetrics struct {
	Source            string  `json:"source"`
	Visitors          int     `json:"visitors"`
	Conversions       int     `json:"conversions"`
	Revenue           float64 `json:"revenue"`
	ConversionRate    float64 `json:"conversion_rate"`
	RevenuePerVisitor float64 `json:"revenue_per_visitor"`
}

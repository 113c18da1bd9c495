package metrics

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/AngelCh415/adpulse/internal/models"
)

// SnapshotSource provides the snapshot rollups are computed from.
type SnapshotSource interface {
	GetCurrentSnapshot() models.Snapshot
}

type Service struct{ src SnapshotSource }

func NewService(src SnapshotSource) *Service { return &Service{src: src} }
func norm(s string) string                  { return strings.ToLower(strings.TrimSpace(s)) }

func csvSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, p := range strings.Split(s, ",") {
		p = norm(p)
		if p != "" {
			out[p] = struct{}{}
		}
	}
	return out
}

// Summary rolls the current snapshot up into dashboard totals.
func (s *Service) Summary() models.Summary {
	snap := s.src.GetCurrentSnapshot()

	sum := models.Summary{
		Campaigns: len(snap.Campaigns),
		Timestamp: snap.CampaignMetrics.Timestamp,
	}
	var weightedROAS float64
	for _, c := range snap.Campaigns {
		if c.Status == models.StatusActive {
			sum.ActiveCampaigns++
		}
		sum.Spend += c.Spend
		sum.Impressions += c.Impressions
		sum.Clicks += c.Clicks
		sum.Conversions += c.Conversions
		weightedROAS += c.ROAS * c.Spend
	}
	sum.CTR = round3(safeDivF(float64(sum.Clicks), float64(sum.Impressions)) * 100)
	sum.CPC = round3(safeDivF(sum.Spend, float64(sum.Clicks)))
	// ROAS weighted by spend so large campaigns dominate
	sum.ROAS = round2(safeDivF(weightedROAS, sum.Spend))
	sum.Spend = round2(sum.Spend)

	for _, src := range snap.TrafficSources {
		sum.TrafficVisitors += src.Visitors
		sum.TrafficConversions += src.Conversions
		sum.TrafficRevenue += src.Revenue
	}
	sum.TrafficRevenue = round2(sum.TrafficRevenue)

	for _, p := range snap.RevenueData {
		sum.Revenue30d += p.Revenue
		sum.Profit30d += p.Profit
	}
	return sum
}

// QueryChannel returns per-source traffic metrics filtered by the
// comma-separated "channel" parameter and paginated by limit/offset.
func (s *Service) QueryChannel(v url.Values) ([]models.ChannelMetrics, error) {
	chSet := csvSet(v.Get("channel"))
	limit, err := atoiDef(v.Get("limit"), 100)
	if err != nil {
		return nil, fmt.Errorf("bad limit: %w", err)
	}
	offset, err := atoiDef(v.Get("offset"), 0)
	if err != nil {
		return nil, fmt.Errorf("bad offset: %w", err)
	}

	snap := s.src.GetCurrentSnapshot()
	rows := make([]models.ChannelMetrics, 0, len(snap.TrafficSources))
	for _, src := range snap.TrafficSources {
		if len(chSet) > 0 {
			if _, ok := chSet[norm(src.Source)]; !ok {
				continue
			}
		}
		rows = append(rows, toChannelMetrics(src))
	}

	// orden determinista
	sort.Slice(rows, func(i, j int) bool { return rows[i].Source < rows[j].Source })

	limit, offset = clampLimitOffset(limit, offset, len(rows))
	return paginate(rows, limit, offset), nil
}

func toChannelMetrics(src models.TrafficSource) models.ChannelMetrics {
	return models.ChannelMetrics{
		Source:            src.Source,
		Visitors:          src.Visitors,
		Conversions:       src.Conversions,
		Revenue:           round2(src.Revenue),
		ConversionRate:    round2(safeDivF(float64(src.Conversions), float64(src.Visitors)) * 100),
		RevenuePerVisitor: round3(safeDivF(src.Revenue, float64(src.Visitors))),
	}
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) (int, error) {
	if s == "" {
		return d, nil
	}
	return strconv.Atoi(s)
}
func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	} // tope sano
	if offset > n {
		offset = n
	}
	return limit, offset
}
func safeDivF(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
func round2(f float64) float64 { return float64(int64(f*100+0.5)) / 100 }
func round3(f float64) float64 { return float64(int64(f*1000+0.5)) / 1000 }

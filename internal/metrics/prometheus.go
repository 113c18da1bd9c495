package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AngelCh415/adpulse/internal/models"
)

// PrometheusRecorder exposes simulator activity and the latest snapshot
// values as Prometheus metrics.
type PrometheusRecorder struct {
	ticksTotal          prometheus.Counter
	observers           prometheus.Gauge
	observerPanicsTotal prometheus.Counter
	fetchTotal          *prometheus.CounterVec

	revenue        prometheus.Gauge
	sessions       prometheus.Gauge
	conversionRate prometheus.Gauge
	brand          *prometheus.GaugeVec
	campaignSpend  *prometheus.GaugeVec
	trafficVisits  *prometheus.GaugeVec
}

// NewPrometheus creates the recorder and registers its collectors on reg.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	m := &PrometheusRecorder{
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adpulse_sim_ticks_total",
			Help: "Total number of simulator ticks applied",
		}),
		observers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adpulse_sim_observers",
			Help: "Number of registered snapshot observers",
		}),
		observerPanicsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adpulse_sim_observer_panics_total",
			Help: "Total number of observer invocations that panicked",
		}),
		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adpulse_sim_fetch_total",
				Help: "Total number of simulated fetches by outcome",
			},
			[]string{"op", "status"},
		),
		revenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adpulse_snapshot_revenue",
			Help: "Aggregate campaign revenue in the current snapshot",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adpulse_snapshot_sessions",
			Help: "Session count in the current snapshot",
		}),
		conversionRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adpulse_snapshot_conversion_rate",
			Help: "Aggregate conversion rate percentage in the current snapshot",
		}),
		brand: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adpulse_snapshot_brand_percent",
				Help: "Brand metric percentages in the current snapshot",
			},
			[]string{"metric"},
		),
		campaignSpend: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adpulse_snapshot_campaign_spend",
				Help: "Campaign spend in the current snapshot",
			},
			[]string{"platform", "campaign"},
		),
		trafficVisits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adpulse_snapshot_traffic_visitors",
				Help: "Visitors per traffic source in the current snapshot",
			},
			[]string{"source"},
		),
	}

	reg.MustRegister(
		m.ticksTotal,
		m.observers,
		m.observerPanicsTotal,
		m.fetchTotal,
		m.revenue,
		m.sessions,
		m.conversionRate,
		m.brand,
		m.campaignSpend,
		m.trafficVisits,
	)
	return m
}

func (m *PrometheusRecorder) ObserveTick(snap models.Snapshot) {
	m.ticksTotal.Inc()

	m.revenue.Set(snap.CampaignMetrics.Revenue)
	m.sessions.Set(float64(snap.CampaignMetrics.Sessions))
	m.conversionRate.Set(snap.CampaignMetrics.ConversionRate)

	m.brand.WithLabelValues("awareness").Set(snap.BrandMetrics.BrandAwareness)
	m.brand.WithLabelValues("sentiment").Set(snap.BrandMetrics.BrandSentiment)
	m.brand.WithLabelValues("share_of_voice").Set(snap.BrandMetrics.ShareOfVoice)
	m.brand.WithLabelValues("engagement").Set(snap.BrandMetrics.EngagementRate)

	for _, c := range snap.Campaigns {
		m.campaignSpend.WithLabelValues(c.Platform, c.Name).Set(c.Spend)
	}
	for _, src := range snap.TrafficSources {
		m.trafficVisits.WithLabelValues(src.Source).Set(float64(src.Visitors))
	}
}

func (m *PrometheusRecorder) SetObservers(n int) {
	m.observers.Set(float64(n))
}

func (m *PrometheusRecorder) IncObserverPanic() {
	m.observerPanicsTotal.Inc()
}

func (m *PrometheusRecorder) IncFetch(op, status string) {
	m.fetchTotal.WithLabelValues(op, status).Inc()
}

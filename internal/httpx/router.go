package httpx

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/adpulse/internal/metrics"
	"github.com/AngelCh415/adpulse/internal/models"
	"github.com/AngelCh415/adpulse/internal/simulator"
	"github.com/AngelCh415/adpulse/internal/utils"
)

const (
	maxPreviewPlatforms = 20
	maxPreviewBody      = 64 << 10
)

// Analytics is the simulator surface the HTTP layer consumes.
type Analytics interface {
	GetCurrentSnapshot() models.Snapshot
	Subscribe(fn simulator.Observer) func()
	FetchSimulatedPlatformData(ctx context.Context, platforms []string) []models.CampaignRecord
	FetchSimulatedMetrics(ctx context.Context) models.CampaignMetrics
	Ticks() uint64
}

func NewRouter(log *slog.Logger, sim Analytics, mSvc *metrics.Service, gatherer prometheus.Gatherer, streamBuffer int) http.Handler {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.RealIP)
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Recoverer(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Snapshot-Seq", strconv.FormatUint(sim.Ticks(), 10))
			writeJSON(w, sim.GetCurrentSnapshot())
		})

		r.Get("/campaigns", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, sim.GetCurrentSnapshot().Campaigns)
		})

		r.Get("/campaigns/export", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="campaigns.csv"`)
			if err := writeCampaignsCSV(w, sim.GetCurrentSnapshot().Campaigns); err != nil {
				log.Error("csv export failed", slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
			}
		})

		r.Get("/summary", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, mSvc.Summary())
		})

		r.Get("/channels", func(w http.ResponseWriter, r *http.Request) {
			rows, err := mSvc.QueryChannel(r.URL.Query())
			if err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			writeJSON(w, rows)
		})

		r.Get("/stream", streamHandler(log, sim, streamBuffer))

		r.Post("/platforms/preview", func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Platforms []string `json:"platforms"`
			}
			if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreviewBody)).Decode(&body); err != nil {
				http.Error(w, "bad body", 400)
				return
			}
			platforms := make([]string, 0, len(body.Platforms))
			for _, p := range body.Platforms {
				if p = strings.TrimSpace(p); p != "" {
					platforms = append(platforms, p)
				}
			}
			if len(platforms) == 0 {
				http.Error(w, "platforms required", 400)
				return
			}
			if len(platforms) > maxPreviewPlatforms {
				http.Error(w, fmt.Sprintf("at most %d platforms", maxPreviewPlatforms), 400)
				return
			}
			writeJSON(w, sim.FetchSimulatedPlatformData(r.Context(), platforms))
		})

		r.Get("/metrics/preview", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, sim.FetchSimulatedMetrics(r.Context()))
		})
	})

	return mux
}

var csvHeader = []string{"Platform", "Campaign Name", "Status", "Spend", "Impressions", "Clicks", "Conversions", "CTR", "CPC", "ROAS"}

func writeCampaignsCSV(w io.Writer, campaigns []models.CampaignRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range campaigns {
		row := []string{
			c.Platform,
			c.Name,
			string(c.Status),
			fmtFloat(c.Spend, 2),
			strconv.Itoa(c.Impressions),
			strconv.Itoa(c.Clicks),
			strconv.Itoa(c.Conversions),
			fmtFloat(c.CTR, 2),
			fmtFloat(c.CPC, 2),
			fmtFloat(c.ROAS, 2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(f float64, prec int) string { return strconv.FormatFloat(f, 'f', prec, 64) }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

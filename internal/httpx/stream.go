package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/AngelCh415/adpulse/internal/models"
	"github.com/AngelCh415/adpulse/internal/utils"
)

// streamHandler pushes every snapshot as a server-sent event. The client is
// subscribed for exactly as long as the request lives.
func streamHandler(log *slog.Logger, sim Analytics, buffer int) http.HandlerFunc {
	if buffer < 1 {
		buffer = 1
	}
	return func(w http.ResponseWriter, r *http.Request) {
		fl, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		fl.Flush()

		updates := make(chan models.Snapshot, buffer)
		unsubscribe := sim.Subscribe(func(s models.Snapshot) { offer(updates, s) })
		defer unsubscribe()

		rid := utils.RID(r.Context())
		log.Debug("stream opened", slog.String("rid", rid))
		for {
			select {
			case <-r.Context().Done():
				log.Debug("stream closed", slog.String("rid", rid))
				return
			case s := <-updates:
				if err := writeEvent(w, "snapshot", s); err != nil {
					log.Debug("stream write failed", slog.String("rid", rid), slog.String("err", err.Error()))
					return
				}
				fl.Flush()
			}
		}
	}
}

// offer never blocks: when ch is full the oldest pending snapshot is dropped.
// Only the simulator's delivery path sends, so the loop terminates.
func offer(ch chan models.Snapshot, s models.Snapshot) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func writeEvent(w io.Writer, event string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b)
	return err
}

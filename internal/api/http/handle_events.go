package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const streamPingInterval = 30 * time.Second

// handleStreamEvents serves a kingdom's event journal as a server-sent
// event stream. Comment pings keep idle connections alive through
// proxies.
func handleStreamEvents(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kingdomID := chi.URLParam(r, "kingdomID")

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(kingdomID)
		defer broker.Unsubscribe(kingdomID, ch)

		ping := time.NewTicker(streamPingInterval)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: kingdom\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}

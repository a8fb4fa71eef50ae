package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/louisbranch/demesne/internal/storage"
)

// handleHealth probes the store with a lookup that is expected to miss.
// Any error other than a missing record means the backend is unhealthy.
func handleHealth(logger *slog.Logger, store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := store.GetKingdom(r.Context(), "healthz")
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

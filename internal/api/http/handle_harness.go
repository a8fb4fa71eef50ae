package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/demesne/internal/harness"
	"github.com/louisbranch/demesne/internal/platform/errors"
)

func handleInjectIncident(runner *harness.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name   string `json:"name"`
			Script string `json:"script"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Script == "" {
			writeError(w, http.StatusBadRequest, "script is required")
			return
		}

		incident, err := harness.LoadIncidentFromString(req.Script, req.Name)
		if err != nil {
			writeServiceError(w, r, errors.Wrap(errors.CodeIncidentInvalidScript, "incident script failed to load", err))
			return
		}

		if err := runner.Run(r.Context(), chi.URLParam(r, "kingdomID"), incident); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"incident": incident.Name,
			"steps":    len(incident.Steps),
		})
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	turndomain "github.com/louisbranch/demesne/internal/turn/domain"
	turnservice "github.com/louisbranch/demesne/internal/turn/service"
)

type viewerResponse struct {
	ViewerID string `json:"viewerId"`
	Viewing  string `json:"viewing"`
	Locked   bool   `json:"locked"`
}

func toViewerResponse(viewer turndomain.Viewer) viewerResponse {
	return viewerResponse{
		ViewerID: viewer.ViewerID,
		Viewing:  viewer.Viewing.String(),
		Locked:   viewer.Locked,
	}
}

func handleAdvancePhase(turns *turnservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requestSession(r)
		result, err := turns.AdvancePhase(r.Context(), chi.URLParam(r, "kingdomID"), session.ActorID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"fromPhase":  result.FromPhase.String(),
			"toPhase":    result.ToPhase.String(),
			"turn":       result.Turn,
			"turnRolled": result.TurnRolled,
		})
	}
}

func handleGetViewer(turns *turnservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requestSession(r)
		viewer, err := turns.GetViewer(r.Context(), chi.URLParam(r, "kingdomID"), session.ActorID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toViewerResponse(viewer))
	}
}

func handleSetViewing(turns *turnservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Phase string `json:"phase"`
			// HoldMs is how long the viewer pressed and held, for
			// unlocking a locked view.
			HoldMs int `json:"holdMs"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		phase, err := turndomain.ParsePhase(req.Phase)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown phase")
			return
		}

		session := requestSession(r)
		viewer, err := turns.SetViewing(r.Context(), chi.URLParam(r, "kingdomID"), session.ActorID, phase, time.Duration(req.HoldMs)*time.Millisecond)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toViewerResponse(viewer))
	}
}

func handleSetLock(turns *turnservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Locked bool `json:"locked"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session := requestSession(r)
		viewer, err := turns.SetLock(r.Context(), chi.URLParam(r, "kingdomID"), session.ActorID, req.Locked)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toViewerResponse(viewer))
	}
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/demesne/internal/content"
	"github.com/louisbranch/demesne/internal/kingdom/event"
	resolutiondomain "github.com/louisbranch/demesne/internal/resolution/domain"
	resolutionservice "github.com/louisbranch/demesne/internal/resolution/service"
)

type resolutionResponse struct {
	ID         string                      `json:"id"`
	CheckID    string                      `json:"checkId"`
	ActorName  string                      `json:"actorName"`
	Skill      string                      `json:"skill"`
	Die        int                         `json:"die"`
	Modifiers  []resolutiondomain.Modifier `json:"modifiers,omitempty"`
	Total      int                         `json:"total"`
	DC         int                         `json:"dc"`
	Outcome    string                      `json:"outcome"`
	State      string                      `json:"state"`
	RerollUsed bool                        `json:"rerollUsed"`
	Display    resolutionservice.Display   `json:"display"`
}

func toResolutionResponse(resolutions *resolutionservice.Service, resolution resolutiondomain.Resolution) resolutionResponse {
	return resolutionResponse{
		ID:         resolution.ID,
		CheckID:    resolution.CheckID,
		ActorName:  resolution.ActorName,
		Skill:      resolution.Skill,
		Die:        resolution.Die,
		Modifiers:  resolution.Modifiers,
		Total:      resolution.Total,
		DC:         resolution.DC,
		Outcome:    resolution.Outcome.String(),
		State:      resolution.State.String(),
		RerollUsed: resolution.RerollUsed,
		Display:    resolutions.DisplayFor(resolution),
	}
}

func handleListChecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks, err := content.Checks()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "check catalog unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"checks": checks})
	}
}

func handleExecuteCheck(resolutions *resolutionservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ActorName string                      `json:"actorName"`
			Skill     string                      `json:"skill"`
			Modifiers []resolutiondomain.Modifier `json:"modifiers"`
			Seed      int64                       `json:"seed"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session := requestSession(r)
		actorType := event.ActorTypePlayer
		if session.Role == roleGM {
			actorType = event.ActorTypeGM
		}
		resolution, err := resolutions.ExecuteCheck(r.Context(), resolutionservice.ExecuteInput{
			KingdomID: chi.URLParam(r, "kingdomID"),
			CheckID:   chi.URLParam(r, "checkID"),
			ActorName: req.ActorName,
			Skill:     req.Skill,
			Modifiers: req.Modifiers,
			Seed:      req.Seed,
		}, actorType, session.ActorID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResolutionResponse(resolutions, resolution))
	}
}

func handleListPendingResolutions(resolutions *resolutionservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := resolutions.ListPending(r.Context(), chi.URLParam(r, "kingdomID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		out := make([]resolutionResponse, 0, len(pending))
		for _, resolution := range pending {
			out = append(out, toResolutionResponse(resolutions, resolution))
		}
		writeJSON(w, http.StatusOK, map[string]any{"resolutions": out})
	}
}

func handleReroll(resolutions *resolutionservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Seed int64 `json:"seed"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session := requestSession(r)
		resolution, err := resolutions.Reroll(r.Context(), chi.URLParam(r, "resolutionID"), req.Seed, session.ActorID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toResolutionResponse(resolutions, resolution))
	}
}

func handleApplyOutcome(resolutions *resolutionservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requestSession(r)
		kingdom, err := resolutions.ApplyOutcome(r.Context(), chi.URLParam(r, "resolutionID"), session.ActorID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toKingdomResponse(kingdom))
	}
}

func handleCancelOutcome(resolutions *resolutionservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Reason string `json:"reason"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session := requestSession(r)
		if err := resolutions.CancelOutcome(r.Context(), chi.URLParam(r, "resolutionID"), session.ActorID, req.Reason); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	kingdomdomain "github.com/louisbranch/demesne/internal/kingdom/domain"
	kingdomservice "github.com/louisbranch/demesne/internal/kingdom/service"
)

type kingdomResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Level     int                 `json:"level"`
	Fame      int                 `json:"fame"`
	Unrest    int                 `json:"unrest"`
	Resources map[string]int      `json:"resources"`
	Flags     map[string]bool     `json:"flags,omitempty"`
	Tags      map[string][]string `json:"tags,omitempty"`
	Notes     map[string]string   `json:"notes,omitempty"`
	Turn      int                 `json:"turn"`
	Phase     string              `json:"phase"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func toKingdomResponse(kingdom kingdomdomain.Kingdom) kingdomResponse {
	return kingdomResponse{
		ID:        kingdom.ID,
		Name:      kingdom.Name,
		Level:     kingdom.Level,
		Fame:      kingdom.Fame,
		Unrest:    kingdom.Unrest,
		Resources: kingdom.Resources,
		Flags:     kingdom.Flags,
		Tags:      kingdom.Tags,
		Notes:     kingdom.Notes,
		Turn:      kingdom.Turn,
		Phase:     kingdom.Phase.String(),
		CreatedAt: kingdom.CreatedAt,
		UpdatedAt: kingdom.UpdatedAt,
	}
}

func handleCreateKingdom(kingdoms *kingdomservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
			Fame int    `json:"fame"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		kingdom, err := kingdoms.CreateKingdom(r.Context(), kingdomdomain.CreateKingdomInput{Name: req.Name, Fame: req.Fame})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toKingdomResponse(kingdom))
	}
}

func handleGetKingdom(kingdoms *kingdomservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kingdom, err := kingdoms.GetKingdom(r.Context(), chi.URLParam(r, "kingdomID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toKingdomResponse(kingdom))
	}
}

func handleListKingdomEvents(kingdoms *kingdomservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = parsed
		}

		events, err := kingdoms.ListEvents(r.Context(), chi.URLParam(r, "kingdomID"), limit)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		out := make([]StreamEvent, 0, len(events))
		for _, evt := range events {
			out = append(out, StreamEvent{
				Seq:       evt.Seq,
				Type:      string(evt.Type),
				ActorType: string(evt.ActorType),
				ActorID:   evt.ActorID,
				Payload:   evt.PayloadJSON,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": out})
	}
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/demesne/internal/content"
	settlementdomain "github.com/louisbranch/demesne/internal/settlement/domain"
	settlementservice "github.com/louisbranch/demesne/internal/settlement/service"
)

type settlementResponse struct {
	ID        string   `json:"id"`
	KingdomID string   `json:"kingdomId"`
	Name      string   `json:"name"`
	Tier      int      `json:"tier"`
	Capacity  int      `json:"capacity"`
	Built     []string `json:"built"`
}

func toSettlementResponse(settlement settlementdomain.Settlement) settlementResponse {
	return settlementResponse{
		ID:        settlement.ID,
		KingdomID: settlement.KingdomID,
		Name:      settlement.Name,
		Tier:      settlement.Tier,
		Capacity:  settlement.Capacity(),
		Built:     settlement.Built,
	}
}

func handleListStructures() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		structures, err := content.Structures()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "structure catalog unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"structures": structures})
	}
}

func handleCreateSettlement(settlements *settlementservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
			Tier int    `json:"tier"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		settlement, err := settlements.CreateSettlement(r.Context(), settlementdomain.CreateSettlementInput{
			KingdomID: chi.URLParam(r, "kingdomID"),
			Name:      req.Name,
			Tier:      req.Tier,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSettlementResponse(settlement))
	}
}

func handleListSettlements(settlements *settlementservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := settlements.ListSettlements(r.Context(), chi.URLParam(r, "kingdomID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		out := make([]settlementResponse, 0, len(list))
		for _, settlement := range list {
			out = append(out, toSettlementResponse(settlement))
		}
		writeJSON(w, http.StatusOK, map[string]any{"settlements": out})
	}
}

func handleGetSettlement(settlements *settlementservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settlement, err := settlements.GetSettlement(r.Context(), chi.URLParam(r, "settlementID"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettlementResponse(settlement))
	}
}

func handlePreviewSelection(settlements *settlementservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Selects   []string `json:"selects"`
			Deselects []string `json:"deselects"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		preview, err := settlements.PreviewSelection(r.Context(), chi.URLParam(r, "settlementID"), req.Selects, req.Deselects)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, preview)
	}
}

func handleCommitStructures(settlements *settlementservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Selects []string `json:"selects"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session := requestSession(r)
		settlement, err := settlements.CommitStructures(r.Context(), chi.URLParam(r, "settlementID"), req.Selects, session.ActorID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettlementResponse(settlement))
	}
}

func handleRemoveStructures(settlements *settlementservice.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StructureIDs []string `json:"structureIds"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		session := requestSession(r)
		settlement, err := settlements.RemoveStructures(r.Context(), chi.URLParam(r, "settlementID"), req.StructureIDs, session.ActorID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettlementResponse(settlement))
	}
}

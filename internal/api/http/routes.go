package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/demesne/internal/harness"
	kingdomservice "github.com/louisbranch/demesne/internal/kingdom/service"
	resolutionservice "github.com/louisbranch/demesne/internal/resolution/service"
	settlementservice "github.com/louisbranch/demesne/internal/settlement/service"
	"github.com/louisbranch/demesne/internal/storage"
	turnservice "github.com/louisbranch/demesne/internal/turn/service"
)

func addRoutes(r chi.Router, logger *slog.Logger, store storage.Store, secret []byte) {
	broker := NewBroker()
	published := newPublishingStore(store, broker)

	kingdoms := kingdomservice.New(published)
	turns := turnservice.New(published)
	resolutions := resolutionservice.New(published)
	settlements := settlementservice.New(published)
	runner := harness.NewRunner(resolutions, turns, published)

	verifier := NewTokenVerifier(secret)

	r.Get("/healthz", handleHealth(logger, store))

	// Catalogs are static content and need no session.
	r.Get("/api/checks", handleListChecks())
	r.Get("/api/structures", handleListStructures())

	r.Route("/api/kingdoms", func(r chi.Router) {
		r.Use(sessionMiddleware(verifier))

		r.With(gmOnlyMiddleware).Post("/", handleCreateKingdom(kingdoms))

		r.Route("/{kingdomID}", func(r chi.Router) {
			r.Get("/", handleGetKingdom(kingdoms))
			r.Get("/events", handleListKingdomEvents(kingdoms))
			r.Get("/stream", handleStreamEvents(broker))

			r.With(gmOnlyMiddleware).Post("/phase/advance", handleAdvancePhase(turns))

			// Viewer state is per-session; the viewer is the caller.
			r.Get("/viewer", handleGetViewer(turns))
			r.Put("/viewer/viewing", handleSetViewing(turns))
			r.Put("/viewer/lock", handleSetLock(turns))

			r.Post("/checks/{checkID}/execute", handleExecuteCheck(resolutions))
			r.Get("/resolutions", handleListPendingResolutions(resolutions))

			r.Get("/settlements", handleListSettlements(settlements))
			r.With(gmOnlyMiddleware).Post("/settlements", handleCreateSettlement(settlements))

			r.With(gmOnlyMiddleware).Post("/incidents", handleInjectIncident(runner))
		})
	})

	r.Route("/api/resolutions/{resolutionID}", func(r chi.Router) {
		r.Use(sessionMiddleware(verifier))

		r.Post("/reroll", handleReroll(resolutions))
		r.With(gmOnlyMiddleware).Post("/apply", handleApplyOutcome(resolutions))
		r.With(gmOnlyMiddleware).Post("/cancel", handleCancelOutcome(resolutions))
	})

	r.Route("/api/settlements/{settlementID}", func(r chi.Router) {
		r.Use(sessionMiddleware(verifier))

		r.Get("/", handleGetSettlement(settlements))
		r.Post("/structures/preview", handlePreviewSelection(settlements))
		r.With(gmOnlyMiddleware).Post("/structures/commit", handleCommitStructures(settlements))
		r.With(gmOnlyMiddleware).Post("/structures/remove", handleRemoveStructures(settlements))
	})
}

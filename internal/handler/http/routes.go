package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/v1/sync", func(r chi.Router) {
			r.Post("/session", h.runSyncSession)
			r.Get("/status", h.getSyncStatus)
			r.Post("/offline", h.enterOffline)
			r.Post("/online", h.exitOffline)

			r.Route("/conflicts", func(r chi.Router) {
				r.Get("/", h.listConflicts)
				r.Post("/resolve-all", h.resolveAllConflicts)

				r.Route("/{conflictID}", func(r chi.Router) {
					r.Get("/", h.getConflict)
					r.Post("/resolve", h.resolveConflict)
					r.Post("/ignore", h.ignoreConflict)
				})
			})

			r.Route("/queue", func(r chi.Router) {
				r.Get("/", h.listQueueItems)
				r.Post("/", h.enqueueOfflineChange)
				r.Delete("/{itemID}", h.deleteQueueItem)
			})
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

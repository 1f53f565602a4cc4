// Package categories provides the category browsing and editing feature for the UI.
package categories

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
)

// SetupRoutes registers category routes on the router.
func SetupRoutes(
	router chi.Router,
	categories api.CategoryService,
	translations common.Translations,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(categories, translations, sessionStore, notify, logger, isDev)

	router.Route("/categories", func(r chi.Router) {
		// Page routes (full page render)
		r.Get("/", handlers.ListPage)
		r.Get("/add", handlers.AddPage)
		r.Get("/{id}", handlers.DetailPage)
		r.Get("/{id}/edit", handlers.EditPage)
		r.Get("/{id}/add", handlers.AddPage)

		// SSE routes
		r.Get("/list", handlers.ListSSE)
		r.Get("/{id}/sse", handlers.DetailSSE)
		r.Get("/{id}/edit/sse", handlers.EditSSE)

		// Mutations (Datastar posts signals, responds over SSE)
		r.Post("/add", handlers.AddSubmit)
		r.Post("/{id}/add", handlers.AddSubmit)
		r.Post("/{id}/edit", handlers.EditSubmit)
		r.Post("/{id}/delete", handlers.Delete)
	})

	return nil
}

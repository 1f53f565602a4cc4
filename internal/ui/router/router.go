// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/api"
	categoriesFeature "github.com/leapstack-labs/shopdash/internal/ui/features/categories"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	homeFeature "github.com/leapstack-labs/shopdash/internal/ui/features/home"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
	"github.com/leapstack-labs/shopdash/internal/ui/resources"
)

// Deps are the services shared by the feature handlers.
type Deps struct {
	Categories   api.CategoryService
	Translations common.Translations
	SessionStore sessions.Store
	// Notifier pings live views after a mutation.
	Notifier *notifier.Notifier
	// Reloads pings dev-mode pages that must reload entirely, e.g. after
	// translations changed. Nil disables the reload endpoints.
	Reloads *notifier.Notifier
	Logger  *slog.Logger
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	isDev := deps.Reloads != nil

	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router, deps.Reloads)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, deps.Categories, deps.Translations, deps.SessionStore, deps.Notifier, deps.Logger, isDev); err != nil {
		return err
	}

	if err := categoriesFeature.SetupRoutes(router, deps.Categories, deps.Translations, deps.SessionStore, deps.Notifier, deps.Logger, isDev); err != nil {
		return err
	}

	return nil
}

// setupReload serves /reload, a stream that reloads the page on each ping,
// and /hotreload, which external tooling calls to send one.
func setupReload(router chi.Router, reloads *notifier.Notifier) {
	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		pings := reloads.Subscribe()
		defer reloads.Unsubscribe(pings)

		for {
			select {
			case <-pings:
				_ = sse.ExecuteScript("window.location.reload()")
			case <-r.Context().Done():
				return
			}
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reloads.Broadcast(notifier.Change{Reason: notifier.Reload})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

package home

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/pagination"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/features/home/pages"
	hometypes "github.com/leapstack-labs/shopdash/internal/ui/features/home/types"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	categories   api.CategoryService
	translations common.Translations
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	categories api.CategoryService,
	translations common.Translations,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		categories:   categories,
		translations: translations,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
		isDev:        isDev,
	}
}

// HomePage renders the home page with full content.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	t := common.Translator(h.translations, r)
	shell := common.ShellData{
		Title:       t.Pgettext("Navigation", "Dashboard"),
		CurrentPath: "/",
		Flashes:     common.PopFlashes(h.sessionStore, w, r),
		T:           t,
		IsDev:       h.isDev,
	}

	stats := h.buildDashboardStats(r.Context())
	if err := pages.HomePage(shell, stats).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HomePageUpdates is the long-lived SSE endpoint for the dashboard page.
// It subscribes to updates and pushes changes when categories change.
// It does NOT send initial state - that's rendered by HomePage.
func (h *Handlers) HomePageUpdates(w http.ResponseWriter, r *http.Request) {
	t := common.Translator(h.translations, r)
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendDashboardView(ctx, sse, t); err != nil {
				_ = sse.ConsoleError(err)
				// Don't return - keep trying on next update
			}
		}
	}
}

// sendDashboardView builds and sends the dashboard content.
func (h *Handlers) sendDashboardView(ctx context.Context, sse *datastar.ServerSentEventGenerator, t i18n.Translator) error {
	return sse.PatchElementTempl(pages.HomeContent(t, h.buildDashboardStats(ctx)))
}

// buildDashboardStats counts the root categories. Only the total is needed,
// so a single-row page is requested.
func (h *Handlers) buildDashboardStats(ctx context.Context) hometypes.DashboardStats {
	one := 1
	conn, err := h.categories.RootCategories(ctx, pagination.Variables{First: &one})
	if err != nil {
		h.logger.Error("category query failed", "error", err)
		return hometypes.DashboardStats{Error: err.Error()}
	}
	return hometypes.DashboardStats{RootCategoryCount: conn.TotalCount}
}

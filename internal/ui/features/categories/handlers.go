package categories

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	commonComponents "github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
)

// Handlers provides HTTP handlers for the categories feature.
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

// shell builds the page shell for a request. It pops pending flashes, so it
// must run before anything is written to w.
func (h *Handlers) shell(w http.ResponseWriter, r *http.Request, t i18n.Translator, title string, crumbs []common.Crumb) common.ShellData {
	return common.ShellData{
		Title:       title,
		CurrentPath: r.URL.Path,
		Crumbs:      crumbs,
		Flashes:     common.PopFlashes(h.sessionStore, w, r),
		T:           t,
		IsDev:       h.isDev,
	}
}

// categoryID returns the {id} path parameter. Ids are base64 and may arrive
// percent-encoded.
func categoryID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

// queryFailed logs a failed query and replaces the element targetID with an
// error card. Failed queries are not retried.
func (h *Handlers) queryFailed(sse *datastar.ServerSentEventGenerator, t i18n.Translator, targetID string, err error) {
	h.logger.Error("category query failed", "error", err)
	showError(sse, t, targetID, err.Error())
}

func showError(sse *datastar.ServerSentEventGenerator, t i18n.Translator, targetID, message string) {
	if err := sse.PatchElementTempl(commonComponents.ErrorMessageCard(targetID, t, message)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// redirectWithFlash stores a flash, announces change to live views and
// navigates the browser to target. The session is saved before the SSE
// headers go out.
func (h *Handlers) redirectWithFlash(w http.ResponseWriter, r *http.Request, message, target string, change notifier.Change) {
	if err := common.AddFlash(h.sessionStore, w, r, message); err != nil {
		h.logger.Warn("failed to store flash message", "error", err)
	}
	h.notifier.Broadcast(change)

	sse := datastar.NewSSE(w, r)
	if err := sse.Redirect(target); err != nil {
		_ = sse.ConsoleError(err)
	}
}

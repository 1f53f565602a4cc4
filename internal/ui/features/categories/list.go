package categories

import (
	"context"
	"net/http"
	"net/url"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/pagination"
	"github.com/leapstack-labs/shopdash/internal/ui/features/categories/components"
	"github.com/leapstack-labs/shopdash/internal/ui/features/categories/pages"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// listSSEPath serves the root list stream.
const listSSEPath = common.CategoriesPath + "/list"

// ListPage renders the root category list shell.
func (h *Handlers) ListPage(w http.ResponseWriter, r *http.Request) {
	t := common.Translator(h.translations, r)
	shell := h.shell(w, r, t, t.Pgettext("Category list title", "Categories"), common.BuildBreadcrumbs(t, nil))
	initURL := common.WithQuery(listSSEPath, r.URL.Query())

	if err := pages.ListPage(shell, initURL).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListSSE is the long-lived SSE endpoint for the root category list.
// It sends the requested page and re-sends it whenever categories change.
func (h *Handlers) ListSSE(w http.ResponseWriter, r *http.Request) {
	t := common.Translator(h.translations, r)
	q := r.URL.Query()
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	if err := h.sendList(r.Context(), sse, t, "", q); err != nil {
		h.queryFailed(sse, t, components.ListID, err)
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendList(ctx, sse, t, "", q); err != nil {
				h.queryFailed(sse, t, components.ListID, err)
				return
			}
		}
	}
}

// sendList queries one page of categories under parentID (the root when
// empty) and patches the list card.
func (h *Handlers) sendList(ctx context.Context, sse *datastar.ServerSentEventGenerator, t i18n.Translator, parentID string, q url.Values) error {
	props, err := h.buildList(ctx, t, parentID, q)
	if err != nil {
		return err
	}
	return sse.PatchElementTempl(components.CategoryList(props))
}

// buildList runs the paginated query for the page described by q.
func (h *Handlers) buildList(ctx context.Context, t i18n.Translator, parentID string, q url.Values) (components.ListProps, error) {
	vars := pagination.ParseState(q).Variables()

	props := components.ListProps{
		AddLink: common.CategoryAddPath(parentID),
		T:       t,
	}

	var (
		conn *api.Connection
		err  error
	)
	if parentID == "" {
		props.Label = t.Pgettext("Category list title", "Categories")
		props.BasePath = common.CategoriesPath
		conn, err = h.categories.RootCategories(ctx, vars)
	} else {
		props.Label = t.Pgettext("Category list title", "Subcategories")
		props.BasePath = common.CategoryPath(parentID)
		conn, err = h.categories.CategoryChildren(ctx, parentID, vars)
	}
	if err != nil {
		return props, err
	}

	props.Connection = conn
	props.Links = pagination.Navigate(q, conn.Window())
	return props, nil
}

package categories

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/ui/features/categories/components"
	"github.com/leapstack-labs/shopdash/internal/ui/features/categories/pages"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	commonComponents "github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
)

// DetailPage renders the category detail shell with the description
// placeholders. Details and subcategories load over SSE.
func (h *Handlers) DetailPage(w http.ResponseWriter, r *http.Request) {
	id := categoryID(r)
	t := common.Translator(h.translations, r)
	shell := h.shell(w, r, t, t.Gettext("Category"), common.BuildBreadcrumbs(t, nil))

	details := components.DetailsProps{
		Title:       t.Gettext("Category"),
		BackLink:    common.CategoriesPath,
		EditLink:    common.CategoryEditPath(id),
		Description: common.Loading[string](),
		T:           t,
	}
	initURL := common.WithQuery(common.CategoryPath(id)+"/sse", r.URL.Query())

	if err := pages.DetailPage(shell, initURL, details).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DetailSSE is the long-lived SSE endpoint for a category page. It sends the
// details and the requested page of subcategories, then re-sends both
// whenever categories change.
func (h *Handlers) DetailSSE(w http.ResponseWriter, r *http.Request) {
	id := categoryID(r)
	t := common.Translator(h.translations, r)
	q := r.URL.Query()
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	if !h.sendDetail(ctx, sse, t, id, q) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case change := <-updates:
			if change.Removes(id) {
				showError(sse, t, components.DetailsID, t.Gettext("This category was deleted."))
				return
			}
			if !h.sendDetail(ctx, sse, t, id, q) {
				return
			}
		}
	}
}

// sendDetail patches the details card, breadcrumbs and subcategory list.
// It reports false once an error card has replaced the view.
func (h *Handlers) sendDetail(ctx context.Context, sse *datastar.ServerSentEventGenerator, t i18n.Translator, id string, q url.Values) bool {
	cat, err := h.categories.Category(ctx, id)
	if err != nil {
		h.queryFailed(sse, t, components.DetailsID, err)
		return false
	}

	details := components.DetailsProps{
		Title:       cat.Name,
		BackLink:    common.BackLink(cat),
		EditLink:    common.CategoryEditPath(cat.ID),
		RemoveURL:   common.CategoryDeletePath(cat.ID),
		Description: common.Loaded(cat.Description),
		T:           t,
	}
	if err := sse.PatchElementTempl(commonComponents.Breadcrumbs(common.BuildBreadcrumbs(t, cat))); err != nil {
		_ = sse.ConsoleError(err)
		return false
	}
	if err := sse.PatchElementTempl(components.CategoryDetails(details)); err != nil {
		_ = sse.ConsoleError(err)
		return false
	}

	if err := h.sendList(ctx, sse, t, cat.ID, q); err != nil {
		h.queryFailed(sse, t, components.ListID, err)
		return false
	}
	return true
}

// Delete removes a category and navigates to its parent, or to the root list
// for top-level categories.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := categoryID(r)
	t := common.Translator(h.translations, r)

	res, err := h.categories.DeleteCategory(r.Context(), id)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		h.queryFailed(sse, t, components.DetailsID, err)
		return
	}
	if !res.OK() {
		messages := make([]string, len(res.Errors))
		for i, e := range res.Errors {
			messages[i] = e.Message
		}
		h.logger.Warn("category delete rejected", "id", id, "errors", messages)
		sse := datastar.NewSSE(w, r)
		showError(sse, t, components.DetailsID, strings.Join(messages, " "))
		return
	}

	h.redirectWithFlash(w, r, t.Gettext("Category deleted"), common.BackLink(res.Category),
		notifier.Change{Reason: notifier.CategoryDeleted, CategoryID: id})
}

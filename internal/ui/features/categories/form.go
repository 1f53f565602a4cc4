package categories

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/ui/features/categories/components"
	"github.com/leapstack-labs/shopdash/internal/ui/features/categories/pages"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	commonComponents "github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
)

// EditPage renders the update form shell in its loading state.
func (h *Handlers) EditPage(w http.ResponseWriter, r *http.Request) {
	id := categoryID(r)
	t := common.Translator(h.translations, r)
	shell := h.shell(w, r, t, t.Gettext("Edit category"), common.BuildBreadcrumbs(t, nil))

	if err := pages.EditPage(shell, common.CategoryEditPath(id)+"/sse").Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// EditSSE loads the category and patches the form prefilled with it.
// A failed query leaves an error card in place of the form.
func (h *Handlers) EditSSE(w http.ResponseWriter, r *http.Request) {
	id := categoryID(r)
	t := common.Translator(h.translations, r)
	sse := datastar.NewSSE(w, r)

	cat, err := h.categories.Category(r.Context(), id)
	if err != nil {
		h.queryFailed(sse, t, components.FormID, err)
		return
	}

	if err := sse.PatchElementTempl(commonComponents.Breadcrumbs(common.BuildBreadcrumbs(t, cat))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	form := editForm(t, cat.ID, FormSignals{Name: cat.Name, Description: cat.Description}, nil)
	if err := sse.PatchElementTempl(components.CategoryForm(form)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// EditSubmit runs the update mutation with the submitted form signals.
// Success redirects to the category; validation errors re-render the form
// with the submitted values.
func (h *Handlers) EditSubmit(w http.ResponseWriter, r *http.Request) {
	id := categoryID(r)
	t := common.Translator(h.translations, r)

	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals FormSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		showError(sse, t, components.FormID, "Failed to read signals: "+err.Error())
		return
	}

	res, err := h.categories.UpdateCategory(r.Context(), id, signals.Input())
	if err != nil {
		sse := datastar.NewSSE(w, r)
		h.queryFailed(sse, t, components.FormID, err)
		return
	}
	if !res.OK() || res.Category == nil {
		sse := datastar.NewSSE(w, r)
		h.patchForm(sse, editForm(t, id, signals, payloadErrors(t, res)))
		return
	}

	h.redirectWithFlash(w, r, t.Gettext("Category updated"), common.CategoryPath(res.Category.ID),
		notifier.Change{Reason: notifier.CategoryUpdated, CategoryID: res.Category.ID})
}

// AddPage renders the empty create form for a root category, or for a
// child of {id} when the route carries one.
func (h *Handlers) AddPage(w http.ResponseWriter, r *http.Request) {
	parentID := categoryID(r)
	t := common.Translator(h.translations, r)
	shell := h.shell(w, r, t, t.Gettext("Add category"), common.BuildBreadcrumbs(t, nil))

	form := addForm(t, parentID, FormSignals{}, nil)
	if err := pages.AddPage(shell, form).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// AddSubmit runs the create mutation and redirects to the new category.
func (h *Handlers) AddSubmit(w http.ResponseWriter, r *http.Request) {
	parentID := categoryID(r)
	t := common.Translator(h.translations, r)

	var signals FormSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		showError(sse, t, components.FormID, "Failed to read signals: "+err.Error())
		return
	}

	res, err := h.categories.CreateCategory(r.Context(), parentID, signals.Input())
	if err != nil {
		sse := datastar.NewSSE(w, r)
		h.queryFailed(sse, t, components.FormID, err)
		return
	}
	if !res.OK() || res.Category == nil {
		sse := datastar.NewSSE(w, r)
		h.patchForm(sse, addForm(t, parentID, signals, payloadErrors(t, res)))
		return
	}

	h.redirectWithFlash(w, r, t.Gettext("Category created"), common.CategoryPath(res.Category.ID),
		notifier.Change{Reason: notifier.CategoryCreated, CategoryID: res.Category.ID})
}

// payloadErrors returns the validation errors of a rejected mutation. A
// payload with neither errors nor a category gets a form-level error.
func payloadErrors(t i18n.Translator, res *api.MutationResult) []api.FieldError {
	if len(res.Errors) > 0 {
		return res.Errors
	}
	return []api.FieldError{{Message: t.Gettext("The server did not return the saved category.")}}
}

func (h *Handlers) patchForm(sse *datastar.ServerSentEventGenerator, form components.FormProps) {
	if err := sse.PatchElementTempl(components.CategoryForm(form)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func editForm(t i18n.Translator, id string, values FormSignals, errs []api.FieldError) components.FormProps {
	return components.FormProps{
		Title:       t.Gettext("Edit category"),
		Action:      common.CategoryEditPath(id),
		CancelLink:  common.CategoryPath(id),
		Name:        values.Name,
		Description: values.Description,
		Errors:      errs,
		T:           t,
	}
}

func addForm(t i18n.Translator, parentID string, values FormSignals, errs []api.FieldError) components.FormProps {
	cancel := common.CategoriesPath
	if parentID != "" {
		cancel = common.CategoryPath(parentID)
	}
	return components.FormProps{
		Title:       t.Gettext("Add category"),
		Action:      common.CategoryAddPath(parentID),
		CancelLink:  cancel,
		Name:        values.Name,
		Description: values.Description,
		Errors:      errs,
		T:           t,
	}
}

package categories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/api/apitest"
	"github.com/leapstack-labs/shopdash/internal/pagination"
	"github.com/leapstack-labs/shopdash/internal/testutil"
	"github.com/leapstack-labs/shopdash/internal/ui/features"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestHandlers(t *testing.T, categories ...features.TestCategory) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t, categories...)

	handlers := NewHandlers(
		fixture.Client,
		fixture.Catalog,
		fixture.SessionStore,
		fixture.Notifier,
		testutil.NewTestLogger(t),
		false,
	)

	return handlers, fixture
}

func roots(n int) []features.TestCategory {
	out := make([]features.TestCategory, n)
	for i := range out {
		name := "Root " + common.Itoa(i+1)
		out[i] = features.TestCategory{Name: name, Description: "About " + name}
	}
	return out
}

// runSSE runs a streaming handler until it returns or timeout elapses.
func runSSE(handler http.HandlerFunc, req *http.Request, timeout time.Duration) *httptest.ResponseRecorder {
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()

	rec := httptest.NewRecorder()
	handler(rec, req.WithContext(ctx))
	return rec
}

// countClass counts elements whose class attribute contains class.
func countClass(t *testing.T, body, class string) int {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	count := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "class" && strings.Contains(" "+a.Val+" ", " "+class+" ") {
					count++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return count
}

// =============================================================================
// ListPage / ListSSE Tests
// =============================================================================

func TestListPage(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantBody []string
	}{
		{
			name:   "renders shell with loading list",
			target: "/categories",
			wantBody: []string{
				"<!doctype html>",
				"<title>Categories - Shopdash</title>",
				"data-init",
				"/categories/list",
				`id="category-list"`,
				`aria-busy="true"`,
			},
		},
		{
			name:   "carries page state to the stream",
			target: "/categories?rowsPerPage=10",
			wantBody: []string{
				"/categories/list?rowsPerPage=10",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			h.ListPage(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want, "response should contain %q", want)
			}
		})
	}
}

func TestListSSE_FirstPage(t *testing.T) {
	h, fixture := setupTestHandlers(t, roots(7)...)

	req := httptest.NewRequest(http.MethodGet, "/categories/list", nil)
	rec := runSSE(h.ListSSE, req, 200*time.Millisecond)

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "event:"), "should send exactly the initial page")
	for i := 1; i <= 5; i++ {
		assert.Contains(t, body, "Root "+common.Itoa(i))
	}
	assert.NotContains(t, body, "Root 6")
	assert.Contains(t, body, "1-5 of 7")
	assert.Contains(t, body, `rel="next"`)
	assert.NotContains(t, body, `rel="prev"`)
	assert.Contains(t, body, `href="`+common.CategoryPath(fixture.IDs["Root 1"])+`"`)

	call, ok := fixture.Backend.LastCall("RootCategories")
	require.True(t, ok)
	assert.EqualValues(t, 5, call.Variables["first"])
	assert.Nil(t, call.Variables["after"])
}

func TestListSSE_RowsPerPage(t *testing.T) {
	tests := []struct {
		name      string
		rows      string
		wantFirst int
	}{
		{name: "explicit size", rows: "10", wantFirst: 10},
		{name: "leading digits", rows: "20abc", wantFirst: 20},
		{name: "not a number", rows: "abc", wantFirst: pagination.DefaultRowsPerPage},
		{name: "zero", rows: "0", wantFirst: pagination.DefaultRowsPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixture := setupTestHandlers(t, roots(3)...)

			req := httptest.NewRequest(http.MethodGet, "/categories/list?rowsPerPage="+url.QueryEscape(tt.rows), nil)
			runSSE(h.ListSSE, req, 100*time.Millisecond)

			call, ok := fixture.Backend.LastCall("RootCategories")
			require.True(t, ok)
			assert.EqualValues(t, tt.wantFirst, call.Variables["first"])
		})
	}
}

func TestListSSE_NextThenPrev(t *testing.T) {
	h, fixture := setupTestHandlers(t, roots(7)...)
	ctx := context.Background()

	first, err := fixture.Client.RootCategories(ctx, pagination.State{RowsPerPage: 5}.Variables())
	require.NoError(t, err)
	w := first.Window()

	// Forward to page 1.
	next := pagination.ChangePage(url.Values{}, 1, w.FirstCursor, w.LastCursor)
	req := httptest.NewRequest(http.MethodGet, "/categories/list?"+next.Encode(), nil)
	body := runSSE(h.ListSSE, req, 100*time.Millisecond).Body.String()

	assert.Contains(t, body, "Root 6")
	assert.Contains(t, body, "Root 7")
	assert.NotContains(t, body, "Root 5<")
	assert.Contains(t, body, "6-7 of 7")
	assert.Contains(t, body, `rel="prev"`)
	assert.NotContains(t, body, `rel="next"`)

	call, _ := fixture.Backend.LastCall("RootCategories")
	assert.Equal(t, w.LastCursor, call.Variables["after"])

	// And back to page 0 using the cursors of page 1.
	second, err := fixture.Client.RootCategories(ctx, pagination.ParseState(next).Variables())
	require.NoError(t, err)
	w2 := second.Window()
	prev := pagination.ChangePage(next, 0, w2.FirstCursor, w2.LastCursor)
	assert.Equal(t, "prev", prev.Get(pagination.KeyAction))

	req = httptest.NewRequest(http.MethodGet, "/categories/list?"+prev.Encode(), nil)
	body = runSSE(h.ListSSE, req, 100*time.Millisecond).Body.String()

	assert.Contains(t, body, "Root 1")
	assert.Contains(t, body, "Root 5")
	assert.NotContains(t, body, "Root 6")

	call, _ = fixture.Backend.LastCall("RootCategories")
	assert.EqualValues(t, 5, call.Variables["last"])
	assert.Equal(t, w2.FirstCursor, call.Variables["before"])
	assert.Nil(t, call.Variables["first"])
}

func TestListSSE_Empty(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/categories/list", nil)
	body := runSSE(h.ListSSE, req, 100*time.Millisecond).Body.String()

	assert.Contains(t, body, "No categories found.")
	assert.NotContains(t, body, "<table")
	assert.NotContains(t, body, `class="pager"`)
	assert.Contains(t, body, `href="/categories/add"`)
}

func TestListSSE_QueryError(t *testing.T) {
	h, fixture := setupTestHandlers(t, roots(2)...)
	fixture.Backend.FailWith("permission denied")

	req := httptest.NewRequest(http.MethodGet, "/categories/list", nil)

	start := time.Now()
	body := runSSE(h.ListSSE, req, 2*time.Second).Body.String()

	assert.Less(t, time.Since(start), time.Second, "stream should end after an error")
	assert.Contains(t, body, "Something went wrong")
	assert.Contains(t, body, "permission denied")
	assert.Contains(t, body, `id="category-list"`)
	assert.Len(t, fixture.Backend.Calls(), 1, "failed queries are not retried")
}

func TestListSSE_SendsUpdateOnBroadcast(t *testing.T) {
	h, fixture := setupTestHandlers(t, roots(1)...)

	req := httptest.NewRequest(http.MethodGet, "/categories/list", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ListSSE(rec, req)
		close(done)
	}()

	// Wait a bit then change the data and broadcast
	time.Sleep(50 * time.Millisecond)
	lateID := fixture.Backend.Add("", "Late arrival", "")
	fixture.Notifier.Broadcast(notifier.Change{Reason: notifier.CategoryCreated, CategoryID: lateID})

	<-done

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 2, "initial page plus one update")
	assert.Contains(t, body, "Late arrival")
}

// =============================================================================
// DetailPage / DetailSSE Tests
// =============================================================================

func TestDetailPage_ShowsSkeletons(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Apparel"})
	id := fixture.IDs["Apparel"]

	req := httptest.NewRequest(http.MethodGet, common.CategoryPath(id), nil)
	req = features.RequestWithPathParam(req, "id", url.PathEscape(id))
	rec := httptest.NewRecorder()

	h.DetailPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 3, countClass(t, body, "skeleton"), "loading description shows three skeleton lines")
	for _, width := range []string{"80%", "75%", "60%"} {
		assert.Contains(t, body, "width: "+width)
	}
	assert.Contains(t, body, `href="`+common.CategoryEditPath(id)+`"`)
	assert.Contains(t, body, common.CategoryPath(id)+"/sse")
	assert.NotContains(t, body, "/delete", "delete is offered once the category is loaded")
}

func TestDetailSSE(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{
		Name:        "Apparel",
		Description: "Clothes and more",
		Children: []features.TestCategory{
			{Name: "Shirts", Description: "Cotton"},
			{Name: "Hats"},
		},
	})
	id := fixture.IDs["Apparel"]

	req := httptest.NewRequest(http.MethodGet, common.CategoryPath(id)+"/sse", nil)
	req = features.RequestWithPathParam(req, "id", id)
	body := runSSE(h.DetailSSE, req, 150*time.Millisecond).Body.String()

	assert.Contains(t, body, "Apparel")
	assert.Contains(t, body, "Clothes and more")
	assert.Equal(t, 0, strings.Count(body, `class="skeleton"`))
	assert.Contains(t, body, common.CategoryDeletePath(id))
	assert.Contains(t, body, `id="breadcrumbs"`)

	assert.Contains(t, body, "Subcategories")
	assert.Contains(t, body, `href="`+common.CategoryPath(fixture.IDs["Shirts"])+`"`)
	assert.Contains(t, body, "Hats")
	assert.Contains(t, body, "1-2 of 2")
	assert.Contains(t, body, `href="`+common.CategoryAddPath(id)+`"`)
}

func TestDetailSSE_EmptyDescription(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Bare"})
	id := fixture.IDs["Bare"]

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id)
	body := runSSE(h.DetailSSE, req, 100*time.Millisecond).Body.String()

	assert.Contains(t, body, "Bare")
	assert.NotContains(t, body, `class="skeleton"`, "a loaded empty description is not a placeholder")
	assert.Contains(t, body, "No categories found.")
}

func TestDetailSSE_CategoryDeletedElsewhere(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Apparel"}, features.TestCategory{Name: "Toys"})
	id := fixture.IDs["Apparel"]

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id)
	ctx, cancel := context.WithTimeout(req.Context(), time.Second)
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.DetailSSE(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return fixture.Notifier.Listeners() == 1 }, time.Second, 5*time.Millisecond)
	fixture.Notifier.Broadcast(notifier.Change{Reason: notifier.CategoryDeleted, CategoryID: id})

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("stream should end once its category is deleted")
	}

	body := rec.Body.String()
	assert.Contains(t, body, "This category was deleted.")
	assert.NotContains(t, body, "category not found", "no query runs for a deleted category")
}

func TestDetailSSE_NotFound(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "missing")
	body := runSSE(h.DetailSSE, req, time.Second).Body.String()

	assert.Contains(t, body, "Something went wrong")
	assert.Contains(t, body, "category not found")
	assert.Contains(t, body, `id="category-details"`)
}

// =============================================================================
// Edit Tests
// =============================================================================

func TestEditPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/categories/abc/edit", nil), "id", "abc")
	rec := httptest.NewRecorder()

	h.EditPage(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Edit category - Shopdash</title>")
	assert.Contains(t, body, `id="category-form"`)
	assert.Contains(t, body, `aria-busy="true"`)
	assert.Contains(t, body, "/categories/abc/edit/sse")
}

func TestEditSSE_PrefillsForm(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Shirts", Description: "Cotton shirts"})
	id := fixture.IDs["Shirts"]

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id)
	body := runSSE(h.EditSSE, req, time.Second).Body.String()

	assert.Contains(t, body, `value="Shirts"`)
	assert.Contains(t, body, "Cotton shirts</textarea>")
	assert.Contains(t, body, common.CategoryEditPath(id))
}

func TestEditSSE_QueryError(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Shirts"})
	fixture.Backend.FailWith("backend down")

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", fixture.IDs["Shirts"])
	body := runSSE(h.EditSSE, req, time.Second).Body.String()

	assert.Contains(t, body, "backend down")
	assert.Contains(t, body, `id="category-form"`)
	assert.NotContains(t, body, "<form")
}

func TestEditSubmit(t *testing.T) {
	tests := []struct {
		name         string
		signals      FormSignals
		fail         string
		wantBody     []string
		wantNotBody  []string
		wantName     string
		wantRedirect bool
	}{
		{
			name:         "success redirects to the category",
			signals:      FormSignals{Name: "Tees", Description: "Short sleeves"},
			wantName:     "Tees",
			wantRedirect: true,
		},
		{
			name:        "validation errors re-render the form",
			signals:     FormSignals{Name: "", Description: "kept"},
			wantBody:    []string{apitest.BlankNameMessage, "form-field__error", "kept</textarea>"},
			wantNotBody: []string{"window.location"},
			wantName:    "Shirts",
		},
		{
			name:        "transport errors show the error card",
			signals:     FormSignals{Name: "Tees"},
			fail:        "backend down",
			wantBody:    []string{"Something went wrong", "backend down"},
			wantNotBody: []string{"window.location", "<form"},
			wantName:    "Shirts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Shirts"})
			id := fixture.IDs["Shirts"]
			if tt.fail != "" {
				fixture.Backend.FailWith(tt.fail)
			}

			req := features.SignalsRequest(t, common.CategoryEditPath(id), tt.signals)
			req = features.RequestWithPathParam(req, "id", id)
			rec := httptest.NewRecorder()

			h.EditSubmit(rec, req)

			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
			for _, unwanted := range tt.wantNotBody {
				assert.NotContains(t, body, unwanted)
			}
			if tt.wantRedirect {
				assert.Contains(t, body, "window.location")
				assert.Contains(t, body, common.CategoryPath(id))
			}

			fixture.Backend.FailWith("")
			name, _, ok := fixture.Backend.Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestEditSubmit_FlashShownAfterRedirect(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Shirts"})
	id := fixture.IDs["Shirts"]

	submit := features.RequestWithPathParam(
		features.SignalsRequest(t, common.CategoryEditPath(id), FormSignals{Name: "Tees"}), "id", id)
	submitRec := httptest.NewRecorder()
	h.EditSubmit(submitRec, submit)
	require.NotEmpty(t, submitRec.Result().Cookies(), "flash is stored in the session cookie")

	page := httptest.NewRequest(http.MethodGet, common.CategoryPath(id), nil)
	page = features.RequestWithPathParam(features.WithCookies(page, submitRec), "id", id)
	pageRec := httptest.NewRecorder()
	h.DetailPage(pageRec, page)

	assert.Contains(t, pageRec.Body.String(), "Category updated")

	// Flashes are one-shot.
	again := httptest.NewRequest(http.MethodGet, common.CategoryPath(id), nil)
	again = features.RequestWithPathParam(features.WithCookies(again, pageRec), "id", id)
	againRec := httptest.NewRecorder()
	h.DetailPage(againRec, again)

	assert.NotContains(t, againRec.Body.String(), "Category updated")
}

func TestEditSubmit_BroadcastsChange(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Shirts"})
	id := fixture.IDs["Shirts"]

	updates := fixture.Notifier.Subscribe()
	defer fixture.Notifier.Unsubscribe(updates)

	req := features.RequestWithPathParam(
		features.SignalsRequest(t, common.CategoryEditPath(id), FormSignals{Name: "Tees"}), "id", id)
	h.EditSubmit(httptest.NewRecorder(), req)

	select {
	case change := <-updates:
		assert.Equal(t, notifier.Change{Reason: notifier.CategoryUpdated, CategoryID: id}, change)
	case <-time.After(100 * time.Millisecond):
		t.Error("successful update should notify live views")
	}
}

// =============================================================================
// Add / Delete Tests
// =============================================================================

func TestAddPage(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Apparel"})
	parent := fixture.IDs["Apparel"]

	tests := []struct {
		name       string
		parentID   string
		wantAction string
		wantCancel string
	}{
		{name: "root", wantAction: "/categories/add", wantCancel: common.CategoriesPath},
		{name: "child", parentID: parent, wantAction: common.CategoryAddPath(parent), wantCancel: common.CategoryPath(parent)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.wantAction, nil)
			if tt.parentID != "" {
				req = features.RequestWithPathParam(req, "id", tt.parentID)
			}
			rec := httptest.NewRecorder()

			h.AddPage(rec, req)

			body := rec.Body.String()
			assert.Contains(t, body, "<title>Add category - Shopdash</title>")
			assert.Contains(t, body, "<form")
			assert.Contains(t, body, tt.wantAction)
			assert.Contains(t, body, `href="`+tt.wantCancel+`"`)
		})
	}
}

func TestAddSubmit(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{Name: "Apparel"})
	parent := fixture.IDs["Apparel"]

	req := features.SignalsRequest(t, common.CategoryAddPath(parent), FormSignals{Name: "Hats", Description: "For heads"})
	req = features.RequestWithPathParam(req, "id", parent)
	rec := httptest.NewRecorder()

	h.AddSubmit(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "window.location")

	conn, err := fixture.Client.CategoryChildren(context.Background(), parent, pagination.State{RowsPerPage: 5}.Variables())
	require.NoError(t, err)
	require.Len(t, conn.Edges, 1)
	assert.Equal(t, "Hats", conn.Edges[0].Node.Name)
	assert.Contains(t, body, common.CategoryPath(conn.Edges[0].Node.ID))
}

func TestAddSubmit_ValidationError(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.SignalsRequest(t, "/categories/add", FormSignals{Name: " "})
	rec := httptest.NewRecorder()

	h.AddSubmit(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, apitest.BlankNameMessage)
	assert.NotContains(t, body, "window.location")
	assert.Empty(t, rec.Result().Cookies())

	_, ok := fixture.Backend.LastCall("CategoryCreate")
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	h, fixture := setupTestHandlers(t, features.TestCategory{
		Name:     "Apparel",
		Children: []features.TestCategory{{Name: "Hats"}},
	})
	parent, child := fixture.IDs["Apparel"], fixture.IDs["Hats"]

	tests := []struct {
		name       string
		id         string
		wantTarget string
	}{
		{name: "child returns to parent", id: child, wantTarget: common.CategoryPath(parent)},
		{name: "root returns to list", id: parent, wantTarget: common.CategoriesPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := features.RequestWithPathParam(
				httptest.NewRequest(http.MethodPost, common.CategoryDeletePath(tt.id), nil), "id", tt.id)
			rec := httptest.NewRecorder()

			h.Delete(rec, req)

			body := rec.Body.String()
			assert.Contains(t, body, "window.location")
			assert.Contains(t, body, tt.wantTarget)

			_, _, ok := fixture.Backend.Get(tt.id)
			assert.False(t, ok)
		})
	}
}

func TestDelete_UnknownCategory(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodPost, "/", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "Something went wrong")
	assert.NotContains(t, body, "window.location")
}

// =============================================================================
// Translation Tests
// =============================================================================

func TestListSSE_Translated(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/categories/list", nil)
	req.Header.Set("Accept-Language", "pl-PL,pl;q=0.9,en;q=0.5")
	body := runSSE(h.ListSSE, req, 100*time.Millisecond).Body.String()

	assert.Contains(t, body, "Nie znaleziono kategorii.")
	assert.NotContains(t, body, "No categories found.")
}

// =============================================================================
// Mutation payload Tests
// =============================================================================

// payloadService returns fixed mutation payloads.
type payloadService struct {
	api.CategoryService
	result *api.MutationResult
}

func (s payloadService) UpdateCategory(context.Context, string, api.CategoryInput) (*api.MutationResult, error) {
	return s.result, nil
}

func (s payloadService) CreateCategory(context.Context, string, api.CategoryInput) (*api.MutationResult, error) {
	return s.result, nil
}

func setupPayloadHandlers(t *testing.T, result *api.MutationResult) *Handlers {
	t.Helper()
	fixture := features.SetupTestFixture(t)
	return NewHandlers(
		payloadService{result: result},
		fixture.Catalog,
		fixture.SessionStore,
		fixture.Notifier,
		testutil.NewTestLogger(t),
		false,
	)
}

func TestEditSubmit_RedirectsToReturnedCategory(t *testing.T) {
	returned := "Q2F0ZWdvcnk6OTk="
	h := setupPayloadHandlers(t, &api.MutationResult{Category: &api.Category{ID: returned, Name: "Tees"}})

	req := features.RequestWithPathParam(
		features.SignalsRequest(t, common.CategoryEditPath("req-id"), FormSignals{Name: "Tees"}), "id", "req-id")
	rec := httptest.NewRecorder()
	h.EditSubmit(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, common.CategoryPath(returned))
	assert.NotContains(t, body, common.CategoryPath("req-id")+`"`)
}

func TestSubmit_NullCategoryKeepsForm(t *testing.T) {
	h := setupPayloadHandlers(t, &api.MutationResult{})

	tests := []struct {
		name    string
		handler http.HandlerFunc
		path    string
	}{
		{name: "edit", handler: h.EditSubmit, path: common.CategoryEditPath("req-id")},
		{name: "add", handler: h.AddSubmit, path: common.CategoryAddPath("req-id")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := features.RequestWithPathParam(
				features.SignalsRequest(t, tt.path, FormSignals{Name: "Tees"}), "id", "req-id")
			rec := httptest.NewRecorder()
			tt.handler(rec, req)

			body := rec.Body.String()
			assert.NotContains(t, body, "window.location")
			assert.Contains(t, body, "<form")
			assert.Contains(t, body, "The server did not return the saved category.")
			assert.Empty(t, rec.Result().Cookies(), "no flash without a saved category")
		})
	}
}

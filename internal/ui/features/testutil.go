// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/api/apitest"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/testutil"
	"github.com/leapstack-labs/shopdash/internal/ui/notifier"
)

// TestCategory is a helper to create test categories with minimal boilerplate.
// Children are added under the category in order.
type TestCategory struct {
	Name        string
	Description string
	Children    []TestCategory
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Backend      *apitest.Backend
	Client       *api.Client
	Catalog      *i18n.Catalog
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore

	// IDs maps category names to the ids the backend assigned.
	IDs map[string]string
}

// SetupTestFixture starts a fake GraphQL backend holding the provided
// categories and returns a client and the other handler dependencies.
func SetupTestFixture(t *testing.T, categories ...TestCategory) *TestFixture {
	t.Helper()

	backend := apitest.New()
	fixture := &TestFixture{
		Backend: backend,
		Client: api.New(api.Config{
			URL:     backend.Start(t),
			Timeout: 2 * time.Second,
			Logger:  testutil.NewTestLogger(t),
		}),
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		IDs:          make(map[string]string),
	}

	catalog, err := i18n.NewCatalog(language.English)
	require.NoError(t, err)
	fixture.Catalog = catalog

	fixture.add("", categories)
	return fixture
}

func (f *TestFixture) add(parentID string, categories []TestCategory) {
	for _, c := range categories {
		id := f.Backend.Add(parentID, c.Name, c.Description)
		f.IDs[c.Name] = id
		f.add(id, c.Children)
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SignalsRequest builds a Datastar POST carrying signals as a JSON body.
func SignalsRequest(t *testing.T, target string, signals any) *http.Request {
	t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return req
}

// WithCookies copies the cookies set on rec onto req, the way a browser
// would carry a session across a redirect.
func WithCookies(req *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/mocks"
	fakes "github.com/ragportal/portal-ui/internal/mocks/auth"
	"github.com/ragportal/portal-ui/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testToken     = "tok-1"
	testCSRF      = "test-csrf-token"
	testBrowserID = "5b0c3c57-7d2f-4b8e-9d39-0c4a4f9e6f11"
	testUploadMax = 1 << 20
)

//nolint:gochecknoglobals // shared fixtures
var (
	adminIdentity = domainauth.Identity{
		ID: 1, TenantID: 7, Email: "admin@acme.test", Role: domainauth.RoleAdmin, TenantName: "Acme",
	}
	memberIdentity = domainauth.Identity{
		ID: 2, TenantID: 7, Email: "member@acme.test", Role: domainauth.RoleUser, TenantName: "Acme",
	}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// RequireTemplateRenderer creates a TemplateRenderer for tests, failing when
// the templates cannot be parsed.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     discardLogger(),
	})
	require.NoError(t, err)
	return tr
}

// staticProvider hands every browser the same session scope.
type staticProvider struct {
	bs  *service.BrowserSession
	err error
	ids []string
}

func (p *staticProvider) Acquire(browserID string) (*service.BrowserSession, error) {
	p.ids = append(p.ids, browserID)
	if p.err != nil {
		return nil, p.err
	}
	return p.bs, nil
}

// testEnv is a router wired to a real session store over in-memory fakes and
// a mocked backend for the feature screens.
type testEnv struct {
	API      *mocks.MockPortalAPI
	Auth     *fakes.FakeAuthAPI
	Slot     *fakes.MemoryTokenStorage
	Session  *service.SessionService
	Provider *staticProvider
	Handler  http.Handler
}

// newTestEnv builds a router whose browser is signed in as who (nil for anonymous).
func newTestEnv(t *testing.T, who *domainauth.Identity) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	token := ""
	if who != nil {
		token = testToken
	}
	slot := fakes.NewMemoryTokenStorage(token)
	auth := fakes.NewFakeAuthAPI(slot)
	if who != nil {
		auth.Identities[testToken] = *who
	}

	session := service.NewSessionService(service.SessionServiceOptions{
		API:    auth,
		Tokens: slot,
		Config: service.SessionServiceConfig{Logger: discardLogger()},
	})
	api := mocks.NewMockPortalAPI(ctrl)
	provider := &staticProvider{bs: &service.BrowserSession{ID: testBrowserID, Session: session, API: api}}

	handler, err := NewRouter(RouterServices{
		Sessions:       provider,
		UploadMaxBytes: testUploadMax,
		TemplateFS:     os.DirFS(TemplatePathFromTest),
		Logger:         discardLogger(),
	})
	require.NoError(t, err)

	return &testEnv{
		API:      api,
		Auth:     auth,
		Slot:     slot,
		Session:  session,
		Provider: provider,
		Handler:  handler,
	}
}

type reqOpt func(*http.Request)

// asHTMX marks the request as htmx-initiated, optionally aimed at target.
func asHTMX(target string) reqOpt {
	return func(r *http.Request) {
		r.Header.Set("Hx-Request", "true")
		if target != "" {
			r.Header.Set("Hx-Target", target)
		}
	}
}

func withAccept(accept string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Accept", accept) }
}

func withoutCSRFHeader() reqOpt {
	return func(r *http.Request) { r.Header.Del(DefaultCSRFHeaderName) }
}

// serve sends r as a browser holding the session and CSRF cookies.
func (e *testEnv) serve(r *http.Request, opts ...reqOpt) *httptest.ResponseRecorder {
	r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: testBrowserID})
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
	r.Header.Set("Accept", "text/html")
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		r.Header.Set(DefaultCSRFHeaderName, testCSRF)
	}
	for _, opt := range opts {
		opt(r)
	}
	rec := httptest.NewRecorder()
	e.Handler.ServeHTTP(rec, r)
	return rec
}

func (e *testEnv) get(path string, opts ...reqOpt) *httptest.ResponseRecorder {
	return e.serve(httptest.NewRequest(http.MethodGet, path, nil), opts...)
}

func (e *testEnv) post(path string, form url.Values, opts ...reqOpt) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.serve(r, opts...)
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

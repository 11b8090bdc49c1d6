package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ragportal/portal-ui/config"
	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	fakes "github.com/ragportal/portal-ui/internal/mocks/auth"
	"github.com/ragportal/portal-ui/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend knows one token and rejects every document listing.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":3,"tenant_id":9,"email":"a@b.test","role":"admin","tenant_name":"Acme"}`)
	})
	mux.HandleFunc("GET /documents", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Token expired"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string, policy config.UnauthorizedPolicy) *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.Backend.BaseURL = baseURL
	cfg.Auth.UnauthorizedPolicy = policy
	cfg.Sanitize()
	return cfg
}

func TestSessionFactory_UnauthorizedPolicy(t *testing.T) {
	srv := fakeBackend(t)

	tests := []struct {
		name      string
		policy    config.UnauthorizedPolicy
		wantState domainauth.State
		wantToken string
	}{
		{"passthrough keeps the session", config.UnauthorizedPassthrough, domainauth.StateAuthenticated, "tok-1"},
		{"logout ends the session", config.UnauthorizedLogout, domainauth.StateAnonymous, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := fakes.NewMemoryTokenStorage("tok-1")
			factory := NewSessionFactory(testConfig(srv.URL, tt.policy),
				func(string) ports.TokenStorage { return slot }, nil, discardLogger())

			bs, err := factory("browser-1")
			require.NoError(t, err)
			assert.Equal(t, "browser-1", bs.ID)

			ctx := context.Background()
			bs.Session.Initialize(ctx)
			require.Equal(t, domainauth.StateAuthenticated, bs.Session.State())

			_, err = bs.API.ListDocuments(ctx, 1, 10)
			require.Error(t, err)

			assert.Equal(t, tt.wantState, bs.Session.State())
			assert.Equal(t, tt.wantToken, slot.Peek())
		})
	}
}

func TestSessionFactory_SlotPerBrowser(t *testing.T) {
	srv := fakeBackend(t)
	slots := map[string]*fakes.MemoryTokenStorage{}
	factory := NewSessionFactory(testConfig(srv.URL, config.UnauthorizedPassthrough),
		func(id string) ports.TokenStorage {
			slots[id] = fakes.NewMemoryTokenStorage("")
			return slots[id]
		}, nil, discardLogger())

	a, err := factory("a")
	require.NoError(t, err)
	b, err := factory("b")
	require.NoError(t, err)

	assert.NotSame(t, a.Session, b.Session)
	assert.Len(t, slots, 2)
}

func TestSessionFactory_BadBaseURL(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:8000", config.UnauthorizedPassthrough)
	cfg.Backend.BaseURL = "not a url"
	factory := NewSessionFactory(cfg, func(string) ports.TokenStorage { return fakes.NewMemoryTokenStorage("") },
		nil, discardLogger())

	_, err := factory("a")
	assert.Error(t, err)
}

func TestBuildSessionRegistry_RequiresDeps(t *testing.T) {
	_, err := BuildSessionRegistry(SessionDeps{})
	assert.Error(t, err)

	_, err = BuildSessionRegistry(SessionDeps{Config: &config.AppConfig{}})
	assert.Error(t, err)
}

func TestSealSlots(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:8000", config.UnauthorizedPassthrough)
	inner := fakes.NewMemoryTokenStorage("")
	plain := func(string) ports.TokenStorage { return inner }

	same, err := SealSlots(cfg, plain)
	require.NoError(t, err)
	require.NoError(t, same("a").Save(context.Background(), "tok-1"))
	assert.Equal(t, "tok-1", inner.Peek())

	cfg.Session.TokenKey = "correct horse battery staple"
	sealed, err := SealSlots(cfg, plain)
	require.NoError(t, err)
	slot := sealed("a")
	require.NoError(t, slot.Save(context.Background(), "tok-2"))
	assert.NotEqual(t, "tok-2", inner.Peek())

	token, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}

package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppRoot_RedirectsToChat(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)

	for _, path := range []string{"/app", "/app/"} {
		rec := env.get(path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, HomePath, rec.Header().Get("Location"), path)
	}
}

func TestNotFound_BrowserLandsOnLogin(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)

	for _, path := range []string{"/", "/nope", "/app/unknown/screen"} {
		rec := env.get(path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, LoginPath, rec.Header().Get("Location"), path)
	}
}

func TestNotFound_AuthenticatedEndsUpInChat(t *testing.T) {
	env := newTestEnv(t, &memberIdentity)

	rec := env.get("/does-not-exist")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = env.get(rec.Header().Get("Location"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, HomePath, rec.Header().Get("Location"))
}

func TestNotFound_HTMXUsesHXRedirect(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get("/nope", asHTMX("main"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Hx-Redirect"))
}

func TestNotFound_APIClientGetsJSON(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get("/api/things", withAccept("application/json"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"])
}

func TestNotFound_StaticStaysPlain404(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get("/static/missing.css")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

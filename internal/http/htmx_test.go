package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMX_RequestDetection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	assert.False(t, IsHTMX(r))
	assert.False(t, WantsPartial(r))

	r.Header.Set("Hx-Request", "true")
	r.Header.Set("Hx-Target", "documents-table")
	assert.True(t, IsHTMX(r))
	assert.True(t, WantsPartial(r))
	assert.Equal(t, "documents-table", HXTarget(r))
}

func TestHTMX_HistoryRestoreWantsFullPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Hx-Request", "true")
	r.Header.Set("Hx-History-Restore-Request", "true")
	assert.False(t, WantsPartial(r))
}

func decodeTrigger(t *testing.T, h http.Header) map[string]any {
	t.Helper()
	var events map[string]any
	require.NoError(t, json.Unmarshal([]byte(h.Get("Hx-Trigger")), &events))
	return events
}

func TestSetHXTrigger_MergesEvents(t *testing.T) {
	rec := httptest.NewRecorder()
	SetHXTrigger(rec, EventDocumentsChanged, nil)
	SetHXTrigger(rec, "nav:activate", map[string]string{"path": "/app/chat"})

	events := decodeTrigger(t, rec.Header())
	assert.Equal(t, true, events[EventDocumentsChanged])
	assert.Equal(t, map[string]any{"path": "/app/chat"}, events["nav:activate"])
}

func TestSetHXTrigger_ReplacesMalformedHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Hx-Trigger", "not-json")
	SetHXTrigger(rec, "refresh", nil)

	assert.Equal(t, map[string]any{"refresh": true}, decodeTrigger(t, rec.Header()))
}

func TestHTMXResponse_Redirect(t *testing.T) {
	rec := httptest.NewRecorder()
	HTMX(rec).Redirect("/login")

	assert.Equal(t, "/login", rec.Header().Get("Hx-Redirect"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHTMXResponse_ToastAndEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	HTMX(rec).Trigger(EventUsersChanged, nil).Toast("User created", ToastSuccess).NoContent()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	events := decodeTrigger(t, rec.Header())
	assert.Equal(t, true, events[EventUsersChanged])
	assert.Equal(t, map[string]any{"message": "User created", "type": "success"}, events["showToast"])
}

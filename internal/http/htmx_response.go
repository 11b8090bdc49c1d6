package httpx

import (
	"net/http"
)

// HTMXResponse provides a fluent API for building HTMX responses.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX creates a new HTMXResponse for fluent response building.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect instructs htmx to redirect the browser to the given URL.
// It sets the HX-Redirect header and returns a 204 No Content status.
// The handler should return immediately after calling this method.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger adds a client-side event to the response. This method is chainable.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}

// Toast adds a showToast event that app.js renders as an auto-hiding notice.
// This method is chainable.
func (h *HTMXResponse) Toast(message string, kind ToastKind) *HTMXResponse {
	return h.Trigger("showToast", map[string]any{
		"message": message,
		"type":    string(kind),
	})
}

// NoContent ends the response without a body, leaving the page as it is.
func (h *HTMXResponse) NoContent() {
	h.w.WriteHeader(http.StatusNoContent)
}

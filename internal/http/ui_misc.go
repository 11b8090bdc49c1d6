package httpx

import (
	"errors"
	"net/http"
	"strings"
)

// AppRoot sends the bare app path to the default screen.
// GET /app.
func (h *UIHandlers) AppRoot(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, HomePath)
}

// NotFound handles unmatched routes. Browsers land on the sign-in page, which
// forwards authenticated visitors on to chat; static and API callers get a 404.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/static/") {
		http.NotFound(w, r)
		return
	}
	if IsBrowserRequest(r) {
		redirect(w, r, LoginPath)
		return
	}
	h.renderAPINotFound(w, r)
}

// renderAPINotFound renders a JSON 404 response.
func (h *UIHandlers) renderAPINotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("not found"),
	})
}

package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ragportal/portal-ui/internal/http/ui/viewmodel"
	"github.com/ragportal/portal-ui/internal/ports"
)

const errMsgLoadFailed = "An unexpected error occurred. Please try again."

// ToastKind selects the styling of a toast notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// UIHandlers serves browser-facing routes. Backend calls go through the
// request's browser session, so handlers hold no per-user state.
type UIHandlers struct {
	T              *TemplateRenderer
	UploadMaxBytes int64
	IsDev          bool // Development mode flag for enhanced error reporting
	Logger         *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// api returns the backend client bound to the request's session.
func api(r *http.Request) ports.PortalAPI {
	return MustSession(r.Context()).API
}

// pageOpts represents pagination options for list views.
type pageOpts struct {
	Page      int
	PageSize  int
	FirstPage int // 1 for 1-based lists, 0 for 0-based lists
}

// getPageParams parses pagination params from URL query with sane defaults.
func getPageParams(q url.Values, firstPage int) pageOpts {
	p := pageOpts{Page: firstPage, PageSize: DefaultPageSize, FirstPage: firstPage}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= firstPage {
			p.Page = n
		}
	}
	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxPageSize {
			p.PageSize = n
		}
	}
	return p
}

// offset returns the number of items before the current page.
func (p pageOpts) offset() int {
	return (p.Page - p.FirstPage) * p.PageSize
}

// buildPageURL returns a URL with page and page_size set, preserving other query params.
// basePath should be the path without query string (e.g., "/app/documents").
func buildPageURL(basePath string, q url.Values, p pageOpts) string {
	qq := make(url.Values, len(q))
	for k, v := range q {
		// drop transient/htmx params and empty keys
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") {
			continue
		}
		tmp := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				tmp = append(tmp, s)
			}
		}
		if len(tmp) > 0 {
			qq[k] = tmp
		}
	}
	qq.Set("page", strconv.Itoa(p.Page))
	qq.Set("page_size", strconv.Itoa(p.PageSize))
	return basePath + "?" + qq.Encode()
}

// buildPagination derives the pager for a list whose backend reports a total count.
func buildPagination(r *http.Request, basePath string, p pageOpts, shown, total int) viewmodel.Pagination {
	off := p.offset()
	pg := viewmodel.Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: total,
		HasPrev:    p.Page > p.FirstPage,
		HasNext:    off+shown < total,
	}
	if shown > 0 {
		pg.StartIndex = off + 1
		pg.EndIndex = off + shown
	}
	q := r.URL.Query()
	if pg.HasPrev {
		pg.PrevURL = buildPageURL(basePath, q, pageOpts{Page: p.Page - 1, PageSize: p.PageSize})
	}
	if pg.HasNext {
		pg.NextURL = buildPageURL(basePath, q, pageOpts{Page: p.Page + 1, PageSize: p.PageSize})
	}
	return pg
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	if user := CurrentUser(r.Context()); user != nil {
		layout.User = &viewmodel.User{
			Email:      user.Email,
			Role:       string(user.Role),
			TenantName: user.TenantName,
		}
		layout.IsAuthenticated = true
		layout.IsAdmin = user.IsAdmin()
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"CSRFToken":       layout.CSRFToken,
		"Errors":          map[string]string{},
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, ps PageSpec) {
	data := basePageData(r, ps.Meta)
	if ps.Fetch != nil {
		if err := ps.Fetch(r.Context(), data); err != nil {
			h.logger().WarnContext(r.Context(), "page data fetch failed",
				"page", ps.Meta.CurrentPage,
				"error", err,
			)
			markPageError(data)
		}
	}
	h.renderPage(w, r, data)
}

// renderPage renders a page with HTMX partial support: full requests get the
// layout, HTMX navigation gets the content plus out-of-band title updates.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	// Hint client JS to update nav active state based on current path
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)
	currentPage, _ := data["CurrentPage"].(string)

	// Include a <title> element so htmx updates document.title on partial swaps
	prefix := `<title>` + html.EscapeString(title) + `</title>` +
		`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + html.EscapeString(pageTitle) + `</h1>`

	if err := h.T.RenderFragment(w, ContentTemplateFor(currentPage), data, prefix); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

// renderFragment renders a named partial, e.g. a table refreshed in place.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.T.RenderFragment(w, name, data, ""); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment render: "+name)
	}
}

func markPageError(data map[string]any) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = errMsgLoadFailed
}

// actionResult describes how a form action ends.
type actionResult struct {
	Message  string
	Kind     ToastKind
	Event    string // refresh event fired on success, e.g. "documents:changed"
	Redirect string // where non-HTMX submissions land
}

// finishAction ends a state-changing request. HTMX callers get a toast plus an
// optional refresh event and a 204; plain form posts are sent back to the page.
func (h *UIHandlers) finishAction(w http.ResponseWriter, r *http.Request, res actionResult) {
	if !IsHTMX(r) {
		target := res.Redirect
		if target == "" {
			target = HomePath
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	resp := HTMX(w)
	if res.Event != "" && res.Kind != ToastError {
		resp.Trigger(res.Event, nil)
	}
	if strings.TrimSpace(res.Message) != "" {
		resp.Toast(res.Message, res.Kind)
	}
	resp.NoContent()
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	// In dev mode, show detailed error in the response
	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		errHTML := html.EscapeString(err.Error())
		pathHTML := html.EscapeString(r.URL.Path)
		contextHTML := html.EscapeString(context)
		if _, writeErr := w.Write([]byte(`
			<div class="template-error">
				<h2>Template Rendering Error</h2>
				<p><strong>Context:</strong> ` + contextHTML + `</p>
				<p><strong>Path:</strong> ` + pathHTML + `</p>
				<pre>` + errHTML + `</pre>
			</div>
		`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	ragportal "github.com/ragportal/portal-ui"
	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
)

// formBodySlack leaves room for multipart headers around an upload at the size limit.
const formBodySlack = 1 << 20

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions      SessionProvider // Required
	SessionCookie SessionCookie
	CookieDomain  string
	// PendingTimeout bounds how long gated requests wait on identity resolution.
	PendingTimeout time.Duration
	UploadMaxBytes int64
	// Ready backs /readyz; nil reports ready unconditionally.
	Ready Pinger
	// TemplateFS overrides the template source (tests); nil picks disk or embed by IsDev.
	TemplateFS fs.FS
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates and configures the HTTP router with browser middleware.
// It fails when templates cannot be parsed.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Sessions == nil {
		panic("NewRouter requires a SessionProvider")
	}
	logger := services.logger()

	ui, err := setupUIHandlers(services)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readinessHandler(services.Ready, logger))

	// Dev mode: serve from disk for hot reloading. Prod mode: serve from embedded FS.
	mux.Handle("GET /static/", staticHandler(services.IsDev, logger))

	cookie := services.SessionCookie
	if cookie.Domain == "" {
		cookie.Domain = services.CookieDomain
	}
	registerUIRoutes(mux, ui, SessionConfig{
		Sessions:       services.Sessions,
		Cookie:         cookie,
		PendingTimeout: services.PendingTimeout,
		Logger:         logger,
	})

	var handler http.Handler = &notFoundHandler{mux: mux, uiHandlers: ui}
	handler = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(handler)
	handler = BrowserDetection()(handler)
	if services.UploadMaxBytes > 0 {
		handler = LimitBody(services.UploadMaxBytes + formBodySlack)(handler)
	}
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

// setupUIHandlers creates UI handlers with a template renderer.
// In dev mode templates are loaded from disk for hot reloading; otherwise from the embedded FS.
func setupUIHandlers(services RouterServices) (*UIHandlers, error) {
	templateFS := services.TemplateFS
	if templateFS == nil {
		templateFS = templateSource(services.IsDev, services.logger())
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		services.logger().Error("failed to create template renderer", slog.Any("error", err))
		return nil, err
	}

	return &UIHandlers{
		T:              tr,
		UploadMaxBytes: services.UploadMaxBytes,
		IsDev:          services.IsDev,
		Logger:         services.Logger,
	}, nil
}

func templateSource(isDev bool, logger *slog.Logger) fs.FS {
	if isDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(ragportal.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		logger.Warn("failed to open embedded templates; falling back to disk", "error", err)
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// staticHandler serves /static/* assets.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}

	staticSub, err := fs.Sub(ragportal.StaticFS, "frontend/static")
	if err != nil {
		logger.Warn("failed to create sub-filesystem for static assets", "error", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))), true)
}

// staticWithCacheHeaders wraps a static file handler to add cache headers.
// Embedded assets change only with a release; disk assets are never cached.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	// Let the mux answer unmatched methods (405) and anything else it owns.
	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status == http.StatusNotFound && !strings.HasPrefix(r.URL.Path, "/static/") {
		h.uiHandlers.NotFound(w, r)
		return
	}
	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		slog.Default().Debug("failed to write captured response", "error", err)
	}
}

// registerUIRoutes wires the public auth pages and the gated app screens.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg SessionConfig) {
	registerUIAuthRoutes(mux, h, cfg)
	registerUIAppRoutes(mux, h, cfg)
}

// registerUIAuthRoutes wires pages that load the browser session without requiring one.
func registerUIAuthRoutes(mux *http.ServeMux, h *UIHandlers, cfg SessionConfig) {
	wrap := LoadSession(cfg)
	mux.Handle("GET /login", wrap(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /login", wrap(http.HandlerFunc(h.Login)))
	mux.Handle("GET "+RegisterPath, wrap(http.HandlerFunc(h.RegisterPage)))
	mux.Handle("POST "+RegisterPath, wrap(http.HandlerFunc(h.RegisterTenant)))
	mux.Handle("POST /logout", wrap(http.HandlerFunc(h.Logout)))
}

// registerUIAppRoutes wires the gated screens under /app.
func registerUIAppRoutes(mux *http.ServeMux, h *UIHandlers, cfg SessionConfig) {
	wrap := RequireSession(cfg)
	wrapAdmin := func(next http.Handler) http.Handler {
		return wrap(RequireRole(domainauth.RoleAdmin)(next))
	}

	mux.Handle("GET /app", wrap(http.HandlerFunc(h.AppRoot)))
	mux.Handle("GET /app/{$}", wrap(http.HandlerFunc(h.AppRoot)))

	mux.Handle("GET "+HomePath, wrap(http.HandlerFunc(h.Chat)))
	mux.Handle("POST "+HomePath+"/query", wrap(http.HandlerFunc(h.ChatQuery)))

	mux.Handle("GET "+DocumentsPath, wrap(http.HandlerFunc(h.Documents)))
	mux.Handle("POST "+DocumentsPath+"/upload", wrap(http.HandlerFunc(h.UploadDocument)))
	mux.Handle("POST "+DocumentsPath+"/upload-url", wrap(http.HandlerFunc(h.UploadURL)))
	mux.Handle("POST "+DocumentsPath+"/{id}/ingest", wrap(http.HandlerFunc(h.IngestDocument)))

	mux.Handle("GET "+UsersPath, wrapAdmin(http.HandlerFunc(h.Users)))
	mux.Handle("POST "+UsersPath, wrapAdmin(http.HandlerFunc(h.CreateUser)))
	mux.Handle("POST "+UsersPath+"/{id}", wrapAdmin(http.HandlerFunc(h.UpdateUser)))
	mux.Handle("POST "+UsersPath+"/{id}/delete", wrapAdmin(http.HandlerFunc(h.DeleteUser)))

	mux.Handle("GET "+ProfilePath, wrap(http.HandlerFunc(h.Profile)))
	mux.Handle("POST "+ProfilePath+"/password", wrap(http.HandlerFunc(h.ChangePassword)))
}

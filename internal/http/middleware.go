package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/service"
)

// DefaultSessionCookieName names the opaque browser session cookie.
const DefaultSessionCookieName = "portal_sid"

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitBody caps the request body at maxBytes. Reads past the limit fail with
// *http.MaxBytesError.
func LimitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionProvider hands out the per-browser session scope.
type SessionProvider interface {
	Acquire(browserID string) (*service.BrowserSession, error)
}

var _ SessionProvider = (*service.SessionRegistry)(nil)

// SessionConfig configures the session middlewares.
type SessionConfig struct {
	Sessions SessionProvider // Required
	Cookie   SessionCookie
	// PendingTimeout bounds how long a gated request waits for an identity
	// resolution (optional; the request context always applies).
	PendingTimeout time.Duration
	Logger         *slog.Logger
}

// SessionCookie holds attributes of the browser session cookie.
type SessionCookie struct {
	Name   string        // default "portal_sid"
	Domain string        // empty means the request host
	MaxAge time.Duration // zero means a browser-session cookie
}

func (c SessionConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c SessionConfig) cookieName() string {
	if c.Cookie.Name != "" {
		return c.Cookie.Name
	}
	return DefaultSessionCookieName
}

// LoadSession returns a middleware that resolves the browser's session scope,
// re-syncs it with the token slot and stores it in the request context. It
// never rejects a request; pair it with RequireSession to gate content.
// Identity resolution is awaited for at most PendingTimeout, so a page may
// render while the session is still LOADING.
func LoadSession(cfg SessionConfig) func(http.Handler) http.Handler {
	if cfg.Sessions == nil {
		panic("LoadSession requires a SessionProvider")
	}
	return func(next http.Handler) http.Handler {
		return withSession(cfg, func(w http.ResponseWriter, r *http.Request, _ GateDecision, _ error) {
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession returns a middleware that admits only authenticated
// sessions. It waits up to PendingTimeout for an in-flight identity
// resolution, then either runs next or redirects to the login page. A
// request still pending when the wait ends gets a blank 503.
func RequireSession(cfg SessionConfig) func(http.Handler) http.Handler {
	if cfg.Sessions == nil {
		panic("RequireSession requires a SessionProvider")
	}
	return func(next http.Handler) http.Handler {
		return withSession(cfg, func(w http.ResponseWriter, r *http.Request, decision GateDecision, err error) {
			switch decision {
			case GateAllow:
				next.ServeHTTP(w, r)
			case GateRedirect:
				rejectUnauthenticated(w, r)
			default:
				cfg.logger().DebugContext(r.Context(), "session still resolving when wait ended",
					"path", r.URL.Path, "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
			}
		})
	}
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, decision GateDecision, err error)

// withSession puts the browser's scope in the request context, syncs it with
// the token slot without blocking on the backend, and waits for a conclusive
// gate decision bounded by PendingTimeout and the request.
func withSession(cfg SessionConfig, serve sessionHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bs, ok := SessionFromContext(r.Context())
		if !ok {
			id := browserID(w, r, cfg)
			var err error
			bs, err = cfg.Sessions.Acquire(id)
			if err != nil {
				cfg.logger().ErrorContext(r.Context(), "acquire browser session failed", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			bs.Session.Sync(r.Context())
			r = r.WithContext(WithBrowserSession(r.Context(), bs))
		}

		ctx := r.Context()
		if cfg.PendingTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.PendingTimeout)
			defer cancel()
		}

		guard := NewGuard(bs.Session)
		decision, err := guard.Wait(ctx)
		guard.Close()

		serve(w, r, decision, err)
	})
}

// RequireRole returns a middleware that requires the session's identity to
// hold at least requiredRole. It must run inside RequireSession.
func RequireRole(requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := MustSession(r.Context()).Session.User()
			if user == nil {
				rejectUnauthenticated(w, r)
				return
			}

			if !hasRequiredRole(user.Role, requiredRole) {
				if IsBrowserRequest(r) {
					showAccessDenied(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// hasRequiredRole checks if the user's role meets the required role.
// Role hierarchy: User < Admin.
func hasRequiredRole(userRole, requiredRole domainauth.Role) bool {
	roleHierarchy := map[domainauth.Role]int{
		domainauth.RoleUser:  1,
		domainauth.RoleAdmin: 2,
	}

	userLevel, userExists := roleHierarchy[userRole]
	requiredLevel, requiredExists := roleHierarchy[requiredRole]

	if !userExists || !requiredExists {
		return false
	}

	return userLevel >= requiredLevel
}

// browserID returns the id from the session cookie, issuing a fresh one when
// the cookie is missing or malformed.
func browserID(w http.ResponseWriter, r *http.Request, cfg SessionConfig) string {
	name := cfg.cookieName()
	if c, err := r.Cookie(name); err == nil {
		if id, parseErr := uuid.Parse(c.Value); parseErr == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	cookie := &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		Domain:   cfg.Cookie.Domain,
		HttpOnly: true,
		Secure:   r.TLS != nil || isForwardedHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.Cookie.MaxAge > 0 {
		cookie.MaxAge = int(cfg.Cookie.MaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
	return id
}

func rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		redirectToLogin(w, r)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}

// redirectToLogin sends browser requests to the login page. HTMX requests get
// an Hx-Redirect so the whole page navigates instead of swapping a fragment.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		SetHXRedirect(w, LoginPath)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// showAccessDenied shows an access denied page for browser requests.
func showAccessDenied(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Access Denied: You don't have permission to access this resource", http.StatusForbidden)
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API requests.
// It sets a context value that can be used by downstream handlers to determine
// whether to return HTML or JSON responses.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isBrowser := isBrowserRequest(r)
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest determines if a request is from a browser based on:
// 1. Path prefix - static assets and health probes are not pages
// 2. HTMX requests are browser requests
// 3. Accept header - browsers typically accept text/html.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/static/") || strings.HasPrefix(r.URL.Path, "/healthz") ||
		strings.HasPrefix(r.URL.Path, "/readyz") {
		return false
	}

	if IsHTMX(r) {
		return true
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header, assume browser for page routes
		return true
	}

	return strings.Contains(accept, "text/html")
}

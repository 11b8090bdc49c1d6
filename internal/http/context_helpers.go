package httpx

import (
	"context"
	"errors"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/service"
)

// ErrNoSessionScope is the panic value of MustSession outside a session scope.
var ErrNoSessionScope = errors.New("httpx: session accessed outside a browser session scope")

// browserSessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type browserSessionKey struct{}

// WithBrowserSession returns a child context that carries the given session scope.
// If bs is nil, the original ctx is returned unchanged.
func WithBrowserSession(ctx context.Context, bs *service.BrowserSession) context.Context {
	if bs == nil {
		return ctx
	}
	return context.WithValue(ctx, browserSessionKey{}, bs)
}

// SessionFromContext returns the browser session scope and a boolean indicating presence.
func SessionFromContext(ctx context.Context) (*service.BrowserSession, bool) {
	if bs, ok := ctx.Value(browserSessionKey{}).(*service.BrowserSession); ok && bs != nil {
		return bs, true
	}
	return nil, false
}

// MustSession returns the browser session scope installed by LoadSession.
// It panics when used outside that scope; Recover turns the panic into a 500.
func MustSession(ctx context.Context) *service.BrowserSession {
	bs, ok := SessionFromContext(ctx)
	if !ok {
		panic(ErrNoSessionScope)
	}
	return bs
}

// CurrentUser returns the identity resolved for the request's session, or nil.
func CurrentUser(ctx context.Context) *domainauth.Identity {
	bs, ok := SessionFromContext(ctx)
	if !ok {
		return nil
	}
	return bs.Session.User()
}

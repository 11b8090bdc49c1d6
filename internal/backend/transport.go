package backend

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ragportal/portal-ui/internal/ports"
	"golang.org/x/oauth2"
)

type skipUnauthorizedHookKey struct{}

// withoutUnauthorizedHook marks calls whose 401 is handled by the caller
// (login and identity resolution).
func withoutUnauthorizedHook(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipUnauthorizedHookKey{}, true)
}

func unauthorizedHookSkipped(ctx context.Context) bool {
	v, _ := ctx.Value(skipUnauthorizedHookKey{}).(bool)
	return v
}

// BearerTransport attaches "Authorization: Bearer <token>" to every outgoing
// request when the token slot holds a token. Requests are cloned, never mutated.
type BearerTransport struct {
	Base   http.RoundTripper
	Tokens ports.TokenStorage
	// OnUnauthorized, when set, runs after a 401 on a request that carried a token.
	OnUnauthorized func(ctx context.Context)
	Logger         *slog.Logger
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *BearerTransport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// RoundTrip implements http.RoundTripper.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	var token string
	if t.Tokens != nil {
		loaded, err := t.Tokens.Load(ctx)
		if err != nil {
			t.logger().WarnContext(ctx, "token slot read failed; sending request without credentials",
				"path", req.URL.Path, "error", err)
		}
		token = loaded
	}

	out := req
	if token != "" {
		out = req.Clone(ctx)
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
	}

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" &&
		t.OnUnauthorized != nil && !unauthorizedHookSkipped(ctx) {
		t.logger().InfoContext(ctx, "backend rejected token", "path", req.URL.Path)
		t.OnUnauthorized(ctx)
	}
	return resp, nil
}

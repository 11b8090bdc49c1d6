package backend

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/domain/model"
	apperrors "github.com/ragportal/portal-ui/internal/errors"
	"golang.org/x/oauth2"
)

// Login exchanges credentials for a bearer token (POST /auth/login).
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (string, error) {
	var tok oauth2.Token
	if err := c.doJSON(withoutUnauthorizedHook(ctx), http.MethodPost, "/auth/login", creds, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", apperrors.Wrap(errMissingAccessToken, apperrors.ErrCodeBackend, "POST /auth/login")
	}
	return tok.AccessToken, nil
}

// Me resolves the identity behind the attached token (GET /auth/me).
func (c *Client) Me(ctx context.Context) (domainauth.Identity, error) {
	var id domainauth.Identity
	if err := c.doJSON(withoutUnauthorizedHook(ctx), http.MethodGet, "/auth/me", nil, &id); err != nil {
		return domainauth.Identity{}, err
	}
	return id, nil
}

// RegisterTenant creates a tenant and its first admin (POST /auth/register-tenant).
func (c *Client) RegisterTenant(ctx context.Context, req model.TenantRegisterRequest) (model.Tenant, error) {
	var tenant model.Tenant
	if err := c.doJSON(withoutUnauthorizedHook(ctx), http.MethodPost, "/auth/register-tenant", req, &tenant); err != nil {
		return model.Tenant{}, err
	}
	return tenant, nil
}

// ChangePassword rotates the caller's password (POST /auth/change-password).
func (c *Client) ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/change-password", req, nil)
}

var errMissingAccessToken = errors.New("login response has no access_token")

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters and internal/backend; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
)

// ErrTokenUnreadable marks a stored value that can never be read back as a
// token, such as one sealed under another key. The session store clears the
// slot when it sees it; other Load errors are treated as transient.
var ErrTokenUnreadable = errors.New("stored token is unreadable")

// TokenStorage is the durable single-key slot holding the bearer token.
// Load returns "" and a nil error when the slot is empty.
type TokenStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthAPI is the part of the backend contract the session store depends on.
// Me resolves the identity for whatever token the transport attaches.
type AuthAPI interface {
	Login(ctx context.Context, creds domainauth.Credentials) (string, error)
	Me(ctx context.Context) (domainauth.Identity, error)
}

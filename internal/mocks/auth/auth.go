// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStorage = (*MemoryTokenStorage)(nil)
	_ ports.AuthAPI      = (*FakeAuthAPI)(nil)
)

// ErrInvalidCredentials is returned by FakeAuthAPI.Login for unknown credentials.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownToken is returned by FakeAuthAPI.Me when the slot token maps to no identity.
var ErrUnknownToken = errors.New("unknown token")

// MemoryTokenStorage is an in-memory token slot with injectable failures.
type MemoryTokenStorage struct {
	mu    sync.Mutex
	token string

	LoadErr  error
	SaveErr  error
	ClearErr error

	Saves  int
	Clears int
}

// NewMemoryTokenStorage returns a slot pre-filled with token ("" for empty).
func NewMemoryTokenStorage(token string) *MemoryTokenStorage {
	return &MemoryTokenStorage{token: token}
}

func (m *MemoryTokenStorage) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	return m.token, nil
}

func (m *MemoryTokenStorage) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	m.Saves++
	return nil
}

func (m *MemoryTokenStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	m.Clears++
	return nil
}

// Peek returns the stored token ignoring injected errors.
func (m *MemoryTokenStorage) Peek() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// FakeAuthAPI simulates the backend's login and identity endpoints.
// Me reads the token from Slot the way the real transport does.
type FakeAuthAPI struct {
	Slot ports.TokenStorage

	mu sync.Mutex
	// Accounts maps "email:password" to the issued token.
	Accounts map[string]string
	// Identities maps a token to the identity Me returns.
	Identities map[string]domainauth.Identity

	LoginFunc func(ctx context.Context, creds domainauth.Credentials) (string, error)
	MeFunc    func(ctx context.Context) (domainauth.Identity, error)

	LoginCalls atomic.Int32
	MeCalls    atomic.Int32
}

// NewFakeAuthAPI returns a fake bound to slot with no accounts.
func NewFakeAuthAPI(slot ports.TokenStorage) *FakeAuthAPI {
	return &FakeAuthAPI{
		Slot:       slot,
		Accounts:   make(map[string]string),
		Identities: make(map[string]domainauth.Identity),
	}
}

// AddAccount registers credentials that log in as id with token.
func (f *FakeAuthAPI) AddAccount(creds domainauth.Credentials, token string, id domainauth.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Accounts[creds.Email+":"+creds.Password] = token
	f.Identities[token] = id
}

func (f *FakeAuthAPI) Login(ctx context.Context, creds domainauth.Credentials) (string, error) {
	f.LoginCalls.Add(1)
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, creds)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.Accounts[creds.Email+":"+creds.Password]
	if !ok {
		return "", ErrInvalidCredentials
	}
	return token, nil
}

func (f *FakeAuthAPI) Me(ctx context.Context) (domainauth.Identity, error) {
	f.MeCalls.Add(1)
	if f.MeFunc != nil {
		return f.MeFunc(ctx)
	}
	token := ""
	if f.Slot != nil {
		loaded, err := f.Slot.Load(ctx)
		if err != nil {
			return domainauth.Identity{}, err
		}
		token = loaded
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.Identities[token]
	if !ok {
		return domainauth.Identity{}, ErrUnknownToken
	}
	return id, nil
}

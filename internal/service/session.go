package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/ports"
	"golang.org/x/sync/singleflight"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	API    ports.AuthAPI      // Required: login and identity endpoints
	Tokens ports.TokenStorage // Required: the durable token slot
	Config SessionServiceConfig
}

// SessionServiceConfig holds optional behavior for SessionService.
type SessionServiceConfig struct {
	// SerializeLogin makes concurrent LoginUser calls run one at a time.
	// When false, concurrent logins race and the last write wins.
	SerializeLogin bool
	Logger         *slog.Logger
}

// SessionService owns the authentication lifecycle of one client: the bearer
// token mirrored from the token slot and the identity resolved for it.
//
// It is the only writer of the token slot. All methods are safe for concurrent use.
type SessionService struct {
	api       ports.AuthAPI
	tokens    ports.TokenStorage
	logger    *slog.Logger
	serialize bool

	initMu  sync.Mutex
	loginMu sync.Mutex
	resolve singleflight.Group

	mu        sync.Mutex
	snap      domainauth.Snapshot
	observers map[uint64]func(domainauth.Snapshot)
	nextObs   uint64
}

// NewSessionService constructs a SessionService in the UNINITIALIZED state.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.API == nil {
		panic("SessionService requires an AuthAPI")
	}
	if opts.Tokens == nil {
		panic("SessionService requires a TokenStorage")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		api:       opts.API,
		tokens:    opts.Tokens,
		logger:    logger.With("component", "session"),
		serialize: opts.Config.SerializeLogin,
		snap:      domainauth.Snapshot{State: domainauth.StateUninitialized},
		observers: make(map[uint64]func(domainauth.Snapshot)),
	}
}

// Initialize reads the token slot once per store lifetime. With no token the
// store becomes ANONYMOUS without a network call; with a token it becomes
// LOADING and resolves the identity. Resolution failures purge the token and
// are logged, never returned. Later calls are no-ops.
func (s *SessionService) Initialize(ctx context.Context) {
	if token := s.initialize(ctx); token != "" {
		if _, err := s.resolveIdentity(ctx, token); err != nil {
			s.logger.DebugContext(ctx, "initial identity resolution ended", "error", err)
		}
	}
}

// initialize moves an UNINITIALIZED store to LOADING or ANONYMOUS and returns
// the token that still needs resolving, if any.
func (s *SessionService) initialize(ctx context.Context) string {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.State() != domainauth.StateUninitialized {
		return ""
	}

	token, err := s.loadToken(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "token slot read failed; starting anonymous", "error", err)
		token = ""
	}

	s.mu.Lock()
	if s.snap.State != domainauth.StateUninitialized {
		// A login or logout landed while the slot was being read.
		s.mu.Unlock()
		return ""
	}
	if token == "" {
		s.snap = anonymousSnapshot()
	} else {
		s.snap = loadingSnapshot(token)
	}
	snap, obs := s.snap, s.observerList()
	s.mu.Unlock()

	s.notify(obs, snap)
	return token
}

// loadToken reads the slot. A value that can never be read back is cleared
// and reported as an empty slot; other read errors are returned untouched.
func (s *SessionService) loadToken(ctx context.Context) (string, error) {
	token, err := s.tokens.Load(ctx)
	if err == nil || !errors.Is(err, ports.ErrTokenUnreadable) {
		return token, err
	}

	s.logger.WarnContext(ctx, "stored token is unreadable; clearing slot", "error", err)
	if cerr := s.tokens.Clear(ctx); cerr != nil {
		return "", fmt.Errorf("clear unreadable token: %w", cerr)
	}
	return "", nil
}

// LoginUser exchanges credentials for a token, persists it, and resolves the
// identity before returning. A rejected login returns the backend error and
// leaves the store untouched. A failed post-login resolution purges the new
// token and returns the resolution error.
func (s *SessionService) LoginUser(ctx context.Context, creds domainauth.Credentials) error {
	if s.serialize {
		s.loginMu.Lock()
		defer s.loginMu.Unlock()
	}

	token, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.tokens.Save(ctx, token); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save token: %w", err)
	}
	s.snap = loadingSnapshot(token)
	snap, obs := s.snap, s.observerList()
	s.mu.Unlock()

	s.notify(obs, snap)

	_, err = s.resolveIdentity(ctx, token)
	return err
}

// Logout clears the token and identity from the slot and memory. It makes no
// backend call and is idempotent; slot failures are logged.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "token slot clear failed during logout", "error", err)
	}
	changed := s.snap.State != domainauth.StateAnonymous || s.snap.Token != ""
	s.snap = anonymousSnapshot()
	snap, obs := s.snap, s.observerList()
	s.mu.Unlock()

	if changed {
		s.notify(obs, snap)
	}
}

// HandleUnauthorized is the transport hook for a rejected bearer token.
func (s *SessionService) HandleUnauthorized(ctx context.Context) {
	s.logger.InfoContext(ctx, "backend rejected session token; logging out")
	s.Logout(ctx)
}

// Revalidate re-reads the token slot and re-syncs when it no longer matches
// memory, e.g. after a login or logout through another instance. A changed
// token is resolved again; an emptied slot drops the store to ANONYMOUS.
func (s *SessionService) Revalidate(ctx context.Context) {
	if s.State() == domainauth.StateUninitialized {
		s.Initialize(ctx)
		return
	}
	if token := s.revalidate(ctx); token != "" {
		if _, err := s.resolveIdentity(ctx, token); err != nil {
			s.logger.DebugContext(ctx, "identity re-resolution ended", "error", err)
		}
	}
}

// Sync brings the store in line with the token slot without waiting on the
// backend. It initializes or revalidates as needed and, when a token must be
// resolved, leaves the store LOADING while the shared resolution runs in the
// background. Callers observe the outcome through Subscribe or a guard.
func (s *SessionService) Sync(ctx context.Context) {
	var token string
	if s.State() == domainauth.StateUninitialized {
		token = s.initialize(ctx)
	} else {
		token = s.revalidate(ctx)
	}
	if token != "" {
		s.startResolution(ctx, token)
	}
}

// revalidate applies a changed slot to memory and returns the token that
// needs resolving, if any.
func (s *SessionService) revalidate(ctx context.Context) string {
	token, err := s.loadToken(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "token slot read failed; keeping current session", "error", err)
		return ""
	}

	s.mu.Lock()
	if token == s.snap.Token {
		s.mu.Unlock()
		return ""
	}
	if token == "" {
		s.snap = anonymousSnapshot()
	} else {
		s.snap = loadingSnapshot(token)
	}
	snap, obs := s.snap, s.observerList()
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "token slot changed; session re-synced", "state", snap.State.String())
	s.notify(obs, snap)
	return token
}

// resolveIdentity runs or joins the identity resolution for token and waits
// for it. A caller giving up returns ctx.Err() without aborting the lookup.
func (s *SessionService) resolveIdentity(ctx context.Context, token string) (domainauth.Identity, error) {
	ch := s.startResolution(ctx, token)

	select {
	case <-ctx.Done():
		return domainauth.Identity{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domainauth.Identity{}, res.Err
		}
		id, _ := res.Val.(domainauth.Identity)
		return id, nil
	}
}

// startResolution runs or joins the identity lookup for token. The lookup is
// detached from ctx so callers sharing it cannot cancel one another; it stays
// bounded by the backend client's timeout and always applies its outcome.
func (s *SessionService) startResolution(ctx context.Context, token string) <-chan singleflight.Result {
	detached := context.WithoutCancel(ctx)
	return s.resolve.DoChan(token, func() (any, error) {
		id, err := s.api.Me(detached)
		s.applyResolution(detached, token, id, err)
		return id, err
	})
}

// applyResolution records the outcome only while the store is still waiting on token.
func (s *SessionService) applyResolution(ctx context.Context, token string, id domainauth.Identity, err error) {
	s.mu.Lock()
	if s.snap.State != domainauth.StateLoading || s.snap.Token != token {
		// Superseded by a logout, login or re-sync.
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.logger.WarnContext(ctx, "identity resolution failed; clearing stored token", "error", err)
		if cerr := s.tokens.Clear(ctx); cerr != nil {
			s.logger.WarnContext(ctx, "token slot clear failed", "error", cerr)
		}
		s.snap = anonymousSnapshot()
	} else {
		user := id
		s.snap = domainauth.Snapshot{
			Token: token,
			User:  &user,
			State: domainauth.StateAuthenticated,
		}
	}
	snap, obs := s.snap, s.observerList()
	s.mu.Unlock()

	s.notify(obs, snap)
}

// Snapshot returns a copy of the current session.
func (s *SessionService) Snapshot() domainauth.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySnapshot(s.snap)
}

// State returns the lifecycle state.
func (s *SessionService) State() domainauth.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.State
}

// User returns the resolved identity, or nil when none is set.
func (s *SessionService) User() *domainauth.Identity {
	return s.Snapshot().User
}

// Token returns the in-memory bearer token ("" when anonymous).
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Token
}

// Subscribe registers fn to be called with every new snapshot. Calls happen
// outside the store lock and may arrive concurrently; observers that need the
// latest state should re-read Snapshot. The returned func unsubscribes.
func (s *SessionService) Subscribe(fn func(domainauth.Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// observerList must be called with s.mu held.
func (s *SessionService) observerList() []func(domainauth.Snapshot) {
	if len(s.observers) == 0 {
		return nil
	}
	out := make([]func(domainauth.Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		out = append(out, fn)
	}
	return out
}

func (s *SessionService) notify(obs []func(domainauth.Snapshot), snap domainauth.Snapshot) {
	for _, fn := range obs {
		fn(copySnapshot(snap))
	}
}

func anonymousSnapshot() domainauth.Snapshot {
	return domainauth.Snapshot{State: domainauth.StateAnonymous}
}

func loadingSnapshot(token string) domainauth.Snapshot {
	return domainauth.Snapshot{Token: token, Loading: true, State: domainauth.StateLoading}
}

func copySnapshot(s domainauth.Snapshot) domainauth.Snapshot {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

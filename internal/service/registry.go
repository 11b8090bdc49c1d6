package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/ragportal/portal-ui/internal/ports"
)

const (
	defaultRegistrySize = 10000
	defaultRegistryTTL  = 30 * time.Minute
)

// BrowserSession is one client's session scope: its Session Store and the
// backend client bound to the same token slot.
type BrowserSession struct {
	ID      string
	Session *SessionService
	API     ports.PortalAPI
}

// SessionFactory builds the scope for a browser id seen for the first time.
type SessionFactory func(browserID string) (*BrowserSession, error)

// SessionRegistryOptions groups dependencies for SessionRegistry.
type SessionRegistryOptions struct {
	Factory SessionFactory // Required
	Cache   RegistryCacheConfig
	Logger  *slog.Logger
}

// RegistryCacheConfig bounds the registry.
type RegistryCacheConfig struct {
	Size int           // max live browser sessions (default 10000)
	TTL  time.Duration // idle lifetime of an entry (default 30m)
}

// SessionRegistry maps browser ids to their BrowserSession. Entries are
// evicted when idle or when the registry is full; an evicted browser gets a
// fresh store on its next request, which re-initializes from the token slot.
type SessionRegistry struct {
	factory SessionFactory
	logger  *slog.Logger

	mu    sync.Mutex
	cache *expirable.LRU[string, *BrowserSession]
}

// ErrEmptyBrowserID is returned by Acquire for a blank id.
var ErrEmptyBrowserID = errors.New("browser id is required")

// NewSessionRegistry constructs a SessionRegistry.
func NewSessionRegistry(opts SessionRegistryOptions) *SessionRegistry {
	if opts.Factory == nil {
		panic("SessionRegistry requires a SessionFactory")
	}
	size := opts.Cache.Size
	if size <= 0 {
		size = defaultRegistrySize
	}
	ttl := opts.Cache.TTL
	if ttl <= 0 {
		ttl = defaultRegistryTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &SessionRegistry{factory: opts.Factory, logger: logger}
	r.cache = expirable.NewLRU(size, func(id string, _ *BrowserSession) {
		r.logger.Debug("browser session evicted", "browser_id", id)
	}, ttl)
	return r
}

// Acquire returns the session scope for browserID, creating it on first use.
// Every call refreshes the entry's idle lifetime.
func (r *SessionRegistry) Acquire(browserID string) (*BrowserSession, error) {
	if browserID == "" {
		return nil, ErrEmptyBrowserID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if bs, ok := r.cache.Get(browserID); ok {
		r.cache.Add(browserID, bs)
		return bs, nil
	}

	bs, err := r.factory(browserID)
	if err != nil {
		return nil, fmt.Errorf("create browser session: %w", err)
	}
	r.cache.Add(browserID, bs)
	return bs, nil
}

// Forget drops the scope for browserID. The token slot is left untouched.
func (r *SessionRegistry) Forget(browserID string) {
	r.cache.Remove(browserID)
}

// Len reports the number of live entries.
func (r *SessionRegistry) Len() int {
	return r.cache.Len()
}

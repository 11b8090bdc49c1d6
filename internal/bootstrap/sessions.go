package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ragportal/portal-ui/config"
	redisadapter "github.com/ragportal/portal-ui/internal/adapters/redis"
	"github.com/ragportal/portal-ui/internal/backend"
	"github.com/ragportal/portal-ui/internal/ports"
	"github.com/ragportal/portal-ui/internal/service"
	"github.com/ragportal/portal-ui/internal/tokenseal"
	"github.com/redis/go-redis/v9"
)

// SessionDeps groups what the per-browser session factory needs.
type SessionDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	// Transport overrides the backend round tripper (tests).
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// SlotSource hands out the durable token slot for a browser id.
type SlotSource func(browserID string) ports.TokenStorage

// BuildSessionRegistry creates the registry that maps browser ids to their
// session store and backend client, both bound to the browser's Redis slot.
func BuildSessionRegistry(deps SessionDeps) (*service.SessionRegistry, error) {
	if deps.Config == nil {
		return nil, errors.New("session registry requires config")
	}
	if deps.RedisClient == nil {
		return nil, errors.New("session registry requires a redis client")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens := redisadapter.NewTokenStore(deps.RedisClient, redisadapter.TokenStoreOptions{
		Prefix: deps.Config.Session.KeyPrefix,
		TTL:    deps.Config.Session.TokenTTL,
	})
	slots, err := SealSlots(deps.Config, func(id string) ports.TokenStorage { return tokens.Slot(id) })
	if err != nil {
		return nil, err
	}

	return service.NewSessionRegistry(service.SessionRegistryOptions{
		Factory: NewSessionFactory(deps.Config, slots, deps.Transport, logger),
		Cache: service.RegistryCacheConfig{
			Size: deps.Config.Session.RegistrySize,
			TTL:  deps.Config.Session.RegistryTTL,
		},
		Logger: logger,
	}), nil
}

// SealSlots wraps every slot from slots in a sealing slot when a token key is
// configured, and returns slots unchanged otherwise.
func SealSlots(cfg *config.AppConfig, slots SlotSource) (SlotSource, error) {
	if cfg.Session.TokenKey == "" {
		return slots, nil
	}
	key, err := tokenseal.DeriveKey(cfg.Session.TokenKey)
	if err != nil {
		return nil, err
	}
	sealer, err := tokenseal.NewSealer(key)
	if err != nil {
		return nil, fmt.Errorf("create token sealer: %w", err)
	}
	return func(id string) ports.TokenStorage { return tokenseal.Wrap(slots(id), sealer) }, nil
}

// NewSessionFactory builds one browser's scope: a backend client and a session
// store sharing a token slot. Under the logout policy a backend 401 on a
// feature call ends the session.
func NewSessionFactory(
	cfg *config.AppConfig,
	slots SlotSource,
	transport http.RoundTripper,
	logger *slog.Logger,
) service.SessionFactory {
	return func(browserID string) (*service.BrowserSession, error) {
		slot := slots(browserID)
		scoped := logger.With("browser_id", browserID)

		var session *service.SessionService
		var onUnauthorized func(ctx context.Context)
		if cfg.Auth.LogoutOnUnauthorized() {
			onUnauthorized = func(ctx context.Context) { session.HandleUnauthorized(ctx) }
		}

		client, err := backend.New(backend.Options{
			BaseURL:        cfg.Backend.BaseURL,
			Tokens:         slot,
			Transport:      transport,
			Timeout:        cfg.Backend.Timeout,
			DetailPaths:    cfg.Backend.ErrorDetailPaths,
			OnUnauthorized: onUnauthorized,
			Logger:         scoped,
		})
		if err != nil {
			return nil, fmt.Errorf("create backend client: %w", err)
		}

		session = service.NewSessionService(service.SessionServiceOptions{
			API:    client,
			Tokens: slot,
			Config: service.SessionServiceConfig{
				SerializeLogin: cfg.Session.SerializeLogin,
				Logger:         scoped,
			},
		})

		return &service.BrowserSession{ID: browserID, Session: session, API: client}, nil
	}
}

package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ragportal/portal-ui/config"
	httpx "github.com/ragportal/portal-ui/internal/http"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Sessions    httpx.SessionProvider
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildHTTPHandler builds the router for the portal.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	var ready httpx.Pinger
	if cfg.RedisClient != nil {
		client := cfg.RedisClient
		ready = httpx.PingerFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
	}

	return httpx.NewRouter(httpx.RouterServices{
		Sessions: cfg.Sessions,
		SessionCookie: httpx.SessionCookie{
			Name: appCfg.Session.CookieName,
		},
		CookieDomain:   appCfg.HTTP.CookieDomain,
		PendingTimeout: appCfg.Session.PendingTimeout,
		UploadMaxBytes: appCfg.Upload.MaxBytes,
		Ready:          ready,
		IsDev:          appCfg.IsDev,
		Logger:         cfg.Logger,
	})
}

// StartHTTPServer creates and starts the HTTP server. Listen failures are
// sent on the returned channel.
func StartHTTPServer(logger *slog.Logger, handler http.Handler, addr string) (*http.Server, <-chan error) {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return server, errCh
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}

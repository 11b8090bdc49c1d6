package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ragportal/portal-ui/config"
)

// Run connects the token store, serves the portal, and blocks until a
// shutdown signal arrives or the server fails.
func Run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (err error) {
	if cfg == nil {
		return errors.New("config is required")
	}

	redisClient, err := ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}()

	registry, err := BuildSessionRegistry(SessionDeps{
		Config:      cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	handler, err := BuildHTTPHandler(&HTTPServerConfig{
		Config:      cfg,
		Sessions:    registry,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	server, serveErr := StartHTTPServer(logger, handler, cfg.HTTP.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
	case serveFailure := <-serveErr:
		logger.Error("HTTP server failed", "error", serveFailure)
		return serveFailure
	}

	return ShutdownHTTPServer(context.Background(), server, logger)
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ragportal/portal-ui/config"
	"github.com/ragportal/portal-ui/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		bootstrap.InitLogger("info").ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}

	logger := bootstrap.InitLogger(cfg.LogLevel)
	logStartupInfo(ctx, logger, &cfg)

	if err := bootstrap.Run(ctx, &cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting rag portal",
		"addr", cfg.HTTP.Addr,
		"backend", cfg.Backend.BaseURL,
		"unauthorized_policy", string(cfg.Auth.UnauthorizedPolicy),
		"dev", cfg.IsDev)
}

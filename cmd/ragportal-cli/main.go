package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/ragportal/portal-ui/config"
	"github.com/ragportal/portal-ui/internal/adapters/filetoken"
	"github.com/ragportal/portal-ui/internal/bootstrap"
	"github.com/ragportal/portal-ui/internal/ports"
	"github.com/ragportal/portal-ui/internal/service"
)

const cliBrowserID = "cli"

type commandFn func(c *cli, args []string) error

type command struct {
	name        string
	description string
	// public commands skip the login gate.
	public bool
	run    commandFn
}

// cli is one process's client: a session store over the token file and a
// backend client reading the same file.
type cli struct {
	ctx      context.Context
	session  *service.SessionService
	api      ports.PortalAPI
	out      io.Writer
	logger   *slog.Logger
	password string
}

func main() {
	if len(os.Args) < 2 {
		_ = printUsage(os.Stderr)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		_ = writef(os.Stderr, "unknown command %q\n\n", cmdName)
		_ = printUsage(os.Stderr)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		_ = writef(os.Stderr, "load config: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.NewLogger(os.Stderr, cfg.LogLevel)

	var cliCfg config.CLIConfig
	if err := env.Parse(&cliCfg); err != nil {
		logger.Error("parse cli config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	c, err := newCLI(ctx, &cfg, cliCfg, logger)
	if err == nil {
		err = c.run(cmd, os.Args[2:])
	}
	stop()
	if err != nil {
		_ = writef(os.Stderr, "%s: %v\n", cmdName, err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

// newCLI wires the session store and backend client over the token file.
func newCLI(ctx context.Context, cfg *config.AppConfig, cliCfg config.CLIConfig, logger *slog.Logger) (*cli, error) {
	path := cliCfg.TokenFile
	if path == "" {
		def, err := filetoken.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = def
	}
	slot := filetoken.New(path)
	slots, err := bootstrap.SealSlots(cfg, func(string) ports.TokenStorage { return slot })
	if err != nil {
		return nil, err
	}

	factory := bootstrap.NewSessionFactory(cfg, slots, nil, logger)
	bs, err := factory(cliBrowserID)
	if err != nil {
		return nil, err
	}
	return &cli{
		ctx:      ctx,
		session:  bs.Session,
		api:      bs.API,
		out:      os.Stdout,
		logger:   logger,
		password: cliCfg.Password,
	}, nil
}

var errNotLoggedIn = errors.New("not logged in")

// run initializes the session once and applies the login gate before the command.
func (c *cli) run(cmd command, args []string) error {
	c.session.Initialize(c.ctx)
	if !cmd.public && c.session.User() == nil {
		return errNotLoggedIn
	}
	return cmd.run(c, args)
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Sign in and keep the token for later commands",
			public:      true,
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Forget the stored token",
			public:      true,
			run:         runLogout,
		},
		"register-tenant": {
			name:        "register-tenant",
			description: "Create a tenant and its first admin",
			public:      true,
			run:         runRegisterTenant,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the signed-in identity",
			run:         runWhoami,
		},
		"ask": {
			name:        "ask",
			description: "Ask a question over the tenant's documents",
			run:         runAsk,
		},
		"documents": {
			name:        "documents",
			description: "List documents",
			run:         runDocuments,
		},
		"upload": {
			name:        "upload",
			description: "Upload a local file as a document",
			run:         runUpload,
		},
		"upload-url": {
			name:        "upload-url",
			description: "Register a web page as a document",
			run:         runUploadURL,
		},
		"ingest": {
			name:        "ingest",
			description: "Start ingestion for a document",
			run:         runIngest,
		},
		"users": {
			name:        "users",
			description: "List users in the tenant (admin)",
			run:         runUsers,
		},
		"change-password": {
			name:        "change-password",
			description: "Change your password",
			run:         runChangePassword,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: ragportal-cli <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-18s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

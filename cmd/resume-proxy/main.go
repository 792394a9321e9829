package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/fx"

	"resume-proxy-go/internal/client"
	"resume-proxy-go/internal/config"
	"resume-proxy-go/internal/handler"
	"resume-proxy-go/internal/metrics"
	"resume-proxy-go/internal/server"
	"resume-proxy-go/internal/service"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Before kong so FIREWORKS_API_KEY and friends can come from .env.
	if err := config.LoadDotenv(config.EnvFilePath()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var cli config.CLI
	kong.Parse(&cli,
		kong.Name("resume-proxy"),
		kong.Description("Credential-injecting proxy for Fireworks chat completions."),
		kong.Vars{"version": fmt.Sprintf("%s (%s, %s)", version, commit, date)},
	)

	fx.New(
		fx.NopLogger,
		fx.Provide(
			func() *config.CLI { return &cli },
			func() handler.Version { return handler.Version(version) },
			config.Load,
			newLogger,
			metrics.New,
			server.New,
			client.NewFireworksClient,
			service.NewChatService,
			handler.NewChatHandler,
			handler.NewHealthHandler,
		),
		fx.Invoke(handler.RegisterRoutes, warnConfig, server.Run),
	).Run()
}

// newLogger builds the process logger. Level and format were validated by
// config.Load, so an unknown value cannot reach here.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(cfg.Log.Level))
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if strings.EqualFold(cfg.Log.Format, "text") {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With("service", "resume-proxy", "version", version)
}

func warnConfig(cfg *config.Config, logger *slog.Logger) {
	cfg.WarnPermissions(logger)
	cfg.WarnMissingCredential(logger)
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kurochkinivan/dashboard_client/internal/config"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/dashboard"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/report_generator"
)

type App struct {
	log *slog.Logger
	cfg *config.Config
	out io.Writer
}

func New(log *slog.Logger, cfg *config.Config, out io.Writer) *App {
	return &App{
		log: log,
		cfg: cfg,
		out: out,
	}
}

// connect creates a dashboard client and opens a session when credentials
// are configured.
func (a *App) connect(ctx context.Context) (*dashboard.Client, error) {
	client, err := dashboard.New(a.log, a.cfg.Dashboard, dashboard.WithWebhookURL(a.cfg.WebhookURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard client: %w", err)
	}

	if a.cfg.Username == "" {
		return client, nil
	}

	a.log.DebugContext(ctx, "logging in",
		slog.String("server_url", a.cfg.URL),
		slog.String("username", a.cfg.Username),
	)

	if err := client.Login(ctx, a.cfg.Username, a.cfg.Password); err != nil {
		return nil, err
	}

	return client, nil
}

// reportGenerator embeds the configured font in PDF reports, falling back to
// an installed CJK font.
func (a *App) reportGenerator() *report_generator.Generator {
	font := a.cfg.FontPath
	if font == "" {
		font = report_generator.FindFont()
	}

	if font == "" {
		a.log.Debug("no CJK font found, pdf reports only support Latin text")
	}

	return report_generator.New(font)
}

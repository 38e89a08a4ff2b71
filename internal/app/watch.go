package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/dashboard"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/report_generator"
	"github.com/kurochkinivan/dashboard_client/internal/pipeline"
	"github.com/kurochkinivan/dashboard_client/internal/repository/journal"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
	"github.com/kurochkinivan/dashboard_client/internal/view"
	"golang.org/x/sync/errgroup"
)

const (
	filesBuffer    = 100
	outcomesBuffer = 100
)

// Watch uploads new archives from the watch directory until ctx is
// canceled and exports the daily report of every day they touched.
func (a *App) Watch(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting watch",
		slog.String("watch_dir", a.cfg.WatchDirectory),
		slog.String("reports_dir", a.cfg.ReportsDirectory),
		slog.Duration("scan_interval", a.cfg.ScanInterval),
		slog.Bool("today_only", a.cfg.TodayOnly),
	)

	if _, err := report_generator.ParseFormat(a.cfg.ReportsFormat); err != nil {
		return err
	}

	if err := os.MkdirAll(a.cfg.ReportsDirectory, 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	filesRepository, err := journal.Open(a.log, a.cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	if err := filesRepository.ResetProcessingFiles(ctx); err != nil {
		return fmt.Errorf("failed to reset processing files: %w", err)
	}

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	return a.startPipeline(ctx, filesRepository, client)
}

func (a *App) startPipeline(
	ctx context.Context,
	filesRepo *journal.FilesRepository,
	client *dashboard.Client,
) error {
	files := make(chan string, filesBuffer)
	outcomes := make(chan *domain.UploadOutcome, outcomesBuffer)

	session := uploader.NewController(
		a.log,
		client,
		view.NewLogRenderer(a.log),
		&filesRefresher{log: a.log, files: client},
		a.cfg.MaxBytes,
	)
	defer session.Wait()

	scanner := pipeline.NewScanner(
		a.log,
		a.cfg.WatchDirectory,
		a.cfg.ScanInterval,
		a.cfg.TodayOnly,
		files,
		filesRepo,
		filesRepo,
	)
	submitter := pipeline.NewSubmitter(a.log, a.cfg.ScanInterval, files, outcomes, session, filesRepo)
	reporter := pipeline.NewReporter(
		a.log,
		a.cfg.ReportsDirectory,
		a.cfg.ReportsFormat,
		outcomes,
		client,
		a.reportGenerator(),
	)

	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		a.log.InfoContext(ctx, "scanner started")
		return scanner.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "submitter started")
		return submitter.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "reporter started")
		return reporter.Run(ctx)
	})

	a.log.InfoContext(ctx, "all components started")

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "pipeline stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "pipeline stopped gracefully")

	return nil
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

const outcomeDateLayout = "2006-01-02"

// Reporter exports the daily report of every day a successful upload
// contributed to.
type Reporter struct {
	log             *slog.Logger
	outputDir       string
	format          string
	outcomes        <-chan *domain.UploadOutcome
	reportProvider  ReportProvider
	reportGenerator ReportGenerator
}

func NewReporter(
	log *slog.Logger,
	outputDir string,
	format string,
	outcomes <-chan *domain.UploadOutcome,
	reportProvider ReportProvider,
	reportGenerator ReportGenerator,
) *Reporter {
	return &Reporter{
		log:             log,
		outputDir:       outputDir,
		format:          format,
		outcomes:        outcomes,
		reportProvider:  reportProvider,
		reportGenerator: reportGenerator,
	}
}

func (r *Reporter) Run(ctx context.Context) error {
	for {
		select {
		case outcome, ok := <-r.outcomes:
			if !ok {
				return nil
			}

			dates := r.collectDates(outcome)

			for _, date := range dates {
				log := r.log.With(slog.String("date", date))

				log.InfoContext(ctx, "received upload outcome, generating report")

				if err := r.processDate(ctx, date); err != nil {
					log.ErrorContext(ctx, "failed to generate report", slog.String("err", err.Error()))
				}
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// collectDates takes first and every outcome already queued behind it and
// returns their distinct report dates in arrival order.
func (r *Reporter) collectDates(first *domain.UploadOutcome) []string {
	var dates []string
	seen := make(map[string]bool)

	add := func(o *domain.UploadOutcome) {
		if !o.Success || o.Data == nil || o.Data.Date == "" || seen[o.Data.Date] {
			return
		}
		seen[o.Data.Date] = true
		dates = append(dates, o.Data.Date)
	}

	add(first)

	for {
		select {
		case o, ok := <-r.outcomes:
			if !ok {
				return dates
			}
			add(o)
		default:
			return dates
		}
	}
}

func (r *Reporter) processDate(ctx context.Context, date string) error {
	day, err := time.Parse(outcomeDateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid outcome date %q: %w", date, err)
	}

	report, err := r.reportProvider.DailyReport(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to fetch report: %w", err)
	}

	path := filepath.Join(r.outputDir, "daily_"+day.Format(fileDateLayout)+"."+strings.TrimPrefix(r.format, "."))

	if err := r.reportGenerator.GenerateDaily(path, report); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

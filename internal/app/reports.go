package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/dashboard"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/report_generator"
	"github.com/kurochkinivan/dashboard_client/internal/view"
)

// DailyReport shows the report for date (YYYY-MM-DD) and writes it to
// exportPath when one is given.
func (a *App) DailyReport(ctx context.Context, date, exportPath string) error {
	day, err := dashboard.ParseDate(date)
	if err != nil {
		return err
	}

	if err := checkExportPath(exportPath); err != nil {
		return err
	}

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	report, err := client.DailyReport(ctx, day)
	if err != nil {
		return err
	}

	view.DailyReport(a.out, report)

	if exportPath == "" {
		return nil
	}

	if err := a.reportGenerator().GenerateDaily(exportPath, report); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	a.log.InfoContext(ctx, "report exported", slog.String("path", exportPath))

	return nil
}

// MonthlyReport shows the report for month (YYYY-MM) and writes it to
// exportPath when one is given.
func (a *App) MonthlyReport(ctx context.Context, month, exportPath string) error {
	ym, err := dashboard.ParseMonth(month)
	if err != nil {
		return err
	}

	if err := checkExportPath(exportPath); err != nil {
		return err
	}

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	report, err := client.MonthlyReport(ctx, ym)
	if err != nil {
		return err
	}

	view.MonthlyReport(a.out, report)

	if exportPath == "" {
		return nil
	}

	if err := a.reportGenerator().GenerateMonthly(exportPath, report); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	a.log.InfoContext(ctx, "report exported", slog.String("path", exportPath))

	return nil
}

func checkExportPath(path string) error {
	if path == "" {
		return nil
	}

	_, err := report_generator.FormatOf(path)
	return err
}

func (a *App) SendReport(ctx context.Context, date, env string) error {
	day, err := dashboard.ParseDate(date)
	if err != nil {
		return err
	}

	environment, err := domain.ParseEnvironment(env)
	if err != nil {
		return err
	}

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	msg, err := client.SendReport(ctx, day, environment)
	if err != nil {
		return err
	}

	view.Message(a.out, msg)

	return nil
}

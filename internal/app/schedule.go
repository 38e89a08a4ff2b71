package app

import (
	"context"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/dashboard"
	"github.com/kurochkinivan/dashboard_client/internal/view"
)

func (a *App) ScheduleStatus(ctx context.Context) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	status, err := client.ScheduleStatus(ctx)
	if err != nil {
		return err
	}

	view.Schedule(a.out, status)

	return nil
}

// SetSchedule enables or disables the daily report. An empty at keeps the
// currently configured time.
func (a *App) SetSchedule(ctx context.Context, enabled bool, at string) error {
	if at != "" {
		if err := dashboard.ValidateScheduleTime(at); err != nil {
			return err
		}
	}

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	if at == "" {
		current, err := client.ScheduleStatus(ctx)
		if err != nil {
			return err
		}
		at = current.Time
	}

	msg, err := client.UpdateSchedule(ctx, domain.Schedule{Enabled: enabled, Time: at})
	if err != nil {
		return err
	}

	view.Message(a.out, msg)

	return nil
}

package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/view"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func (a *App) ListTeamLeaders(ctx context.Context) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	leaders, err := client.TeamLeaders(ctx)
	if err != nil {
		return err
	}

	view.TeamLeaders(a.out, leaders)

	return nil
}

func (a *App) AddTeamLeader(ctx context.Context, leader *domain.TeamLeader) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	msg, err := client.CreateTeamLeader(ctx, leader)
	if err != nil {
		return err
	}

	view.Message(a.out, msg)

	return nil
}

// UpdateTeamLeader changes the fields set in patch and keeps the rest of the
// current record.
func (a *App) UpdateTeamLeader(ctx context.Context, id int, patch domain.TeamLeader) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	leader, err := client.TeamLeader(ctx, id)
	if err != nil {
		return err
	}

	patch.Normalize()
	if patch.TeamName != "" {
		leader.TeamName = patch.TeamName
	}
	if patch.AccountID != "" {
		leader.AccountID = patch.AccountID
	}
	if patch.Name != "" {
		leader.Name = patch.Name
	}

	msg, err := client.UpdateTeamLeader(ctx, leader)
	if err != nil {
		return err
	}

	view.Message(a.out, msg)

	return nil
}

func (a *App) DeleteTeamLeader(ctx context.Context, id int) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	msg, err := client.DeleteTeamLeader(ctx, id)
	if err != nil {
		return err
	}

	view.Message(a.out, msg)

	return nil
}

// ImportTeamLeaders creates a team leader for every row of a roster CSV.
// Requests run concurrently behind a rate limit; a failed row is reported
// and does not stop the others.
func (a *App) ImportTeamLeaders(ctx context.Context, filename string) error {
	rows, err := parseRosterFile(filename)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return &domain.ValidationError{Reason: "roster has no rows"}
	}

	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	limiter := rate.NewLimiter(rate.Limit(a.cfg.RatePerSecond), 1)
	if a.cfg.RatePerSecond <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	results := make([]view.ImportResult, len(rows))

	erg, ctx := errgroup.WithContext(ctx)
	erg.SetLimit(max(a.cfg.Concurrency, 1))

	for i, row := range rows {
		results[i] = view.ImportResult{Line: row.Line, Leader: row.Leader, Err: row.Err}
		if row.Err != nil {
			continue
		}

		erg.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}

			if _, err := client.CreateTeamLeader(ctx, row.Leader); err != nil {
				results[i].Err = err
				a.log.WarnContext(ctx, "failed to import team leader",
					slog.Int("line", row.Line),
					slog.String("err", err.Error()),
				)
			}

			return nil
		})
	}

	if err := erg.Wait(); err != nil {
		return fmt.Errorf("import interrupted: %w", err)
	}

	view.ImportResults(a.out, results)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d roster rows failed", failed, len(results))
	}

	return nil
}

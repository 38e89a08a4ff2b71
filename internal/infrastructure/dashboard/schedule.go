package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

const scheduleTimeLayout = "15:04"

type scheduleResponse struct {
	Message string `json:"message"`
	domain.Schedule
}

func (c *Client) ScheduleStatus(ctx context.Context) (*domain.Schedule, error) {
	var resp scheduleResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/schedule/status", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get schedule status: %w", err)
	}

	return &resp.Schedule, nil
}

func (c *Client) UpdateSchedule(ctx context.Context, s domain.Schedule) (string, error) {
	if err := ValidateScheduleTime(s.Time); err != nil {
		return "", err
	}

	var resp scheduleResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/schedule/update", s, &resp); err != nil {
		return "", fmt.Errorf("failed to update schedule: %w", err)
	}

	return resp.Message, nil
}

func ValidateScheduleTime(s string) error {
	if _, err := time.Parse(scheduleTimeLayout, s); err != nil || len(s) != len(scheduleTimeLayout) {
		return &domain.ValidationError{Reason: fmt.Sprintf("invalid time %q, want 24h HH:MM", s)}
	}

	return nil
}

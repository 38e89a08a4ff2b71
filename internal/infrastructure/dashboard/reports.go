package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

type sendRequest struct {
	Date string             `json:"date"`
	Env  domain.Environment `json:"env"`
}

func (c *Client) DailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, error) {
	day := date.Format(DateLayout)

	var report domain.DailyReport
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports/daily/"+day, nil, &report); err != nil {
		return nil, fmt.Errorf("failed to get daily report for %s: %w", day, err)
	}

	return &report, nil
}

func (c *Client) MonthlyReport(ctx context.Context, month time.Time) (*domain.MonthlyReport, error) {
	ym := month.Format(MonthLayout)

	var report domain.MonthlyReport
	if err := c.doJSON(ctx, http.MethodGet, "/api/reports/monthly/"+ym, nil, &report); err != nil {
		return nil, fmt.Errorf("failed to get monthly report for %s: %w", ym, err)
	}

	return &report, nil
}

// SendReport asks the server to push the daily report for date to the
// messaging webhook of env.
func (c *Client) SendReport(ctx context.Context, date time.Time, env domain.Environment) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/send-to-wecom", sendRequest{
		Date: date.Format(DateLayout),
		Env:  env,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("failed to send report: %w", err)
	}

	return resp.Message, nil
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Reason: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s)}
	}

	return t, nil
}

func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Reason: fmt.Sprintf("invalid month %q, want YYYY-MM", s)}
	}

	return t, nil
}

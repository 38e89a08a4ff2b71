package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

type leadersResponse struct {
	Data []*domain.TeamLeader `json:"data"`
}

// TeamLeaders returns the roster, served from the cache while it is fresh.
func (c *Client) TeamLeaders(ctx context.Context) ([]*domain.TeamLeader, error) {
	if cached := c.roster.Get(rosterCacheKey); cached != nil {
		return cached, nil
	}

	var resp leadersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/team-leaders", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list team leaders: %w", err)
	}

	if resp.Data == nil {
		resp.Data = []*domain.TeamLeader{}
	}

	c.roster.Set(rosterCacheKey, resp.Data)

	return resp.Data, nil
}

// TeamLeader looks a record up in the roster; the API has no single-record
// endpoint.
func (c *Client) TeamLeader(ctx context.Context, id int) (*domain.TeamLeader, error) {
	leaders, err := c.TeamLeaders(ctx)
	if err != nil {
		return nil, err
	}

	for _, l := range leaders {
		if l.ID == id {
			found := *l
			return &found, nil
		}
	}

	return nil, &domain.ValidationError{Reason: fmt.Sprintf("team leader %d not found", id)}
}

func (c *Client) CreateTeamLeader(ctx context.Context, leader *domain.TeamLeader) (string, error) {
	body, err := validated(leader)
	if err != nil {
		return "", err
	}

	defer c.roster.Delete(rosterCacheKey)

	var resp messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/team-leaders", body, &resp); err != nil {
		return "", fmt.Errorf("failed to add team leader %q: %w", body.AccountID, err)
	}

	return resp.Message, nil
}

func (c *Client) UpdateTeamLeader(ctx context.Context, leader *domain.TeamLeader) (string, error) {
	body, err := validated(leader)
	if err != nil {
		return "", err
	}

	defer c.roster.Delete(rosterCacheKey)

	var resp messageResponse
	path := "/api/team-leaders/" + strconv.Itoa(leader.ID)
	if err := c.doJSON(ctx, http.MethodPut, path, body, &resp); err != nil {
		return "", fmt.Errorf("failed to update team leader %d: %w", leader.ID, err)
	}

	return resp.Message, nil
}

func (c *Client) DeleteTeamLeader(ctx context.Context, id int) (string, error) {
	defer c.roster.Delete(rosterCacheKey)

	var resp messageResponse
	path := "/api/team-leaders/" + strconv.Itoa(id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return "", fmt.Errorf("failed to delete team leader %d: %w", id, err)
	}

	return resp.Message, nil
}

func validated(leader *domain.TeamLeader) (*domain.TeamLeader, error) {
	body := *leader
	body.ID = 0
	body.Normalize()

	if err := body.Validate(); err != nil {
		return nil, &domain.ValidationError{Reason: err.Error()}
	}

	return &body, nil
}

package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
)

type filesResponse struct {
	Files []*domain.RemoteFile `json:"files"`
}

func (c *Client) Files(ctx context.Context) ([]*domain.RemoteFile, error) {
	var resp filesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/files", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return resp.Files, nil
}

func (c *Client) DeleteFile(ctx context.Context, filename string) (string, error) {
	if !uploader.IsZip(filename) {
		return "", &domain.ValidationError{Reason: fmt.Sprintf("only .zip files can be deleted, got %q", filename)}
	}

	var resp messageResponse
	err := c.doJSON(ctx, http.MethodDelete, "/api/files/"+url.PathEscape(filename), nil, &resp)
	if err != nil {
		return "", fmt.Errorf("failed to delete %q: %w", filename, err)
	}

	return resp.Message, nil
}

package uploader

import (
	"context"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

// Transport sends one multipart request carrying every file, in order.
type Transport interface {
	Upload(ctx context.Context, files []*domain.FileHandle, progress ProgressFunc) (*domain.UploadResponse, error)
}

// Refresher reloads the remote file listing after a successful upload.
type Refresher interface {
	Refresh(ctx context.Context)
}

type NopRenderer struct{}

func (NopRenderer) Render(Snapshot) {}

func (NopRenderer) Advise(string) {}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
	"github.com/kurochkinivan/dashboard_client/internal/view"
)

// Upload sends the given archives in one request and shows the per-file
// results followed by the refreshed remote listing.
func (a *App) Upload(ctx context.Context, paths []string) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	refresher := &filesRefresher{log: a.log, files: client, out: a.out}
	session := uploader.NewController(a.log, client, view.NewTerminal(a.out), refresher, a.cfg.MaxBytes)

	candidates := make([]*domain.FileHandle, 0, len(paths))
	for _, path := range paths {
		h, err := domain.FileHandleFromPath(path)
		if err != nil {
			return &domain.ValidationError{Reason: err.Error()}
		}
		candidates = append(candidates, h)
	}

	session.Select(candidates...)

	if err := session.Submit(ctx); err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}

	session.Wait()

	return nil
}

type remoteFiles interface {
	Files(ctx context.Context) ([]*domain.RemoteFile, error)
}

// filesRefresher reloads the remote listing after a successful upload. A nil
// out only logs the listing size.
type filesRefresher struct {
	log   *slog.Logger
	files remoteFiles
	out   io.Writer
}

func (r *filesRefresher) Refresh(ctx context.Context) {
	files, err := r.files.Files(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "failed to refresh file listing", slog.String("err", err.Error()))
		return
	}

	r.log.DebugContext(ctx, "file listing refreshed", slog.Int("files", len(files)))

	if r.out != nil {
		view.RemoteFiles(r.out, files)
	}
}

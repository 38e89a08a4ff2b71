package app

import (
	"context"

	"github.com/kurochkinivan/dashboard_client/internal/view"
)

func (a *App) ListFiles(ctx context.Context) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	files, err := client.Files(ctx)
	if err != nil {
		return err
	}

	view.RemoteFiles(a.out, files)

	return nil
}

func (a *App) DeleteFile(ctx context.Context, filename string) error {
	client, err := a.connect(ctx)
	if err != nil {
		return err
	}

	msg, err := client.DeleteFile(ctx, filename)
	if err != nil {
		return err
	}

	view.Message(a.out, msg)

	return nil
}

package pipeline

import (
	"context"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
)

type FilesProvider interface {
	Files(ctx context.Context) ([]*domain.File, error)
}

type FileUpdater interface {
	UpdateOrCreateFile(ctx context.Context, file *domain.File) error
}

// UploadSession is the part of the upload controller the submitter drives.
type UploadSession interface {
	AddFiles(candidates ...*domain.FileHandle)
	Pending() []*domain.FileHandle
	RemoveFile(position int) error
	ClearAll()
	Submit(ctx context.Context) error
	Snapshot() uploader.Snapshot
}

type ReportProvider interface {
	DailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, error)
}

type ReportGenerator interface {
	GenerateDaily(outputPath string, report *domain.DailyReport) error
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

// Submitter feeds scanned archives into the upload session and journals the
// per-file outcome of every upload. A failed upload keeps the selection and
// is retried on the next tick.
type Submitter struct {
	log           *slog.Logger
	retryInterval time.Duration
	files         <-chan string
	outcomes      chan<- *domain.UploadOutcome
	session       UploadSession
	fileUpdater   FileUpdater
}

func NewSubmitter(
	log *slog.Logger,
	retryInterval time.Duration,
	files <-chan string,
	outcomes chan<- *domain.UploadOutcome,
	session UploadSession,
	fileUpdater FileUpdater,
) *Submitter {
	return &Submitter{
		log:           log,
		retryInterval: retryInterval,
		files:         files,
		outcomes:      outcomes,
		session:       session,
		fileUpdater:   fileUpdater,
	}
}

func (s *Submitter) Run(ctx context.Context) error {
	defer close(s.outcomes)

	ticker := time.NewTicker(s.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case path, ok := <-s.files:
			if !ok {
				return nil
			}

			s.add(ctx, path)

			open := s.drain(ctx)
			if err := s.flush(ctx); err != nil {
				return err
			}

			if !open {
				return nil
			}

		case <-ticker.C:
			if len(s.session.Pending()) == 0 {
				continue
			}

			s.log.DebugContext(ctx, "retrying upload")

			if err := s.flush(ctx); err != nil {
				return err
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// drain adds every path already queued, so one scan cycle becomes one
// upload. It reports whether the channel is still open.
func (s *Submitter) drain(ctx context.Context) bool {
	for {
		select {
		case path, ok := <-s.files:
			if !ok {
				return false
			}
			s.add(ctx, path)
		default:
			return true
		}
	}
}

func (s *Submitter) add(ctx context.Context, path string) {
	handle, err := domain.FileHandleFromPath(path)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to open scanned file", slog.String("path", path), slog.String("err", err.Error()))
		s.markError(ctx, filepath.Base(path), err.Error())

		return
	}

	s.session.AddFiles(handle)
}

// flush uploads the current selection. Only a journal or context failure is
// returned; upload failures are logged and left for a retry.
func (s *Submitter) flush(ctx context.Context) error {
	s.pruneVanished(ctx)

	submitted := s.session.Pending()
	if len(submitted) == 0 {
		return nil
	}

	err := s.session.Submit(ctx)

	var validationErr *domain.ValidationError
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.As(err, &validationErr):
		// retrying cannot fix the selection itself
		for _, f := range submitted {
			s.markError(ctx, f.Name, err.Error())
		}
		s.session.ClearAll()

		return nil
	default:
		s.log.WarnContext(ctx, "upload failed, will retry",
			slog.Int("files", len(submitted)),
			slog.String("err", err.Error()),
		)

		return nil
	}

	resp := s.session.Snapshot().State.Outcomes
	if resp == nil {
		return nil
	}

	return s.settle(ctx, submitted, resp.Results)
}

func (s *Submitter) settle(ctx context.Context, submitted []*domain.FileHandle, results []*domain.UploadOutcome) error {
	matched := matchOutcomes(submitted, results)

	for i, f := range submitted {
		outcome := matched[i]
		if outcome == nil {
			s.markError(ctx, f.Name, "server reported no result for this file")
			continue
		}

		now := time.Now()
		file := &domain.File{Name: f.Name, Status: domain.StatusDone, ProcessedAt: &now}
		if !outcome.Success {
			file.Status = domain.StatusError
			file.ErrorMessage = outcome.Message
		}

		if err := s.fileUpdater.UpdateOrCreateFile(ctx, file); err != nil {
			return fmt.Errorf("failed to update file status: %w", err)
		}

		s.log.InfoContext(ctx, "file uploaded",
			slog.String("filename", f.Name),
			slog.Bool("success", outcome.Success),
			slog.String("message", outcome.Message),
		)

		select {
		case s.outcomes <- outcome:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// matchOutcomes pairs each submitted file with its result. The server
// reports one result per file in submission order under a sanitized name, so
// results are matched by position and by name only when the counts differ.
func matchOutcomes(submitted []*domain.FileHandle, results []*domain.UploadOutcome) []*domain.UploadOutcome {
	matched := make([]*domain.UploadOutcome, len(submitted))

	if len(results) == len(submitted) {
		copy(matched, results)
		return matched
	}

	byName := make(map[string]*domain.UploadOutcome, len(results))
	for _, r := range results {
		byName[r.Filename] = r
	}

	for i, f := range submitted {
		matched[i] = byName[f.Name]
	}

	return matched
}

// pruneVanished drops selected files deleted from disk since they were
// scanned, from the back so positions stay valid.
func (s *Submitter) pruneVanished(ctx context.Context) {
	pending := s.session.Pending()

	for i := len(pending) - 1; i >= 0; i-- {
		f := pending[i]
		if f.Path == "" {
			continue
		}

		if _, err := os.Stat(f.Path); err == nil {
			continue
		}

		if err := s.session.RemoveFile(i); err != nil {
			s.log.ErrorContext(ctx, "failed to remove vanished file", slog.String("err", err.Error()))
			continue
		}

		s.log.WarnContext(ctx, "file vanished before upload", slog.String("filename", f.Name))
		s.markError(ctx, f.Name, "file vanished before upload")
	}
}

func (s *Submitter) markError(ctx context.Context, name, reason string) {
	now := time.Now()

	err := s.fileUpdater.UpdateOrCreateFile(ctx, &domain.File{
		Name:         name,
		Status:       domain.StatusError,
		ErrorMessage: reason,
		ProcessedAt:  &now,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "failed to update file status",
			slog.String("filename", name),
			slog.String("err", err.Error()),
		)
	}
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/uploader"
)

const fileDateLayout = "20060102"

type Scanner struct {
	log           *slog.Logger
	watchDir      string
	scanInterval  time.Duration
	todayOnly     bool
	files         chan<- string
	filesProvider FilesProvider
	fileUpdater   FileUpdater
}

func NewScanner(
	log *slog.Logger,
	watchDir string,
	scanInterval time.Duration,
	todayOnly bool,
	files chan<- string,
	filesProvider FilesProvider,
	fileUpdater FileUpdater,
) *Scanner {
	return &Scanner{
		log:           log,
		watchDir:      watchDir,
		scanInterval:  scanInterval,
		todayOnly:     todayOnly,
		files:         files,
		filesProvider: filesProvider,
		fileUpdater:   fileUpdater,
	}
}

func (s *Scanner) Run(ctx context.Context) error {
	defer close(s.files)

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.log.DebugContext(ctx, "scan cycle started")

			err := s.scanFiles(ctx)
			if err != nil {
				s.log.ErrorContext(ctx, "failed to scan files", slog.String("err", err.Error()))
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Scanner) scanFiles(ctx context.Context) error {
	filesMap, err := s.extractFilesFromJournal(ctx)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(s.watchDir)
	if err != nil {
		return fmt.Errorf("failed to read directory %q: %w", s.watchDir, err)
	}

	today := time.Now().Format(fileDateLayout)

	for _, entry := range entries {
		if !s.accepts(entry, today) {
			continue
		}

		err := s.processEntry(ctx, entry, filesMap)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			s.log.ErrorContext(ctx, "failed process entry, skipping file",
				slog.String("filename", entry.Name()),
				slog.String("err", err.Error()),
			)
			continue
		}
	}

	return nil
}

func (s *Scanner) accepts(entry os.DirEntry, today string) bool {
	if entry.IsDir() || !uploader.IsZip(entry.Name()) {
		return false
	}

	return !s.todayOnly || strings.Contains(entry.Name(), today)
}

func (s *Scanner) extractFilesFromJournal(ctx context.Context) (map[string]domain.Status, error) {
	files, err := s.filesProvider.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get files: %w", err)
	}

	filesMap := make(map[string]domain.Status, len(files))
	for _, file := range files {
		filesMap[file.Name] = file.Status
	}

	return filesMap, nil
}

func (s *Scanner) processEntry(ctx context.Context, entry os.DirEntry, filesMap map[string]domain.Status) error {
	status, ok := filesMap[entry.Name()]
	if ok && status != domain.StatusPending {
		return nil
	}

	err := s.fileUpdater.UpdateOrCreateFile(ctx, &domain.File{
		Name:   entry.Name(),
		Status: domain.StatusProcessing,
	})
	if err != nil {
		return fmt.Errorf("failed to update file status: %w", err)
	}

	s.log.DebugContext(ctx, "updated file status to processing", slog.String("filename", entry.Name()))

	select {
	case s.files <- filepath.Join(s.watchDir, entry.Name()):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package journal_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"github.com/kurochkinivan/dashboard_client/internal/repository/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesRepository_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "journal.yaml")

	repo, err := journal.Open(log, path)
	require.NoError(t, err)

	files, err := repo.Files(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	processedAt := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateOrCreateFile(ctx, &domain.File{Name: "b_20240102.zip", Status: domain.StatusProcessing}))
	require.NoError(t, repo.UpdateOrCreateFile(ctx, &domain.File{
		Name:         "a_20240102.zip",
		Status:       domain.StatusError,
		ErrorMessage: "not a zip archive",
		ProcessedAt:  &processedAt,
	}))

	reopened, err := journal.Open(log, path)
	require.NoError(t, err)

	files, err = reopened.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "a_20240102.zip", files[0].Name)
	assert.Equal(t, domain.StatusError, files[0].Status)
	assert.Equal(t, "not a zip archive", files[0].ErrorMessage)
	require.NotNil(t, files[0].ProcessedAt)
	assert.True(t, processedAt.Equal(*files[0].ProcessedAt))

	assert.Equal(t, "b_20240102.zip", files[1].Name)
	assert.Equal(t, domain.StatusProcessing, files[1].Status)
}

func TestFilesRepository_UpdateOrCreateFile_Overwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, err := journal.Open(slog.New(slog.DiscardHandler), filepath.Join(t.TempDir(), "journal.yaml"))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateOrCreateFile(ctx, &domain.File{Name: "a.zip", Status: domain.StatusProcessing}))
	require.NoError(t, repo.UpdateOrCreateFile(ctx, &domain.File{Name: "a.zip", Status: domain.StatusDone}))

	files, err := repo.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.zip", files[0].Name)
	assert.Equal(t, domain.StatusDone, files[0].Status)
}

func TestFilesRepository_ResetProcessingFiles(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.yaml")

	repo, err := journal.Open(log, path)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateOrCreateFile(ctx, &domain.File{Name: "a.zip", Status: domain.StatusProcessing}))
	require.NoError(t, repo.UpdateOrCreateFile(ctx, &domain.File{Name: "b.zip", Status: domain.StatusDone}))

	require.NoError(t, repo.ResetProcessingFiles(ctx))

	reopened, err := journal.Open(log, path)
	require.NoError(t, err)

	files, err := reopened.Files(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, domain.StatusPending, files[0].Status)
	assert.Equal(t, domain.StatusDone, files[1].Status)
}

func TestOpen_CorruptJournal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("files: [unterminated"), 0o644))

	_, err := journal.Open(slog.New(slog.DiscardHandler), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode journal")
}

func TestFilesRepository_CanceledContext(t *testing.T) {
	t.Parallel()

	repo, err := journal.Open(slog.New(slog.DiscardHandler), filepath.Join(t.TempDir(), "journal.yaml"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = repo.UpdateOrCreateFile(ctx, &domain.File{Name: "a.zip", Status: domain.StatusPending})
	require.ErrorIs(t, err, context.Canceled)
}

package journal

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"gopkg.in/yaml.v3"
)

const filePerm = 0o644

// Open loads the journal at path, creating its directory if needed. A missing
// file is an empty journal.
func Open(log *slog.Logger, path string) (*FilesRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, createDirError(err)
	}

	r := &FilesRepository{
		path:  path,
		files: make(map[string]*domain.File),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debug("journal does not exist yet", slog.String("path", path))
		return r, nil
	case err != nil:
		return nil, readJournalError(err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, decodeJournalError(err)
	}

	for _, f := range doc.Files {
		if f == nil || f.Name == "" {
			continue
		}
		r.files[f.Name] = f
	}

	log.Debug("journal loaded", slog.String("path", path), slog.Int("files", len(r.files)))

	return r, nil
}

func (r *FilesRepository) saveLocked() error {
	data, err := yaml.Marshal(document{Files: r.snapshotLocked()})
	if err != nil {
		return encodeJournalError(err)
	}

	if err := writeFileAtomic(r.path, data, filePerm); err != nil {
		return writeJournalError(err)
	}

	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so readers never see a partial journal.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	tmpPath := f.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := f.Write(data); err != nil {
		return errors.Join(err, f.Close())
	}

	if err := f.Chmod(perm); err != nil {
		return errors.Join(err, f.Close())
	}

	if err := f.Sync(); err != nil {
		return errors.Join(err, f.Close())
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

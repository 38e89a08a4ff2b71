package journal

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

type document struct {
	Files []*domain.File `yaml:"files"`
}

// FilesRepository keeps the status of every archive the watcher has seen in
// a YAML file. Each mutation rewrites the whole file.
type FilesRepository struct {
	path string

	mu    sync.Mutex
	files map[string]*domain.File
}

func (r *FilesRepository) Files(ctx context.Context) ([]*domain.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshotLocked(), nil
}

func (r *FilesRepository) UpdateOrCreateFile(ctx context.Context, file *domain.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, existed := r.files[file.Name]

	cp := *file
	r.files[file.Name] = &cp

	if err := r.saveLocked(); err != nil {
		if existed {
			r.files[file.Name] = prev
		} else {
			delete(r.files, file.Name)
		}

		return err
	}

	return nil
}

// ResetProcessingFiles returns files left in processing by an interrupted
// run to pending, so the next scan picks them up again.
func (r *FilesRepository) ResetProcessingFiles(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var reset []*domain.File
	for _, f := range r.files {
		if f.Status == domain.StatusProcessing {
			f.Status = domain.StatusPending
			reset = append(reset, f)
		}
	}

	if len(reset) == 0 {
		return nil
	}

	if err := r.saveLocked(); err != nil {
		for _, f := range reset {
			f.Status = domain.StatusProcessing
		}

		return err
	}

	return nil
}

func (r *FilesRepository) snapshotLocked() []*domain.File {
	out := make([]*domain.File, 0, len(r.files))
	for _, f := range r.files {
		cp := *f
		out = append(out, &cp)
	}

	slices.SortFunc(out, func(a, b *domain.File) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out
}

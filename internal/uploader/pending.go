package uploader

import (
	"fmt"
	"slices"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

// PendingFileSet is the ordered, not yet uploaded selection. Duplicates are
// kept: selecting the same file twice yields two entries.
type PendingFileSet struct {
	files []*domain.FileHandle
}

func (s *PendingFileSet) Add(files ...*domain.FileHandle) {
	s.files = append(s.files, files...)
}

func (s *PendingFileSet) Remove(position int) error {
	if position < 0 || position >= len(s.files) {
		return &domain.ValidationError{
			Reason: fmt.Sprintf("position %d out of range [0;%d)", position, len(s.files)),
		}
	}

	s.files = slices.Delete(s.files, position, position+1)

	return nil
}

func (s *PendingFileSet) Clear() {
	s.files = nil
}

func (s *PendingFileSet) Len() int {
	return len(s.files)
}

func (s *PendingFileSet) TotalSize() int64 {
	var total int64
	for _, f := range s.files {
		total += f.Size
	}

	return total
}

// Files returns a copy safe to hand to another goroutine.
func (s *PendingFileSet) Files() []*domain.FileHandle {
	return slices.Clone(s.files)
}

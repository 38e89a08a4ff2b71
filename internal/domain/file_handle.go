package domain

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileHandle is a file selected for upload. Two handles for the same
// underlying file are distinct entries.
type FileHandle struct {
	Name string
	Size int64
	Path string // empty for in-memory handles

	open func() (io.ReadCloser, error)
}

func NewFileHandle(name string, size int64, open func() (io.ReadCloser, error)) *FileHandle {
	return &FileHandle{Name: name, Size: size, open: open}
}

func FileHandleFromBytes(name string, data []byte) *FileHandle {
	return NewFileHandle(name, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

func FileHandleFromPath(path string) (*FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory, not a file", path)
	}

	h := NewFileHandle(filepath.Base(path), info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path)
	})
	h.Path = path

	return h, nil
}

func (h *FileHandle) Open() (io.ReadCloser, error) {
	if h.open == nil {
		return nil, fmt.Errorf("file %q has no content", h.Name)
	}

	return h.open()
}

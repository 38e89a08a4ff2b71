package uploader

import (
	"path/filepath"
	"strings"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

const acceptedExtension = ".zip"

func IsZip(name string) bool {
	return strings.EqualFold(filepath.Ext(name), acceptedExtension)
}

// FilterZip splits candidates into accepted archives and rejected files,
// preserving the order of both.
func FilterZip(candidates []*domain.FileHandle) (accepted, rejected []*domain.FileHandle) {
	for _, c := range candidates {
		if IsZip(c.Name) {
			accepted = append(accepted, c)
		} else {
			rejected = append(rejected, c)
		}
	}

	return accepted, rejected
}

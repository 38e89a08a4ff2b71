package domain

import "time"

// File is a journal entry for a zip archive picked up by the watcher.
type File struct {
	Name         string     `yaml:"name"`
	Status       Status     `yaml:"status"`
	ErrorMessage string     `yaml:"error_message,omitempty"`
	ProcessedAt  *time.Time `yaml:"processed_at,omitempty"`
}

// RemoteFile is an archive already stored by the dashboard.
type RemoteFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

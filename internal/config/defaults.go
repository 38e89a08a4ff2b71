package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultURL           = "http://localhost:5000"
	DefaultMaxUploadSize = 100 << 20
)

// file mirrors the YAML keys read by the command's altsrc sources.
type file struct {
	Server struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"server"`
	Auth struct {
		Username string `yaml:"username"`
	} `yaml:"auth"`
	Upload struct {
		MaxBytes   int64  `yaml:"max_bytes"`
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"upload"`
	Watch struct {
		Dir       string `yaml:"dir"`
		Interval  string `yaml:"interval"`
		TodayOnly bool   `yaml:"today_only"`
		Journal   string `yaml:"journal"`
	} `yaml:"watch"`
	Reports struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"`
		Font   string `yaml:"font"`
	} `yaml:"reports"`
	Import struct {
		Rate        float64 `yaml:"rate"`
		Concurrency int     `yaml:"concurrency"`
	} `yaml:"import"`
	Cache struct {
		TTL string `yaml:"ttl"`
	} `yaml:"cache"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func defaults() file {
	var f file
	f.Server.URL = DefaultURL
	f.Server.Timeout = "0s"
	f.Upload.MaxBytes = DefaultMaxUploadSize
	f.Watch.Dir = "file"
	f.Watch.Interval = "1m"
	f.Watch.Journal = "journal.yaml"
	f.Reports.Dir = "reports"
	f.Reports.Format = "pdf"
	f.Import.Rate = 5
	f.Import.Concurrency = 4
	f.Cache.TTL = "30s"
	f.Log.Level = "info"
	return f
}

// WriteDefault creates a config file with default values. It never
// overwrites an existing file. The password is not part of the file; it is
// read from DASHBOARD_PASSWORD.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%q already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	data, err := yaml.Marshal(defaults())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

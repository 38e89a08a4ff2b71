package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

type Config struct {
	LogLevel string

	Dashboard
	Upload
	Watch
	Reports
	Import
}

type Dashboard struct {
	URL      string
	Timeout  time.Duration
	Username string
	Password string
	CacheTTL time.Duration
}

type Upload struct {
	MaxBytes   int64
	WebhookURL string
}

type Watch struct {
	WatchDirectory string
	ScanInterval   time.Duration
	TodayOnly      bool
	JournalPath    string
}

type Reports struct {
	ReportsDirectory string
	ReportsFormat    string
	FontPath         string
}

type Import struct {
	RatePerSecond float64
	Concurrency   int
}

func Load(cmd *cli.Command) *Config {
	return &Config{
		LogLevel: cmd.String("log-level"),
		Dashboard: Dashboard{
			URL:      cmd.String("server-url"),
			Timeout:  cmd.Duration("server-timeout"),
			Username: cmd.String("username"),
			Password: cmd.String("password"),
			CacheTTL: cmd.Duration("cache-ttl"),
		},
		Upload: Upload{
			MaxBytes:   int64(cmd.Int("max-upload-bytes")),
			WebhookURL: cmd.String("webhook-url"),
		},
		Watch: Watch{
			WatchDirectory: cmd.String("watch-dir"),
			ScanInterval:   cmd.Duration("watch-interval"),
			TodayOnly:      cmd.Bool("today-only"),
			JournalPath:    cmd.String("journal"),
		},
		Reports: Reports{
			ReportsDirectory: cmd.String("reports-dir"),
			ReportsFormat:    cmd.String("reports-format"),
			FontPath:         cmd.String("reports-font"),
		},
		Import: Import{
			RatePerSecond: cmd.Float("import-rate"),
			Concurrency:   int(cmd.Int("import-concurrency")),
		},
	}
}

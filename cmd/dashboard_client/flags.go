package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kurochkinivan/dashboard_client/internal/config"
	"github.com/kurochkinivan/dashboard_client/internal/infrastructure/report_generator"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

func flags() []cli.Flag {
	var configFile string

	source := func(key string) cli.ValueSourceChain {
		return cli.NewValueSourceChain(yaml.YAML(key, altsrc.NewStringPtrSourcer(&configFile)))
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Validator:   validateConfig,
			Usage:       "Load configuration from `FILE`",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:      "log-level",
			Usage:     "Set log level (debug, info, warn, error)",
			Value:     "info",
			Sources:   source("log.level"),
			Validator: validateLogLevel,
		},
		&cli.StringFlag{
			Name:    "server-url",
			Aliases: []string{"u"},
			Usage:   "Set dashboard base URL",
			Value:   config.DefaultURL,
			Sources: source("server.url"),
		},
		&cli.DurationFlag{
			Name:    "server-timeout",
			Usage:   "Set request timeout, 0 disables it",
			Sources: source("server.timeout"),
		},
		&cli.StringFlag{
			Name:    "username",
			Usage:   "Log in as `USER` before calling the API",
			Sources: source("auth.username"),
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "Set dashboard password",
			Sources: cli.EnvVars("DASHBOARD_PASSWORD"),
		},
		&cli.DurationFlag{
			Name:    "cache-ttl",
			Usage:   "Set how long the team leader roster is cached",
			Value:   30 * time.Second,
			Sources: source("cache.ttl"),
		},
		&cli.IntFlag{
			Name:    "max-upload-bytes",
			Usage:   "Set upload size limit, 0 disables the local check",
			Value:   config.DefaultMaxUploadSize,
			Sources: source("upload.max_bytes"),
		},
		&cli.StringFlag{
			Name:    "webhook-url",
			Usage:   "Set WeCom webhook `URL` the server notifies after processing an upload",
			Sources: source("upload.webhook_url"),
		},
		&cli.StringFlag{
			Name:      "watch-dir",
			Aliases:   []string{"w"},
			Usage:     "Set directory to watch for new archives",
			Value:     "file",
			Sources:   source("watch.dir"),
			Validator: validateDirectory,
		},
		&cli.DurationFlag{
			Name:    "watch-interval",
			Aliases: []string{"s"},
			Usage:   "Set directory scan interval",
			Value:   time.Minute,
			Sources: source("watch.interval"),
		},
		&cli.BoolFlag{
			Name:    "today-only",
			Usage:   "Only upload archives named with today's date",
			Sources: source("watch.today_only"),
		},
		&cli.StringFlag{
			Name:    "journal",
			Usage:   "Set journal `FILE` of processed archives",
			Value:   "journal.yaml",
			Sources: source("watch.journal"),
		},
		&cli.StringFlag{
			Name:    "reports-dir",
			Aliases: []string{"r"},
			Usage:   "Set directory to write reports to",
			Value:   "reports",
			Sources: source("reports.dir"),
		},
		&cli.StringFlag{
			Name:      "reports-format",
			Usage:     "Set report format (pdf, xlsx, csv)",
			Value:     string(report_generator.FormatPDF),
			Sources:   source("reports.format"),
			Validator: validateFormat,
		},
		&cli.StringFlag{
			Name:      "reports-font",
			Usage:     "Set TrueType `FILE` with CJK glyphs for PDF reports, found among system fonts when empty",
			Sources:   source("reports.font"),
			Validator: validateFont,
		},
		&cli.FloatFlag{
			Name:    "import-rate",
			Usage:   "Set roster import requests per second, 0 disables the limit",
			Value:   5,
			Sources: source("import.rate"),
		},
		&cli.IntFlag{
			Name:    "import-concurrency",
			Usage:   "Set number of concurrent roster import requests",
			Value:   4,
			Sources: source("import.concurrency"),
		},
	}
}

func validateDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", dir)
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	return nil
}

func validateConfig(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", path)
		}
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", path)
	}

	ext := filepath.Ext(info.Name())
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", path)
	}

	return nil
}

func validateFormat(format string) error {
	_, err := report_generator.ParseFormat(format)
	return err
}

func validateFont(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", path)
		}
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", path)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".ttf" {
		return fmt.Errorf("font %q must be a .ttf file", path)
	}

	return nil
}

func validateLogLevel(level string) error {
	_, err := parseLevel(level)
	return err
}

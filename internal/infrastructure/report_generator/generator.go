package report_generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatPDF, FormatXLSX, FormatCSV:
		return f, nil
	default:
		return "", &domain.ValidationError{Reason: fmt.Sprintf("unsupported report format %q, want pdf, xlsx or csv", s)}
	}
}

// FormatOf derives the export format from the extension of path.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", &domain.ValidationError{Reason: fmt.Sprintf("export path %q has no extension", path)}
	}

	return ParseFormat(ext)
}

// fontCandidates are TrueType fonts with CJK glyphs shipped by common
// systems. Collections (.ttc) and CFF fonts cannot be embedded.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/google-droid-sans-fonts/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"C:/Windows/Fonts/simhei.ttf",
	"C:/Windows/Fonts/simkai.ttf",
}

// FindFont returns the first installed CJK TrueType font, or "" when there
// is none.
func FindFont() string {
	for _, path := range fontCandidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}

	return ""
}

type Generator struct {
	fontPath string
}

// New creates a generator. PDF reports embed the TrueType font at fontPath;
// with an empty fontPath they use a core font, which covers Latin-1 only.
func New(fontPath string) *Generator {
	return &Generator{fontPath: fontPath}
}

func (g *Generator) GenerateDaily(outputPath string, report *domain.DailyReport) error {
	format, err := FormatOf(outputPath)
	if err != nil {
		return err
	}

	if err := ensureDir(outputPath); err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return writeCSV(outputPath, report.Ranked())
	case FormatXLSX:
		return writeXLSX(outputPath, dailySheet(report))
	default:
		return writePDF(outputPath, dailySheet(report), g.fontPath)
	}
}

func (g *Generator) GenerateMonthly(outputPath string, report *domain.MonthlyReport) error {
	format, err := FormatOf(outputPath)
	if err != nil {
		return err
	}

	if err := ensureDir(outputPath); err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return writeCSV(outputPath, report.Ranked())
	case FormatXLSX:
		return writeXLSX(outputPath, monthlySheet(report))
	default:
		return writePDF(outputPath, monthlySheet(report), g.fontPath)
	}
}

func ensureDir(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	return nil
}

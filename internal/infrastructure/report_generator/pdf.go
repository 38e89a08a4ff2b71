package report_generator

import (
	"fmt"
	"unicode"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/kurochkinivan/dashboard_client/internal/domain"
)

const (
	titleHeight = 12
	lineHeight  = 6
	rowHeight   = 7

	reportFontFamily = "report-cjk"
)

func writePDF(outputPath string, s *sheet, fontPath string) error {
	builder := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10)

	if fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(reportFontFamily, fontstyle.Normal, fontPath).
			AddUTF8Font(reportFontFamily, fontstyle.Bold, fontPath).
			Load()
		if err != nil {
			return fmt.Errorf("failed to load font %q: %w", fontPath, err)
		}

		builder = builder.
			WithCustomFonts(fonts).
			WithDefaultFont(&props.Font{Family: reportFontFamily})
	} else if !s.latin1() {
		return &domain.ValidationError{
			Reason: "report contains non-Latin text, a TrueType CJK font is required for pdf export (set reports.font)",
		}
	}

	m := maroto.New(builder.Build())

	m.AddRow(titleHeight, text.NewCol(12, s.Title, props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))

	for _, line := range s.Summary {
		m.AddRow(lineHeight, text.NewCol(12, line, props.Text{Size: 10}))
	}

	m.AddRow(lineHeight)
	m.AddRow(rowHeight, cells(s.Headers, s.Widths, props.Text{Size: 10, Style: fontstyle.Bold, Top: 1})...)

	for _, row := range s.Rows {
		m.AddRow(rowHeight, cells(row, s.Widths, props.Text{Size: 9, Top: 1})...)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate pdf: %w", err)
	}

	if err := doc.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save pdf: %w", err)
	}

	return nil
}

func cells(values []string, widths []int, p props.Text) []core.Col {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, text.NewCol(widths[i], v, p))
	}

	return cols
}

// latin1 reports whether the core PDF fonts can encode every cell.
func (s *sheet) latin1() bool {
	lines := [][]string{{s.Title}, s.Summary, s.Headers}
	lines = append(lines, s.Rows...)

	for _, line := range lines {
		for _, v := range line {
			for _, r := range v {
				if r > unicode.MaxLatin1 {
					return false
				}
			}
		}
	}

	return true
}

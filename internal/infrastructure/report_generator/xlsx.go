package report_generator

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

func writeXLSX(outputPath string, s *sheet) (err error) {
	f := excelize.NewFile()
	defer func() { err = errors.Join(err, f.Close()) }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	line := 1
	if err := setRow(f, line, []string{s.Title}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", bold); err != nil {
		return fmt.Errorf("failed to style title: %w", err)
	}

	for _, text := range s.Summary {
		line++
		if err := setRow(f, line, []string{text}); err != nil {
			return err
		}
	}

	line += 2
	if err := setRow(f, line, s.Headers); err != nil {
		return err
	}

	first, _ := excelize.CoordinatesToCellName(1, line)
	last, _ := excelize.CoordinatesToCellName(len(s.Headers), line)
	if err := f.SetCellStyle(sheetName, first, last, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for _, row := range s.Rows {
		line++
		if err := setRow(f, line, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "B", "D", 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save xlsx: %w", err)
	}

	return nil
}

func setRow(f *excelize.File, line int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}

	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}

	if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", line, err)
	}

	return nil
}

package report_generator

import (
	"fmt"
	"os"

	"github.com/jszwec/csvutil"
)

func writeCSV[T any](outputPath string, rows []T) error {
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode csv: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}

package journal

import "fmt"

func createDirError(err error) error {
	return fmt.Errorf("failed to create journal directory: %w", err)
}

func readJournalError(err error) error {
	return fmt.Errorf("failed to read journal: %w", err)
}

func decodeJournalError(err error) error {
	return fmt.Errorf("failed to decode journal: %w", err)
}

func encodeJournalError(err error) error {
	return fmt.Errorf("failed to encode journal: %w", err)
}

func writeJournalError(err error) error {
	return fmt.Errorf("failed to write journal: %w", err)
}

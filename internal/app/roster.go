package app

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/jszwec/csvutil"
	"github.com/kurochkinivan/dashboard_client/internal/domain"
	"golang.org/x/text/encoding/simplifiedchinese"
)

var utf8BOM = []byte("\xef\xbb\xbf")

type rosterRow struct {
	Line   int
	Leader *domain.TeamLeader
	Err    error
}

func parseRosterFile(filename string) ([]rosterRow, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	data, err = toUTF8(data)
	if err != nil {
		return nil, err
	}

	return parseRoster(bytes.NewReader(data))
}

// toUTF8 accepts UTF-8 with or without a BOM and falls back to GBK, the
// encoding spreadsheet tools use for Chinese CSV exports.
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("roster is neither UTF-8 nor GBK: %w", err)
	}

	return decoded, nil
}

// parseRoster decodes rows under the header team_name,account_id,name. A
// row that fails validation is returned with its error instead of aborting
// the whole file.
func parseRoster(r io.Reader) ([]rosterRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ValidationError{Reason: "roster is empty"}
		}
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	for _, column := range []string{"team_name", "account_id", "name"} {
		if !hasColumn(dec.Header(), column) {
			return nil, &domain.ValidationError{Reason: fmt.Sprintf("roster header has no %q column", column)}
		}
	}

	var rows []rosterRow
	for line := 2; ; line++ {
		var leader domain.TeamLeader

		err := dec.Decode(&leader)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return rows, fmt.Errorf("failed to decode roster line %d: %w", line, err)
			}

			rows = append(rows, rosterRow{Line: line, Err: err})
			continue
		}

		leader.Normalize()
		row := rosterRow{Line: line, Leader: &leader}
		if err := leader.Validate(); err != nil {
			row.Err = err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}

	return false
}

package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of an XLSX workbook into a Table. The
// first row is the header; cells arrive as strings and go through the
// same coercion as CSV cells downstream. maxRows <= 0 means unlimited.
func ReadXLSX(r io.Reader, maxRows int) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFile, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := rows[0]
	var out Table
	for _, record := range rows[1:] {
		if maxRows > 0 && len(out) >= maxRows {
			return nil, ErrTooManyRow
		}
		if isBlank(record) {
			continue
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}

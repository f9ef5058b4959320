package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Delimiters tried during sniffing, in preference order for ties.
var csvDelimiters = []rune{';', ',', '\t', '|'}

// ReadCSV parses a delimited text file into a Table. The delimiter is
// sniffed from the header line, a UTF-8 BOM is tolerated, and ragged
// rows are padded or truncated to the header width. maxRows <= 0 means
// unlimited.
func ReadCSV(r io.Reader, maxRows int) (Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFile, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyFile
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = sniffDelimiter(raw)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoHeader, err)
	}

	var out Table
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFile, err)
		}
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

// sniffDelimiter counts candidate delimiters on the header line and
// picks the most frequent one.
func sniffDelimiter(raw []byte) rune {
	line := string(raw)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	best := csvDelimiters[0]
	bestCount := 0
	for _, d := range csvDelimiters {
		if c := strings.Count(line, string(d)); c > bestCount {
			best = d
			bestCount = c
		}
	}
	return best
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for uploads that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format, use CSV or XLSX")

// RawRow is one uploaded spreadsheet row: loosely typed cell text keyed by
// the canonicalized (lowercase_underscore) column name.
type RawRow map[string]string

var nonKeyChars = regexp.MustCompile(`[^a-z0-9_]`)

// canonicalKey normalizes a header cell to the lowercase_underscore form the
// normalizer expects, e.g. "Debit Amount" -> "debit_amount".
func canonicalKey(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	key = strings.ReplaceAll(key, " ", "_")
	return nonKeyChars.ReplaceAllString(key, "")
}

// ReadRows parses an uploaded file into raw rows, dispatching on the file
// extension. The first row is the header.
func ReadRows(filename string, r io.Reader) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ReadCSV parses CSV bytes into raw rows.
func ReadCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rowsFromRecords(records), nil
}

// ReadXLSX parses the first sheet of an XLSX workbook into raw rows.
func ReadXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("xlsx has no sheets")
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %s: %w", sheet, err)
	}
	return rowsFromRecords(records), nil
}

func rowsFromRecords(records [][]string) []RawRow {
	if len(records) == 0 {
		return nil
	}

	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		header[i] = canonicalKey(cell)
	}

	rows := make([]RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(RawRow, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			row[key] = value
		}
		rows = append(rows, row)
	}
	return rows
}

package task

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row maps a column label to its raw cell value.
type Row map[string]string

var errNoHeader = errors.New("no header row")

// ParseCSV reads delimited text whose first record is the header row.
// Blank lines are skipped and ragged rows are accepted; broken quoting, an
// empty document or an HTML page fail with *SourceFormatError.
func ParseCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(512); looksLikeHTML(head) {
		return nil, &SourceFormatError{Err: errors.New("received an HTML page instead of CSV (is the sheet published?)")}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &SourceFormatError{Line: pe.Line, Err: pe.Err}
		}
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	if len(records) == 0 {
		return nil, &SourceFormatError{Err: errNoHeader}
	}
	return RowsFromRecords(records), nil
}

// RowsFromRecords turns a header record plus data records into rows.
// Cells missing from short records are absent; empty records are skipped.
// A repeated header label keeps its first column.
func RowsFromRecords(records [][]string) []Row {
	if len(records) == 0 {
		return nil
	}
	// keys[i] is empty for blank labels and for labels that repeat an
	// earlier one once case and spacing are ignored.
	header := make([]string, len(records[0]))
	keys := make([]string, len(records[0]))
	seen := make(map[string]bool, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		header[i] = h
		if key := normalizeHeader(h); key != "" && !seen[key] {
			seen[key] = true
			keys[i] = key
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		row := make(Row, len(header))
		for i, h := range header {
			if i >= len(rec) || keys[i] == "" {
				continue
			}
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows
}

func looksLikeHTML(head []byte) bool {
	head = bytes.ToLower(bytes.TrimSpace(bytes.TrimPrefix(head, []byte("\uFEFF"))))
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Row maps a column name to its raw string value. Key order follows the
// owning Dataset's Columns; every row of one dataset has exactly that key set.
type Row map[string]string

// Dataset is the in-memory form of one uploaded tabular file. It is replaced
// wholesale when a new file is loaded, never merged.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// DuplicateColumnError reports a header with a repeated column name. Lookups
// on a row would be ambiguous, so such input is rejected outright.
type DuplicateColumnError struct {
	Name string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column name %q in header", e.Name)
}

// Parse converts raw comma-separated text into a Dataset.
//
// Lines that are blank after trimming are discarded; if nothing remains the
// result is an empty dataset, not an error. The first remaining line is the
// header, split on commas with each field trimmed. Data lines are split the
// same way and accepted only when their field count matches the header's;
// mismatched lines are data-quality noise and are dropped silently. No type
// inference, quoting or encoding detection is attempted.
func Parse(raw string) (*Dataset, error) {
	var lines []string
	for _, ln := range strings.Split(raw, "\n") {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
	}
	if len(lines) == 0 {
		return &Dataset{}, nil
	}

	header := splitFields(lines[0])
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, ok := seen[name]; ok {
			return nil, &DuplicateColumnError{Name: name}
		}
		seen[name] = struct{}{}
	}

	ds := &Dataset{Columns: header}
	for _, ln := range lines[1:] {
		fields := splitFields(ln)
		if len(fields) != len(header) {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			row[name] = fields[i]
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Empty reports whether the dataset has no data rows.
func (d *Dataset) Empty() bool { return len(d.Rows) == 0 }

// Head returns up to n rows as positional records in column order,
// suitable for table rendering.
func (d *Dataset) Head(n int) [][]string {
	if n <= 0 || n > len(d.Rows) {
		n = len(d.Rows)
	}
	out := make([][]string, 0, n)
	for _, row := range d.Rows[:n] {
		rec := make([]string, len(d.Columns))
		for i, name := range d.Columns {
			rec[i] = row[name]
		}
		out = append(out, rec)
	}
	return out
}

// ColumnProfile counts blunt value kinds observed in one column.
type ColumnProfile struct {
	Name    string
	Numeric int
	Text    int
	Empty   int
}

// Profile inspects at most limit rows (all rows when limit <= 0) and reports
// per-column kind counts. Purely informational; parsing never depends on it.
func (d *Dataset) Profile(limit int) []ColumnProfile {
	if limit <= 0 || limit > len(d.Rows) {
		limit = len(d.Rows)
	}
	out := make([]ColumnProfile, len(d.Columns))
	for i, name := range d.Columns {
		out[i].Name = name
		for _, row := range d.Rows[:limit] {
			v := row[name]
			switch {
			case v == "":
				out[i].Empty++
			case isNumeric(v):
				out[i].Numeric++
			default:
				out[i].Text++
			}
		}
	}
	return out
}

func isNumeric(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Row maps column name to normalized value.
type Row map[string]Value

// Get returns the value for column, or null when the column is absent.
func (r Row) Get(column string) Value {
	if r == nil {
		return Null()
	}
	return r[column]
}

// Dataset is an ordered set of rows parsed from one CSV file.
type Dataset struct {
	ID       string
	Name     string
	LoadedAt time.Time

	columns []string
	rows    []Row
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Empty reports whether the dataset is nil or has no rows.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// Rows returns the rows in file order.
func (d *Dataset) Rows() []Row {
	if d == nil {
		return nil
	}
	return d.rows
}

// Columns returns each header name once, at the position it first appeared.
func (d *Dataset) Columns() []string {
	if d == nil {
		return nil
	}
	return d.columns
}

// Column collects the values of one column across all rows.
func (d *Dataset) Column(name string) []Value {
	out := make([]Value, 0, d.Len())
	for _, r := range d.Rows() {
		out = append(out, r.Get(name))
	}
	return out
}

// Find returns the first row whose column holds the string s.
func (d *Dataset) Find(column, s string) (Row, bool) {
	for _, r := range d.Rows() {
		v := r.Get(column)
		if v.IsString() && v.Text() == s {
			return r, true
		}
	}
	return nil, false
}

// LoadFile reads a CSV file from disk and parses it.
func LoadFile(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return Parse(filepath.Base(path), string(b)), nil
}

// Parse builds a Dataset from raw CSV text. Lines are split on '\n' and
// fields on ','; quoted fields are not supported. Blank lines are skipped,
// the first remaining line is the header, missing trailing fields are null
// and extra trailing fields are dropped.
func Parse(name, text string) *Dataset {
	d := &Dataset{
		ID:       uuid.NewString(),
		Name:     name,
		LoadedAt: time.Now(),
	}
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return d
	}

	header := strings.Split(lines[0], ",")
	seen := make(map[string]bool, len(header))
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		if !seen[header[i]] {
			seen[header[i]] = true
			d.columns = append(d.columns, header[i])
		}
	}

	d.rows = make([]Row, 0, len(lines)-1)
	for _, l := range lines[1:] {
		vals := strings.Split(l, ",")
		row := make(Row, len(d.columns))
		for i, h := range header {
			if i >= len(vals) {
				row[h] = Null()
				continue
			}
			row[h] = NormalizeNumeric(vals[i])
		}
		d.rows = append(d.rows, row)
	}
	return d
}

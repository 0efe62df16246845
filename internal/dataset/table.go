// Package dataset owns the cleaning stage between raw extraction output
// and the canonical table the datastore loads: header normalization,
// duplicate-name resolution under an explicit policy, and persistence as
// CSV or XLSX.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pharmakit/interaction-checker/internal/textnorm"
)

// Table is an in-memory tabular dataset with normalized column names.
// Rows are attribute bags keyed by column.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// renames maps normalized source headers onto the canonical column names
// the API layer expects.
var renames = map[string]string{
	"name":          "drug_name",
	"drug":          "drug_name",
	"drug_name":     "drug_name",
	"enzyme_s":      "enzymes",
	"enzyme":        "enzymes",
	"enzymes":       "enzymes",
	"transporter_s": "transporters",
	"transporter":   "transporters",
	"transporters":  "transporters",
}

func canonicalColumn(raw string) string {
	c := textnorm.ColumnName(raw)
	if r, ok := renames[c]; ok {
		return r
	}
	return c
}

// ReadCSV loads a delimited table, normalizing headers (lowercase,
// spaces to underscores, rename map) and cleaning every cell. Rows with
// an empty drug_name after normalization are dropped. Missing file or a
// header without a derivable drug_name column is an error.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()
	return readCSV(f, path)
}

func readCSV(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows from earlier stages

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}

	cols := make([]string, len(header))
	hasName := false
	for i, h := range header {
		cols[i] = canonicalColumn(h)
		if cols[i] == "drug_name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, fmt.Errorf("table %s missing required column drug_name (found: %s)",
			name, strings.Join(cols, ", "))
	}

	t := &Table{Columns: cols}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row of %s: %w", name, err)
		}
		row := make(map[string]string, len(cols))
		for i, col := range cols {
			if i < len(rec) {
				row[col] = textnorm.Clean(rec[i])
			} else {
				row[col] = ""
			}
		}
		row["drug_name"] = strings.ToLower(strings.TrimSpace(row["drug_name"]))
		if row["drug_name"] == "" {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteCSV persists the table with its columns in order.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", row["drug_name"], err)
		}
	}
	w.Flush()
	return w.Error()
}

// Package store loads the canonical drug table once at startup and
// serves name-keyed lookups for the rest of the process lifetime. The
// store is immutable after Load, so concurrent readers need no locking;
// a new table means a new process.
package store

import (
	"sort"
	"strings"

	"github.com/pharmakit/interaction-checker/internal/common"
	"github.com/pharmakit/interaction-checker/internal/dataset"
)

// coreColumns are the fields with first-class meaning; everything else
// in the table is exposed as an open-ended attribute bag.
var coreColumns = map[string]struct{}{
	"drug_name":    {},
	"enzymes":      {},
	"transporters": {},
}

// Record is the full per-drug row as loaded.
type Record struct {
	Name         string
	Enzymes      string
	Transporters string
	Attrs        map[string]string
}

// Store is the immutable in-memory index over the canonical table.
type Store struct {
	path    string
	records map[string]Record
	names   []string // sorted
	attrs   []string // non-core column names observed, sorted
}

// NormalizeName maps any user-supplied drug name onto the lookup key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Load reads the canonical table and builds the index. A missing file or
// a header without drug_name is a fatal configuration error.
func Load(path string) (*Store, error) {
	tbl, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, common.ConfigError("load drug interaction table", err)
	}

	s := &Store{
		path:    path,
		records: make(map[string]Record, len(tbl.Rows)),
	}

	attrSet := make(map[string]struct{})
	for _, col := range tbl.Columns {
		if _, core := coreColumns[col]; !core {
			attrSet[col] = struct{}{}
		}
	}

	for _, row := range tbl.Rows {
		name := NormalizeName(row["drug_name"])
		rec := Record{
			Name:         name,
			Enzymes:      row["enzymes"],
			Transporters: row["transporters"],
			Attrs:        make(map[string]string, len(attrSet)),
		}
		for col := range attrSet {
			rec.Attrs[col] = row[col]
		}
		s.records[name] = rec
	}

	s.names = make([]string, 0, len(s.records))
	for name := range s.records {
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)

	s.attrs = make([]string, 0, len(attrSet))
	for col := range attrSet {
		s.attrs = append(s.attrs, col)
	}
	sort.Strings(s.attrs)

	return s, nil
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string { return s.path }

// Len is the number of distinct drugs loaded.
func (s *Store) Len() int { return len(s.records) }

// AttributeColumns lists the non-core columns present in the table.
func (s *Store) AttributeColumns() []string { return s.attrs }

// Lookup returns the raw record for an already-normalized key.
func (s *Store) Lookup(name string) (Record, bool) {
	rec, ok := s.records[name]
	return rec, ok
}

// DrugInfo is the lookup result exposed to callers. Found distinguishes
// an absent drug from one present with empty fields; Enzymes and
// Transporters are nil when empty after trimming.
type DrugInfo struct {
	Name         string            `json:"name"`
	Enzymes      *string           `json:"enzymes"`
	Transporters *string           `json:"transporters"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	Found        bool              `json:"found"`
}

// Get looks a drug up by any spelling of its name.
func (s *Store) Get(name string) DrugInfo {
	key := NormalizeName(name)
	rec, ok := s.records[key]
	if !ok {
		return DrugInfo{Name: key, Found: false}
	}

	info := DrugInfo{Name: key, Found: true}
	if v := strings.TrimSpace(rec.Enzymes); v != "" {
		info.Enzymes = &v
	}
	if v := strings.TrimSpace(rec.Transporters); v != "" {
		info.Transporters = &v
	}
	attrs := make(map[string]string)
	for col, val := range rec.Attrs {
		if strings.TrimSpace(val) != "" {
			attrs[col] = val
		}
	}
	if len(attrs) > 0 {
		info.Attributes = attrs
	}
	return info
}

// Search returns every known name containing the query as a substring,
// in sorted key order, truncated to limit. An empty query matches
// nothing rather than everything.
func (s *Store) Search(query string, limit int) []string {
	q := NormalizeName(query)
	if q == "" {
		return nil
	}
	matches := make([]string, 0, limit)
	for _, name := range s.names {
		if strings.Contains(name, q) {
			matches = append(matches, name)
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pharmakit/interaction-checker/internal/textnorm"
)

// Policy selects how repeated drug names are resolved during cleaning.
// The two policies come from different pipeline variants and the caller
// must pick one explicitly.
type Policy int

const (
	// FirstWins keeps the first fully-formed record per drug name and
	// discards later occurrences as noise.
	FirstWins Policy = iota
	// UnionMerge accumulates enzyme and transporter token sets across
	// all occurrences of a name, so partial evidence scattered over
	// table fragments is not lost. Rows with no recognizable enzyme or
	// transporter family token contribute nothing at all.
	UnionMerge
)

func (p Policy) String() string {
	switch p {
	case FirstWins:
		return "first"
	case UnionMerge:
		return "union"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy maps the CLI flag values onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "first-wins":
		return FirstWins, nil
	case "union", "union-merge":
		return UnionMerge, nil
	}
	return FirstWins, fmt.Errorf("unknown dedup policy %q (want first or union)", s)
}

// Family keywords that qualify a row for union-merge admission. Matching
// is substring containment over the uppercased, delimiter-normalized
// field, so wrapped fragments like "PGLYCOPROTEIN" still count.
var (
	enzymeFamilies      = []string{"CYP", "UGT", "SULT"}
	transporterFamilies = []string{"P-GP", "PGLYCOPROTEIN", "BCRP", "OATP", "OAT", "OCT", "MATE"}
)

func containsAny(upper string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(upper, k) {
			return true
		}
	}
	return false
}

// Merge resolves duplicate drug names under the given policy and returns
// a new table ordered by drug_name. FirstWins preserves every column;
// UnionMerge reduces to the {drug_name, enzymes, transporters} core with
// each token set re-serialized sorted and " | " joined.
func Merge(t *Table, policy Policy) *Table {
	switch policy {
	case UnionMerge:
		return mergeUnion(t)
	default:
		return mergeFirstWins(t)
	}
}

func mergeFirstWins(t *Table) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		name := row["drug_name"]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out.Rows = append(out.Rows, row)
	}
	sortByName(out.Rows)
	return out
}

type tokenSets struct {
	enzymes      map[string]struct{}
	transporters map[string]struct{}
}

func mergeUnion(t *Table) *Table {
	agg := make(map[string]*tokenSets)
	var order []string

	for _, row := range t.Rows {
		name := row["drug_name"]
		enzymes := textnorm.NormalizeDelims(row["enzymes"])
		transporters := textnorm.NormalizeDelims(row["transporters"])

		hasEnzyme := containsAny(strings.ToUpper(enzymes), enzymeFamilies)
		hasTransporter := containsAny(strings.ToUpper(transporters), transporterFamilies)
		if !hasEnzyme && !hasTransporter {
			// Nothing matchable; the name is never admitted for this row.
			continue
		}

		sets, ok := agg[name]
		if !ok {
			sets = &tokenSets{
				enzymes:      make(map[string]struct{}),
				transporters: make(map[string]struct{}),
			}
			agg[name] = sets
			order = append(order, name)
		}
		if hasEnzyme {
			addTokens(sets.enzymes, enzymes)
		}
		if hasTransporter {
			addTokens(sets.transporters, transporters)
		}
	}

	sort.Strings(order)
	out := &Table{Columns: []string{"drug_name", "enzymes", "transporters"}}
	for _, name := range order {
		sets := agg[name]
		out.Rows = append(out.Rows, map[string]string{
			"drug_name":    name,
			"enzymes":      joinSorted(sets.enzymes),
			"transporters": joinSorted(sets.transporters),
		})
	}
	return out
}

func addTokens(set map[string]struct{}, field string) {
	for _, tok := range strings.Split(field, " | ") {
		if tok = strings.TrimSpace(tok); tok != "" {
			set[tok] = struct{}{}
		}
	}
}

func joinSorted(set map[string]struct{}) string {
	toks := make([]string, 0, len(set))
	for t := range set {
		toks = append(toks, t)
	}
	sort.Strings(toks)
	return strings.Join(toks, " | ")
}

func sortByName(rows []map[string]string) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i]["drug_name"] < rows[j]["drug_name"]
	})
}

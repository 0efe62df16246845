package extract

import (
	"regexp"
	"strings"

	"github.com/pharmakit/interaction-checker/internal/textnorm"
)

// rowWidth is the column count of the source table. Shorter rows are
// right-padded before mapping; longer ones are truncated.
const rowWidth = 20

var casRe = regexp.MustCompile(`^\d{2,7}-\d{2}-\d$`)

// IsCAS reports whether a cell looks like a CAS registry number
// (e.g. 128196-01-0). Only rows opening with one are genuine drug rows;
// everything else is a header, legend or continuation line.
func IsCAS(s string) bool {
	return casRe.MatchString(strings.TrimSpace(s))
}

// routeTokens are the route-of-administration values the table uses.
var routeTokens = map[string]struct{}{
	"po": {}, "iv": {}, "im": {}, "sc": {}, "sq": {},
	"inhaled": {}, "topical": {}, "oral": {},
}

var routeWordRe = regexp.MustCompile(`\b(po|iv|im|sc|sq|oral)\b`)

// stitchRoute repairs the transporter/route column overflow: the route
// cell sometimes absorbs the tail of a wrapped transporter list. If the
// cell is not itself a route token, everything before the first embedded
// route token is handed back to transporters; with no route token at all
// the whole cell is transporter text and the route comes back empty.
func stitchRoute(transporters, routeCell string) (string, string) {
	if routeCell == "" {
		return transporters, routeCell
	}
	lower := strings.ToLower(routeCell)
	if _, ok := routeTokens[lower]; ok {
		return transporters, routeCell
	}
	loc := routeWordRe.FindStringIndex(lower)
	if loc == nil {
		return textnorm.JoinNonEmpty(transporters, routeCell), ""
	}
	prefix := strings.TrimSpace(routeCell[:loc[0]])
	suffix := strings.TrimSpace(routeCell[loc[0]:])
	if prefix != "" {
		transporters = textnorm.JoinNonEmpty(transporters, prefix)
	}
	return transporters, suffix
}

// MapRow maps one admitted table row onto a Record by fixed column
// position. It reports false when the row yields no drug name after
// normalization. MapRow assumes the caller already ran the CAS gate on
// the first cell.
func MapRow(cells []string) (Record, bool) {
	row := make([]string, rowWidth)
	for i := 0; i < rowWidth && i < len(cells); i++ {
		row[i] = textnorm.Clean(cells[i])
	}

	name := strings.ToLower(strings.TrimSpace(row[1]))
	if name == "" {
		return Record{}, false
	}

	// fe and F occasionally spill one column right when the name wraps;
	// prefer whichever cell sniffs numeric.
	fe := firstNumericOr(row[2], row[3])
	f := firstNumericOr(row[5], row[6])

	enzymes := textnorm.JoinNonEmpty(row[9], row[10])
	transporters, route := stitchRoute(row[11], row[12])

	return Record{
		CASNumber:       row[0],
		DrugName:        name,
		Fe:              fe,
		F:               f,
		Renal:           row[7],
		NonRenal:        row[8],
		Enzymes:         enzymes,
		Transporters:    transporters,
		RouteOfAdmin:    route,
		DeltaAUCPct:     row[13],
		DeltaCLOverFPct: row[14],
		Inhibitor:       row[15],
		RefDDI:          row[16],
		RouteOfAdminRef: row[17],
		DeltaAUCRefPct:  row[18],
		Extra:           row[19],
	}, true
}

// firstNumericOr prefers a numeric-looking cell, then any non-empty one.
func firstNumericOr(a, b string) string {
	if v, ok := textnorm.NumericString(a); ok {
		return v
	}
	if v, ok := textnorm.NumericString(b); ok {
		return v
	}
	if a != "" {
		return a
	}
	return b
}

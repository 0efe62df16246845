package interactions

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pharmakit/interaction-checker/internal/textnorm"
)

// CanonicalTransporters is the closed vocabulary of transporter tokens
// that count toward overlap scoring. Anything else found in a
// transporter field is tokenized but ignored by the engine.
var CanonicalTransporters = map[string]struct{}{
	"P-GP": {},
	"BCRP": {},
	"OATP": {},
	"OAT":  {},
	"OCT":  {},
	"MATE": {},
}

var splitRe = regexp.MustCompile(`\s*[|,;/]\s*`)

// Tokenize is the single normalization path all matching depends on:
// dash/whitespace cleanup, uppercase, split on | , ; / with surrounding
// whitespace. Empty pieces and the literal "NAN" are discarded. It is
// idempotent: tokenizing a rejoined token set yields the same set.
func Tokenize(field string) map[string]struct{} {
	s := strings.ToUpper(textnorm.Clean(field))
	out := make(map[string]struct{})
	if s == "" {
		return out
	}
	for _, p := range splitRe.Split(s, -1) {
		p = strings.TrimSpace(p)
		if p == "" || p == "NAN" {
			continue
		}
		out[p] = struct{}{}
	}
	return out
}

// intersect returns the sorted intersection of two token sets.
func intersect(a, b map[string]struct{}) []string {
	var shared []string
	for tok := range a {
		if _, ok := b[tok]; ok {
			shared = append(shared, tok)
		}
	}
	sort.Strings(shared)
	return shared
}

// intersectCanonical is intersect restricted to the transporter
// vocabulary.
func intersectCanonical(a, b map[string]struct{}) []string {
	var shared []string
	for tok := range a {
		if _, ok := b[tok]; !ok {
			continue
		}
		if _, ok := CanonicalTransporters[tok]; !ok {
			continue
		}
		shared = append(shared, tok)
	}
	sort.Strings(shared)
	return shared
}

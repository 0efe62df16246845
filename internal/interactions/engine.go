// Package interactions is the deterministic evidence engine: given two
// drug keys it resolves partial, possibly conflicting dataset evidence
// into a single verdict with defined precedence (reference DDI first,
// mechanism overlap as fallback) and a coarse severity label. It is a
// pure function of the datastore snapshot — no state, no I/O.
package interactions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pharmakit/interaction-checker/internal/store"
	"github.com/pharmakit/interaction-checker/internal/textnorm"
)

// Severity is a coarse ordinal label derived from evidence, not a
// clinical judgment.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityUnknown  Severity = "unknown"
)

// EvidenceKind tags what the verdict is based on.
type EvidenceKind string

const (
	KindMissingDrug      EvidenceKind = "missing_drug"
	KindReferenceDDI     EvidenceKind = "reference_ddi"
	KindMechanismOverlap EvidenceKind = "mechanism_overlap"
	KindNone             EvidenceKind = "none"
)

// Evidence carries the kind-specific payload behind a verdict.
type Evidence struct {
	Kind EvidenceKind `json:"type"`

	// mechanism_overlap payload, lexicographically sorted.
	SharedEnzymes      []string `json:"shared_enzymes,omitempty"`
	SharedTransporters []string `json:"shared_transporters,omitempty"`

	// reference_ddi payload. Subject is the drug whose record names the
	// other as its interacting agent.
	Subject         string `json:"subject,omitempty"`
	Agent           string `json:"agent,omitempty"`
	DeltaAUCPct     string `json:"delta_auc_pct,omitempty"`
	DeltaAUCRefPct  string `json:"delta_auc_ref_pct,omitempty"`
	RefID           string `json:"ref_ddi,omitempty"`
	RouteOfAdmin    string `json:"route_of_admin,omitempty"`
	RouteOfAdminRef string `json:"route_of_admin_ref,omitempty"`
}

// Interaction is the full verdict for one drug pair.
type Interaction struct {
	DrugPair [2]string `json:"drug_pair"`
	Message  string    `json:"interaction"`
	Severity Severity  `json:"severity"`
	Evidence Evidence  `json:"evidence"`
}

// FindInteraction computes the deterministic verdict for a pair of drug
// names. Absent drugs produce a missing_drug result, never an error —
// the caller decides whether absence matters.
//
// Severity and shared-token sets are symmetric in the arguments; only
// the direction wording of a reference DDI depends on which record names
// the other.
func FindInteraction(s *store.Store, drug1, drug2 string) Interaction {
	k1 := store.NormalizeName(drug1)
	k2 := store.NormalizeName(drug2)
	pair := [2]string{k1, k2}

	r1, ok1 := s.Lookup(k1)
	r2, ok2 := s.Lookup(k2)
	if !ok1 || !ok2 {
		return Interaction{
			DrugPair: pair,
			Message:  "Drug not found",
			Severity: SeverityUnknown,
			Evidence: Evidence{Kind: KindMissingDrug},
		}
	}

	if ixn, ok := referenceDDI(pair, r1, r2); ok {
		return ixn
	}
	return mechanismOverlap(pair, r1, r2)
}

// referenceDDI checks whether either record explicitly names the other
// drug as its interacting/reference agent. Lexicographically smaller
// subject is probed first so mutual references resolve the same way
// regardless of argument order.
func referenceDDI(pair [2]string, r1, r2 store.Record) (Interaction, bool) {
	a, b := r1, r2
	if a.Name > b.Name {
		a, b = b, a
	}

	var subject, agent store.Record
	switch {
	case inhibitorOf(a) == b.Name:
		subject, agent = a, b
	case inhibitorOf(b) == a.Name:
		subject, agent = b, a
	default:
		return Interaction{}, false
	}

	delta := strings.TrimSpace(subject.Attrs["delta_auc_pct"])
	sev := severityFromDeltaAUC(delta)

	msg := fmt.Sprintf("Documented interaction: %s is listed as the interacting drug for %s", agent.Name, subject.Name)
	if delta != "" {
		msg += fmt.Sprintf(" (reported ΔAUC %s%%)", delta)
	}

	return Interaction{
		DrugPair: pair,
		Message:  msg,
		Severity: sev,
		Evidence: Evidence{
			Kind:            KindReferenceDDI,
			Subject:         subject.Name,
			Agent:           agent.Name,
			DeltaAUCPct:     delta,
			DeltaAUCRefPct:  strings.TrimSpace(subject.Attrs["delta_auc_ref_pct"]),
			RefID:           strings.TrimSpace(subject.Attrs["ref_ddi"]),
			RouteOfAdmin:    strings.TrimSpace(subject.Attrs["route_of_admin"]),
			RouteOfAdminRef: strings.TrimSpace(subject.Attrs["route_of_admin_ref"]),
		},
	}, true
}

func inhibitorOf(r store.Record) string {
	return store.NormalizeName(r.Attrs["inhibitor"])
}

// severityFromDeltaAUC classifies solely on the numeric exposure change:
// >=200 high, >=50 moderate, >0 mild, <=0 none. A value that does not
// parse as a number is unknown — never coerced to zero.
func severityFromDeltaAUC(v string) Severity {
	n, ok := textnorm.NumericString(v)
	if !ok {
		return SeverityUnknown
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return SeverityUnknown
	}
	switch {
	case f >= 200:
		return SeverityHigh
	case f >= 50:
		return SeverityModerate
	case f > 0:
		return SeverityMild
	default:
		return SeverityNone
	}
}

func mechanismOverlap(pair [2]string, r1, r2 store.Record) Interaction {
	sharedEnzymes := intersect(Tokenize(r1.Enzymes), Tokenize(r2.Enzymes))
	sharedTransporters := intersectCanonical(Tokenize(r1.Transporters), Tokenize(r2.Transporters))

	hits := len(sharedEnzymes) + len(sharedTransporters)
	if hits == 0 {
		return Interaction{
			DrugPair: pair,
			Message:  "No significant interaction found",
			Severity: SeverityNone,
			Evidence: Evidence{Kind: KindNone},
		}
	}

	sev := SeverityMild
	if hits >= 2 {
		sev = SeverityModerate
	}

	var bits []string
	if len(sharedEnzymes) > 0 {
		bits = append(bits, "shared enzymes: "+strings.Join(sharedEnzymes, ", "))
	}
	if len(sharedTransporters) > 0 {
		bits = append(bits, "shared transporters: "+strings.Join(sharedTransporters, ", "))
	}

	return Interaction{
		DrugPair: pair,
		Message:  "Potential interaction due to " + strings.Join(bits, " and "),
		Severity: sev,
		Evidence: Evidence{
			Kind:               KindMechanismOverlap,
			SharedEnzymes:      sharedEnzymes,
			SharedTransporters: sharedTransporters,
		},
	}
}

// Package explain is the boundary to the optional language-model
// summarizer. The model only restates the engine's deterministic verdict
// and the structured dataset fields behind it; it never participates in
// the verdict and its failures never propagate to callers.
package explain

import (
	"context"

	"github.com/pharmakit/interaction-checker/internal/interactions"
	"github.com/pharmakit/interaction-checker/internal/store"
)

// Style selects the wording register of an explanation.
type Style string

const (
	StylePlain    Style = "plain"
	StyleClinical Style = "clinical"
)

// Fixed sentinel strings. Callers can rely on these exact values.
const (
	// Disclaimer terminates every successful explanation.
	Disclaimer = "Not medical advice; confirm with a clinician/pharmacist."
	// NotConfigured is returned by the disabled adapter.
	NotConfigured = "LLM not configured (missing OPENAI_API_KEY)."
	// Unavailable is the degraded result when the backend errors or
	// times out.
	Unavailable = "Explanation unavailable."
	// NoEvidence is returned when the verdict carries nothing worth
	// summarizing; the model is never invited to invent one.
	NoEvidence = "No explainable dataset evidence for this pair."
)

// Request bundles everything the summarizer may see: the verdict plus
// the two structured drug records, nothing else.
type Request struct {
	Interaction interactions.Interaction
	Drug1       store.DrugInfo
	Drug2       store.DrugInfo
	Style       Style
}

// Explainer produces human text for a verdict. Implementations never
// return an error — failure modes degrade to the fixed sentinels above.
type Explainer interface {
	Explain(ctx context.Context, req Request) string
}

// Disabled is the null adapter selected when no credential is present.
type Disabled struct{}

func (Disabled) Explain(context.Context, Request) string {
	return NotConfigured
}

// Summarizable reports whether an evidence kind carries enough dataset
// substance to hand to the model.
func Summarizable(kind interactions.EvidenceKind) bool {
	return kind == interactions.KindReferenceDDI || kind == interactions.KindMechanismOverlap
}

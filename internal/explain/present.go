package explain

import (
	"strconv"
	"strings"
)

// FieldLabel pairs a human-readable label with a short gloss for one
// dataset attribute column.
type FieldLabel struct {
	Label string
	Gloss string
}

var fieldLabels = map[string]FieldLabel{
	"cas_number":          {"CAS", "Chemical identifier (CAS registry number)."},
	"fe":                  {"Fraction excreted unchanged (fe)", "Proportion eliminated unchanged (often urine)."},
	"f":                   {"Oral bioavailability (F)", "Fraction of oral dose reaching systemic circulation."},
	"renal":               {"Renal impairment data available", "Whether renal impairment data are present in this dataset entry."},
	"non_renal":           {"Non-renal impairment data available", "Whether non-renal (e.g., hepatic) impairment data are present."},
	"route_of_admin":      {"Route (index drug)", "Administration route for the index drug in the dataset entry."},
	"delta_auc_pct":       {"Reported change in exposure (ΔAUC)", "Percent change in overall exposure (AUC) under the dataset interaction entry."},
	"delta_cl_over_f_pct": {"Reported change in clearance (ΔCL/F)", "Percent change in apparent clearance under the dataset interaction entry."},
	"inhibitor":           {"Interacting drug (study agent)", "Drug listed as the interacting agent in the dataset entry."},
	"ref_ddi":             {"Reference (PMID)", "PubMed identifier for the referenced interaction study (when available)."},
	"route_of_admin_ref":  {"Route (reference)", "Administration route for the reference drug."},
	"delta_auc_ref_pct":   {"ΔAUC (reference)", "Reference ΔAUC value from the dataset entry (if provided)."},
	"extra":               {"Other (unmapped)", "Field present in dataset but not yet mapped to a defined label."},
}

var routeMap = map[string]string{
	"po": "PO (oral)",
	"iv": "IV (intravenous)",
	"im": "IM (intramuscular)",
	"sc": "SC (subcutaneous)",
	"sq": "SC (subcutaneous)",
}

// LabeledValue is one attribute rendered for display.
type LabeledValue struct {
	Value string `json:"value"`
	Gloss string `json:"gloss"`
}

func yesNo(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "YES", "Y", "TRUE", "1":
		return "Yes"
	case "NO", "N", "FALSE", "0":
		return "No"
	}
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return "—"
}

func formatPct(v string) string {
	s := strings.TrimSpace(v)
	if s == "" || strings.EqualFold(s, "nan") {
		return "—"
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f > 0 {
		return "+" + s + "%"
	}
	return s + "%"
}

func formatRoute(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	if s == "" || s == "nan" {
		return "—"
	}
	if long, ok := routeMap[s]; ok {
		return long
	}
	return strings.ToUpper(s)
}

// TranslateAttributes renders an attribute bag with display labels,
// glosses and field-appropriate formatting. Unknown columns pass through
// under their raw name.
func TranslateAttributes(attrs map[string]string) map[string]LabeledValue {
	out := make(map[string]LabeledValue, len(attrs))
	for key, val := range attrs {
		fl, ok := fieldLabels[key]
		if !ok {
			fl = FieldLabel{Label: key}
		}

		var rendered string
		switch key {
		case "renal", "non_renal":
			rendered = yesNo(val)
		case "delta_auc_pct", "delta_auc_ref_pct", "delta_cl_over_f_pct":
			rendered = formatPct(val)
		case "route_of_admin", "route_of_admin_ref":
			rendered = formatRoute(val)
		default:
			rendered = strings.TrimSpace(val)
			if rendered == "" || strings.EqualFold(rendered, "nan") {
				rendered = "—"
			}
		}

		out[fl.Label] = LabeledValue{Value: rendered, Gloss: fl.Gloss}
	}
	return out
}

package extract

// Record is one drug row lifted out of the source PDF table, all fields
// already normalized to single-line strings. Column meanings follow the
// Organ-Impairment interaction database layout; values are kept as raw
// strings and exposed downstream as attributes.
type Record struct {
	CASNumber       string
	DrugName        string
	Fe              string // fraction excreted unchanged
	F               string // oral bioavailability
	Renal           string
	NonRenal        string
	Enzymes         string
	Transporters    string
	RouteOfAdmin    string
	DeltaAUCPct     string
	DeltaCLOverFPct string
	Inhibitor       string
	RefDDI          string
	RouteOfAdminRef string
	DeltaAUCRefPct  string
	Extra           string // trailing column present in the PDF but unmapped
}

// Header is the raw-CSV column order, matching Values.
func Header() []string {
	return []string{
		"cas_number",
		"drug_name",
		"fe",
		"f",
		"renal",
		"non_renal",
		"enzymes",
		"transporters",
		"route_of_admin",
		"delta_auc_pct",
		"delta_cl_over_f_pct",
		"inhibitor",
		"ref_ddi",
		"route_of_admin_ref",
		"delta_auc_ref_pct",
		"extra",
	}
}

// Values returns the record's cells in Header order.
func (r Record) Values() []string {
	return []string{
		r.CASNumber,
		r.DrugName,
		r.Fe,
		r.F,
		r.Renal,
		r.NonRenal,
		r.Enzymes,
		r.Transporters,
		r.RouteOfAdmin,
		r.DeltaAUCPct,
		r.DeltaCLOverFPct,
		r.Inhibitor,
		r.RefDDI,
		r.RouteOfAdminRef,
		r.DeltaAUCRefPct,
		r.Extra,
	}
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCAS(t *testing.T) {
	for _, s := range []string{"128196-01-0", "50-78-2", " 1234567-12-3 "} {
		assert.True(t, IsCAS(s), "IsCAS(%q)", s)
	}
	for _, s := range []string{"", "Route of Admin", "128196-01", "1-01-0", "12345678-01-0", "128196-1-0", "128196-01-00"} {
		assert.False(t, IsCAS(s), "IsCAS(%q)", s)
	}
}

func TestStitchRoute(t *testing.T) {
	cases := []struct {
		name          string
		transporters  string
		routeCell     string
		wantTrn       string
		wantRoute     string
	}{
		{"clean route token kept", "P-gp", "po", "P-gp", "po"},
		{"uppercase route token kept", "P-gp", "PO", "P-gp", "PO"},
		{"prefix reassigned to transporters", "P-gp", "abc po", "P-gp abc", "po"},
		{"route with trailing text keeps suffix", "", "OATP1B1 po fasted", "OATP1B1", "po fasted"},
		{"no route token moves whole cell", "P-gp", "BCRP OATP", "P-gp BCRP OATP", ""},
		{"empty cell untouched", "P-gp", "", "P-gp", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			trn, route := stitchRoute(c.transporters, c.routeCell)
			assert.Equal(t, c.wantTrn, trn)
			assert.Equal(t, c.wantRoute, route)
		})
	}
}

func fullRow() []string {
	return []string{
		"128196-01-0",     // 0 cas
		" Escitalopram \n", // 1 name
		"0.08",            // 2 fe
		"",                // 3
		"",                // 4
		"80",              // 5 F
		"",                // 6
		"Yes",             // 7 renal
		"No",              // 8 non-renal
		"CYP3A4,",         // 9 enzymes a
		"CYP2C19",         // 10 enzymes b
		"P-gp",            // 11 transporters
		"po",              // 12 route
		"51",              // 13 delta auc
		"-35",             // 14 delta cl/f
		"ritonavir",       // 15 inhibitor
		"12345678",        // 16 ref ddi
		"po",              // 17 route ref
		"120",             // 18 delta auc ref
		"x",               // 19 extra
	}
}

func TestMapRowFullWidth(t *testing.T) {
	rec, ok := MapRow(fullRow())
	require.True(t, ok)

	assert.Equal(t, "128196-01-0", rec.CASNumber)
	assert.Equal(t, "escitalopram", rec.DrugName)
	assert.Equal(t, "0.08", rec.Fe)
	assert.Equal(t, "80", rec.F)
	assert.Equal(t, "Yes", rec.Renal)
	assert.Equal(t, "No", rec.NonRenal)
	assert.Equal(t, "CYP3A4, CYP2C19", rec.Enzymes)
	assert.Equal(t, "P-gp", rec.Transporters)
	assert.Equal(t, "po", rec.RouteOfAdmin)
	assert.Equal(t, "51", rec.DeltaAUCPct)
	assert.Equal(t, "ritonavir", rec.Inhibitor)
	assert.Equal(t, "12345678", rec.RefDDI)
	assert.Equal(t, "120", rec.DeltaAUCRefPct)
	assert.Equal(t, "x", rec.Extra)
}

func TestMapRowShortRowPadded(t *testing.T) {
	rec, ok := MapRow([]string{"50-78-2", "Aspirin", "0.9"})
	require.True(t, ok)
	assert.Equal(t, "aspirin", rec.DrugName)
	assert.Equal(t, "0.9", rec.Fe)
	assert.Empty(t, rec.Enzymes)
	assert.Empty(t, rec.RouteOfAdmin)
}

func TestMapRowNumericSpill(t *testing.T) {
	row := fullRow()
	row[2] = "see note" // non-numeric in the fe slot
	row[3] = "0.45"     // value spilled one column right
	rec, ok := MapRow(row)
	require.True(t, ok)
	assert.Equal(t, "0.45", rec.Fe)
}

func TestMapRowRouteOverflow(t *testing.T) {
	row := fullRow()
	row[11] = "P-gp"
	row[12] = "BCRP po"
	rec, ok := MapRow(row)
	require.True(t, ok)
	assert.Equal(t, "P-gp BCRP", rec.Transporters)
	assert.Equal(t, "po", rec.RouteOfAdmin)
}

func TestMapRowMissingName(t *testing.T) {
	row := fullRow()
	row[1] = "  \n "
	_, ok := MapRow(row)
	assert.False(t, ok)
}

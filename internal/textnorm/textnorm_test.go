package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  plain  ", "plain"},
		{"line\none\rtwo", "line one two"},
		{"CYP3A4 –\nCYP2D6", "CYP3A4 - CYP2D6"},
		{"a\t\t b   c", "a b c"},
		{"—", "-"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Clean(c.in), "Clean(%q)", c.in)
	}
}

func TestNumericString(t *testing.T) {
	for in, want := range map[string]string{
		" 0.45 ":  "0.45",
		"-57.1":   "-57.1",
		"91":      "91",
		"91.4\n":  "91.4",
	} {
		got, ok := NumericString(in)
		assert.True(t, ok, "NumericString(%q)", in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "fe", "12%", "1.2.3", "12 mg", "-"} {
		_, ok := NumericString(in)
		assert.False(t, ok, "NumericString(%q) should not be numeric", in)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "CYP3A4 CYP2D6", JoinNonEmpty("CYP3A4\n", "", "  CYP2D6 "))
	assert.Equal(t, "", JoinNonEmpty("", "  ", "\n"))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "enzymes", ColumnName("Enzymes"))
	assert.Equal(t, "enzymes", ColumnName(" ENZYMES "))
	assert.Equal(t, "route_of_admin", ColumnName("Route of Admin"))
	assert.Equal(t, "delta_aucpct", ColumnName("Delta AUC(%)"))
	assert.Equal(t, "cl_f", ColumnName("CL/F"))
	assert.Equal(t, "non_renal", ColumnName("Non-Renal"))
}

func TestNormalizeDelims(t *testing.T) {
	assert.Equal(t, "CYP3A4 | CYP2D6", NormalizeDelims("CYP3A4, CYP2D6"))
	assert.Equal(t, "P-gp | BCRP", NormalizeDelims("P-gp/BCRP"))
	assert.Equal(t, "A | B | C", NormalizeDelims("A ;B |  C"))
	assert.Equal(t, "", NormalizeDelims("  "))
}

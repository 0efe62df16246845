package extract

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frag(x, y, w float64, s string) pdf.Text {
	return pdf.Text{X: x, Y: y, W: w, S: s}
}

func TestBuildGridRowsAndColumns(t *testing.T) {
	// Two rows, three columns anchored at x=10, 80, 150. The second row
	// has no value in the middle column.
	texts := []pdf.Text{
		frag(10, 700, 30, "50-78-2"),
		frag(80, 700, 25, "aspirin"),
		frag(150, 700, 20, "CYP2C9"),
		frag(10, 688, 30, "58-08-2"),
		frag(150, 688.5, 20, "CYP1A2"),
	}

	grid := BuildGrid(texts, DefaultLayoutConfig())
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"50-78-2", "aspirin", "CYP2C9"}, grid[0])
	assert.Equal(t, []string{"58-08-2", "", "CYP1A2"}, grid[1])
}

func TestBuildGridMergesWrappedFragments(t *testing.T) {
	// "Esc" + "italopram" rendered as two back-to-back runs belong to
	// one word; "CYP3A4" starts a new column.
	texts := []pdf.Text{
		frag(10, 700, 12, "Esc"),
		frag(22, 700, 30, "italopram"),
		frag(120, 700, 25, "CYP3A4"),
	}

	grid := BuildGrid(texts, DefaultLayoutConfig())
	require.Len(t, grid, 1)
	assert.Equal(t, []string{"Escitalopram", "CYP3A4"}, grid[0])
}

func TestBuildGridKeepsSpaceBetweenWordsInOneCell(t *testing.T) {
	// Words arrive as separate runs carrying no whitespace: a gap wider
	// than WordGap but under CellGap is an inter-word space and must be
	// restored, or multi-word names stop matching as lookup keys.
	texts := []pdf.Text{
		frag(10, 700, 40, "grapefruit"),
		frag(53, 700, 30, "extract"),
		frag(120, 700, 25, "CYP3A4"),
	}

	grid := BuildGrid(texts, DefaultLayoutConfig())
	require.Len(t, grid, 1)
	assert.Equal(t, []string{"grapefruit extract", "CYP3A4"}, grid[0])
}

func TestBuildGridRowToleranceGroupsJitter(t *testing.T) {
	texts := []pdf.Text{
		frag(10, 700, 10, "a"),
		frag(60, 699, 10, "b"), // 1pt of Y jitter, same visual row
		frag(10, 680, 10, "c"),
	}
	grid := BuildGrid(texts, DefaultLayoutConfig())
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"a", "b"}, grid[0])
	assert.Equal(t, []string{"c", ""}, grid[1])
}

func TestBuildGridEmpty(t *testing.T) {
	assert.Nil(t, BuildGrid(nil, DefaultLayoutConfig()))
}

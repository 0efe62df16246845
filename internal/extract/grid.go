package extract

import (
	"sort"

	"github.com/ledongthuc/pdf"
)

// LayoutConfig tunes the positional analysis that turns loose text runs
// into a cell grid. The defaults are calibrated against the one source
// document this pipeline was written for; any other table layout will
// need re-tuning.
type LayoutConfig struct {
	// RowTolerance is the max Y distance (points) between fragments
	// grouped into the same row.
	RowTolerance float64
	// CellGap is the min X gap (points) between fragments before they
	// are treated as separate cells rather than one wrapped value.
	CellGap float64
	// WordGap is the min X gap (points) between fragments within one
	// cell before a space is inserted between them. The library emits
	// words as separate runs with no whitespace of their own, so gaps
	// between WordGap and CellGap are inter-word spaces while smaller
	// ones are split renderings of a single word.
	WordGap float64
	// ColumnTolerance is the max X distance between a fragment's start
	// and a column anchor for the fragment to land in that column.
	ColumnTolerance float64
}

// DefaultLayoutConfig returns the tuning used for the organ-impairment
// interaction PDF.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		RowTolerance:    2.5,
		CellGap:         6.0,
		WordGap:         1.0,
		ColumnTolerance: 4.0,
	}
}

// cellRun is a horizontally contiguous stretch of text within one row.
type cellRun struct {
	x, end float64
	text   string
}

// BuildGrid reconstructs a table from positional text fragments: rows by
// Y proximity, cells by X gaps, columns by clustering cell start
// positions across the whole page. Cells a row has no content for come
// back empty so every row spans the full column set.
func BuildGrid(texts []pdf.Text, cfg LayoutConfig) [][]string {
	if len(texts) == 0 {
		return nil
	}

	rows := groupRows(texts, cfg.RowTolerance)

	runRows := make([][]cellRun, 0, len(rows))
	for _, row := range rows {
		runRows = append(runRows, mergeRuns(row, cfg.CellGap, cfg.WordGap))
	}

	anchors := columnAnchors(runRows, cfg.ColumnTolerance)
	if len(anchors) == 0 {
		return nil
	}

	grid := make([][]string, 0, len(runRows))
	for _, runs := range runRows {
		cells := make([]string, len(anchors))
		for _, run := range runs {
			i := anchorIndex(anchors, run.x, cfg.ColumnTolerance)
			if cells[i] == "" {
				cells[i] = run.text
			} else {
				cells[i] += " " + run.text
			}
		}
		grid = append(grid, cells)
	}
	return grid
}

// groupRows buckets fragments by Y. PDF Y grows upward, so rows are
// emitted top of page first.
func groupRows(texts []pdf.Text, tol float64) [][]pdf.Text {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]pdf.Text
	for _, t := range sorted {
		if t.S == "" {
			continue
		}
		if n := len(rows); n > 0 && rows[n-1][0].Y-t.Y <= tol {
			rows[n-1] = append(rows[n-1], t)
			continue
		}
		rows = append(rows, []pdf.Text{t})
	}
	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// mergeRuns joins fragments separated by less than gap into one cell
// run, restoring the space between distinct words: fragments an
// inter-word distance apart (>= wordGap) get one, split renderings of a
// single word (overlapping or near-zero gap) do not.
func mergeRuns(row []pdf.Text, gap, wordGap float64) []cellRun {
	var runs []cellRun
	for _, t := range row {
		if n := len(runs); n > 0 && t.X-runs[n-1].end < gap {
			if t.X-runs[n-1].end >= wordGap {
				runs[n-1].text += " "
			}
			runs[n-1].text += t.S
			runs[n-1].end = t.X + t.W
			continue
		}
		runs = append(runs, cellRun{x: t.X, end: t.X + t.W, text: t.S})
	}
	return runs
}

// columnAnchors clusters run start positions page-wide into the column
// grid. Each cluster is represented by its leftmost X.
func columnAnchors(rows [][]cellRun, tol float64) []float64 {
	var starts []float64
	for _, runs := range rows {
		for _, r := range runs {
			starts = append(starts, r.x)
		}
	}
	sort.Float64s(starts)

	var anchors []float64
	for _, x := range starts {
		if n := len(anchors); n > 0 && x-anchors[n-1] <= tol {
			continue
		}
		anchors = append(anchors, x)
	}
	return anchors
}

// anchorIndex finds the rightmost anchor at or left of x (within
// tolerance), which is the column the run belongs to.
func anchorIndex(anchors []float64, x, tol float64) int {
	i := sort.SearchFloat64s(anchors, x+tol)
	if i == 0 {
		return 0
	}
	return i - 1
}

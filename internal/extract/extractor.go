// Package extract turns the source PDF's table pages into normalized
// drug records: positional text → cell grid → CAS-gated rows → mapped
// fields. The layout heuristics are tied to one specific document; see
// LayoutConfig.
package extract

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/pharmakit/interaction-checker/internal/textnorm"
)

// Extractor runs the PDF → record stage of the pipeline.
type Extractor struct {
	layout LayoutConfig
	log    *slog.Logger
}

func NewExtractor(layout LayoutConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{layout: layout, log: logger}
}

// ExtractFile reads every table page of the PDF and returns the admitted
// drug records, first occurrence winning on duplicate names. An empty
// result is an error: it means the positional heuristics no longer match
// the document.
func (e *Extractor) ExtractFile(path string) ([]Record, error) {
	runID := uuid.New().String()
	start := time.Now()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.log.Warn("extract.pdf.close_error", "run_id", runID, "error", cerr)
		}
	}()

	e.log.Info("extract.start", "run_id", runID, "path", path, "pages", reader.NumPage())

	var records []Record
	seen := make(map[string]struct{})

	for pageNo := 1; pageNo <= reader.NumPage(); pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		grid := BuildGrid(page.Content().Text, e.layout)

		admitted := 0
		for _, cells := range grid {
			if len(cells) == 0 {
				continue
			}
			if !IsCAS(textnorm.Clean(cells[0])) {
				continue
			}
			rec, ok := MapRow(cells)
			if !ok {
				continue
			}
			if _, dup := seen[rec.DrugName]; dup {
				continue
			}
			seen[rec.DrugName] = struct{}{}
			records = append(records, rec)
			admitted++
		}

		e.log.Info("extract.page.ok",
			"run_id", runID,
			"page", pageNo,
			"rows", len(grid),
			"admitted", admitted,
		)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no drug rows found in %s; table extraction may need tuning", path)
	}

	e.log.Info("extract.ok",
		"run_id", runID,
		"drugs", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

// WriteRawCSV persists extracted records as the raw-stage CSV consumed
// by the cleaning step.
func WriteRawCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Values()); err != nil {
			return fmt.Errorf("write row %s: %w", rec.DrugName, err)
		}
	}
	w.Flush()
	return w.Error()
}

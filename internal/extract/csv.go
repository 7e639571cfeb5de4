package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"claimlens/internal/domain"
)

// extractCSV flattens each data row into "column: value" lines, preserving
// row order. A row with a mismatched column count is recorded as a warning
// and skipped, never fatal.
func (p *Pipeline) extractCSV(data []byte) (*domain.ExtractedDocument, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // row-level mismatches handled below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", domain.ErrCorruptInput)
	}

	var warnings []string
	var rows []string
	rowNum := 1
	for {
		record, rerr := r.Read()
		if errors.Is(rerr, io.EOF) {
			break
		}
		rowNum++
		if rerr != nil {
			warnings = append(warnings, fmt.Sprintf("row %d unparseable, skipped: %v", rowNum, rerr))
			continue
		}
		if len(record) != len(header) {
			warnings = append(warnings, fmt.Sprintf("row %d has %d columns, expected %d, skipped", rowNum, len(record), len(header)))
			continue
		}
		if rowNum-1 > p.cfg.MaxRows {
			warnings = append(warnings, fmt.Sprintf("row cap of %d reached, remaining rows skipped", p.cfg.MaxRows))
			break
		}

		pairs := make([]string, 0, len(header))
		for i, col := range header {
			pairs = append(pairs, fmt.Sprintf("%s: %s", strings.TrimSpace(col), strings.TrimSpace(record[i])))
		}
		rows = append(rows, strings.Join(pairs, "\n"))
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("csv: %w", domain.ErrNoTextRecovered)
	}

	return &domain.ExtractedDocument{
		SourceFormat: domain.SourceCSV,
		RawText:      strings.Join(rows, "\n"),
		Method:       domain.MethodTabular,
		Warnings:     warnings,
		Confidence:   confidenceFor(warnings),
	}, nil
}

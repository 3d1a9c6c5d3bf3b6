package source

import (
	"context"
	"fmt"

	"github.com/okian/scoretable/internal/domain/model"
	"github.com/okian/scoretable/pkg/logger"
	"github.com/xuri/excelize/v2"
)

func (l *Loader) loadWorkbook(ctx context.Context, path string) ([]model.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q not found", ErrFormat, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	// GetRows keeps empty rows between data rows; track the sheet row number.
	start := -1
	for i, row := range rows {
		if !blank(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, nil
	}
	cols, err := l.locate(rows[start])
	if err != nil {
		return nil, err
	}

	var recs []model.Record
	for i := start + 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blank(rows[i]) {
			continue
		}
		rec, err := cols.record(rows[i], i+1)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	l.logger.Debug(ctx, "workbook sheet read", logger.String("sheet", sheet), logger.Int("rows", len(rows)))
	return recs, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// Package source reads score records from delimited text files and
// spreadsheet workbooks.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/scoretable/internal/domain/model"
	"github.com/okian/scoretable/pkg/logger"
)

const (
	defaultNameField  = "名前"
	defaultScoreField = "スコア"
	defaultDelimiter  = ','

	extWorkbook = ".xlsx"
)

// Loader reads records from a file. The zero value is not usable; use New.
type Loader struct {
	nameField  string
	scoreField string
	delimiter  rune
	sheet      string
	logger     logger.Logger
}

// New creates a Loader with the default column names and a comma delimiter.
func New(opts ...Option) *Loader {
	l := &Loader{
		nameField:  defaultNameField,
		scoreField: defaultScoreField,
		delimiter:  defaultDelimiter,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every record from path in file order. Files ending in .xlsx are
// read as workbooks; everything else as delimited text with a header row.
func (l *Loader) Load(ctx context.Context, path string) ([]model.Record, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, err
	}

	var (
		recs []model.Record
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), extWorkbook) {
		recs, err = l.loadWorkbook(ctx, path)
	} else {
		recs, err = l.loadDelimited(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug(ctx, "score file loaded", logger.String("path", path), logger.Int("records", len(recs)))
	return recs, nil
}

// columns locates the name and score fields in a header row.
type columns struct {
	name  int
	score int
}

func (l *Loader) locate(header []string) (columns, error) {
	cols := columns{name: -1, score: -1}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		// A repeated field name resolves to its last column.
		if h == l.nameField {
			cols.name = i
		}
		if h == l.scoreField {
			cols.score = i
		}
	}

	var missing []string
	if cols.name < 0 {
		missing = append(missing, strconv.Quote(l.nameField))
	}
	if cols.score < 0 {
		missing = append(missing, strconv.Quote(l.scoreField))
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: header is missing field %s", ErrFormat, strings.Join(missing, ", "))
	}
	return cols, nil
}

// record builds a Record from one data row.
func (c columns) record(row []string, line int) (model.Record, error) {
	if c.name >= len(row) || c.score >= len(row) {
		return model.Record{}, fmt.Errorf("%w: line %d: expected at least %d fields, got %d", ErrFormat, line, max(c.name, c.score)+1, len(row))
	}
	raw := strings.TrimSpace(row[c.score])
	score, err := strconv.Atoi(raw)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: line %d: score %q is not an integer", ErrFormat, line, row[c.score])
	}
	return model.Record{Name: row[c.name], Score: score, Line: line}, nil
}

package source_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/scoretable/internal/adapters/source"
	"github.com/okian/scoretable/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDelimited(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		opts    []source.Option
		want    []model.Record
	}{
		{
			name:    "default japanese header",
			content: "名前,スコア\nAlice,80\nBob,90\nAlice,100\n",
			want: []model.Record{
				{Name: "Alice", Score: 80, Line: 2},
				{Name: "Bob", Score: 90, Line: 3},
				{Name: "Alice", Score: 100, Line: 4},
			},
		},
		{
			name:    "extra columns and reordered header",
			content: "日付,スコア,名前\n2024-01-01,70,Carol\n",
			want:    []model.Record{{Name: "Carol", Score: 70, Line: 2}},
		},
		{
			name:    "byte order mark and padded score",
			content: "\ufeff名前,スコア\nDave, 42 \n",
			want:    []model.Record{{Name: "Dave", Score: 42, Line: 2}},
		},
		{
			name:    "custom fields and delimiter",
			content: "name;score\nEve;-5\n\nFrank;+7\n",
			opts:    []source.Option{source.WithNameField("name"), source.WithScoreField("score"), source.WithDelimiter(';')},
			want: []model.Record{
				{Name: "Eve", Score: -5, Line: 2},
				{Name: "Frank", Score: 7, Line: 4},
			},
		},
		{
			name:    "repeated header fields use the last column",
			content: "名前,スコア,名前,スコア\nold,10,Grace,80\n",
			want:    []model.Record{{Name: "Grace", Score: 80, Line: 2}},
		},
		{
			name:    "header only",
			content: "名前,スコア\n",
			want:    nil,
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "scores.csv", tt.content)
			got, err := source.New(tt.opts...).Load(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := source.New().Load(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, source.ErrNotFound))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	formatCases := map[string]string{
		"non-integer score": "名前,スコア\nAlice,80\nBob,ninety\n",
		"float score":       "名前,スコア\nAlice,80.5\n",
		"empty score":       "名前,スコア\nAlice,\n",
		"short row":         "名前,スコア\nAlice\n",
		"missing field":     "名前,点数\nAlice,80\n",
		"bare quote":        "名前,スコア\nAl\"ice,80\n",
	}
	for name, content := range formatCases {
		t.Run(name, func(t *testing.T) {
			_, err := source.New().Load(ctx, writeFile(t, "scores.csv", content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, source.ErrFormat), "got %v", err)
			assert.False(t, errors.Is(err, source.ErrNotFound))
		})
	}

	t.Run("error names the line", func(t *testing.T) {
		_, err := source.New().Load(ctx, writeFile(t, "scores.csv", "名前,スコア\nAlice,80\nBob,ninety\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3")
		assert.Contains(t, err.Error(), `"ninety"`)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := source.New().Load(cctx, writeFile(t, "scores.csv", "名前,スコア\nAlice,80\n"))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "scores.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	ctx := context.Background()

	t.Run("first sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Results", [][]any{
			{"名前", "スコア"},
			{"Alice", 80},
			{},
			{"Bob", "90"},
		})
		got, err := source.New().Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, []model.Record{
			{Name: "Alice", Score: 80, Line: 2},
			{Name: "Bob", Score: 90, Line: 4},
		}, got)
	})

	t.Run("named sheet missing", func(t *testing.T) {
		path := writeWorkbook(t, "Results", [][]any{{"名前", "スコア"}})
		_, err := source.New(source.WithSheet("Other")).Load(ctx, path)
		assert.True(t, errors.Is(err, source.ErrFormat))
	})

	t.Run("non-integer cell", func(t *testing.T) {
		path := writeWorkbook(t, "Results", [][]any{
			{"名前", "スコア"},
			{"Alice", "abc"},
		})
		_, err := source.New().Load(ctx, path)
		assert.True(t, errors.Is(err, source.ErrFormat))
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := source.New().Load(ctx, writeFile(t, "broken.xlsx", "plain text"))
		assert.True(t, errors.Is(err, source.ErrFormat))
	})
}

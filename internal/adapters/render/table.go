// Package render prints participant statistics as a fixed-width table.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/scoretable/internal/domain/model"
	"github.com/okian/scoretable/internal/domain/stats"
	"github.com/okian/scoretable/internal/domain/types"
)

const (
	columnCount  = 4
	minRuleWidth = 70
	ruleChar     = "="
	legendMarker = "■"
)

// Labels holds the user-facing texts of the table.
type Labels struct {
	Name    string
	Average string
	Max     string
	Min     string
	Legend  string
	High    string
	Low     string
}

// Label languages accepted by LabelsFor.
const (
	LangEnglish  = "en"
	LangJapanese = "ja"
)

// DefaultLabels returns the English labels.
func DefaultLabels() Labels {
	return Labels{
		Name:    "Participant",
		Average: "Average",
		Max:     "Max",
		Min:     "Min",
		Legend:  "Legend:",
		High:    "highest average",
		Low:     "lowest average",
	}
}

// JapaneseLabels returns the labels in Japanese.
func JapaneseLabels() Labels {
	return Labels{
		Name:    "参加者名",
		Average: "平均点",
		Max:     "最高点",
		Min:     "最低点",
		Legend:  "凡例:",
		High:    "平均値が最も高い行",
		Low:     "平均値が最も低い行",
	}
}

// LabelsFor returns the labels for lang, falling back to English.
func LabelsFor(lang string) Labels {
	if lang == LangJapanese {
		return JapaneseLabels()
	}
	return DefaultLabels()
}

// Summary counts rendered rows per emphasis.
type Summary struct {
	Rows int
	High int
	Low  int
}

// Table renders statistics. Columns are left-aligned and space padded.
type Table struct {
	widths [columnCount]int
	labels Labels
	styler Styler
}

// NewTable creates a Table with widths 20/15/15/15 and no styling.
func NewTable(opts ...Option) (*Table, error) {
	t := &Table{
		widths: [columnCount]int{20, 15, 15, 15},
		labels: DefaultLabels(),
		styler: PlainStyler{},
	}
	for _, opt := range opts {
		opt(t)
	}
	for i, w := range t.widths {
		if w < 1 {
			return nil, fmt.Errorf("%w: column %d has width %d", ErrInvalidWidth, i+1, w)
		}
	}
	return t, nil
}

// Render writes the table and legend for set to w. Rows are ordered by name
// and emphasised according to stats.Classify against ext.
func (t *Table) Render(w io.Writer, set stats.Set, ext model.GlobalExtremes) (Summary, error) {
	var (
		b   strings.Builder
		sum Summary
	)
	rule := strings.Repeat(ruleChar, t.ruleWidth())

	b.WriteString("\n")
	b.WriteString(rule + "\n")
	b.WriteString(t.line(t.labels.Name, t.labels.Average, t.labels.Max, t.labels.Min) + "\n")
	b.WriteString(rule + "\n")

	for _, st := range set.Sorted() {
		kind := stats.Classify(st, ext)
		switch kind {
		case types.EmphasisHigh:
			sum.High++
		case types.EmphasisLow:
			sum.Low++
		}
		sum.Rows++

		row := t.line(st.Name, FormatAverage(st.Average), strconv.Itoa(st.Max), strconv.Itoa(st.Min))
		b.WriteString(t.styler.Emphasize(row, kind) + "\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("\n" + t.labels.Legend + "\n")
	b.WriteString(t.styler.Emphasize(legendMarker, types.EmphasisHigh) + " " + t.labels.High + "\n")
	b.WriteString(t.styler.Emphasize(legendMarker, types.EmphasisLow) + " " + t.labels.Low + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return sum, err
	}
	return sum, nil
}

// FormatAverage prints an average with one decimal place.
func FormatAverage(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func (t *Table) line(name, avg, maxScore, minScore string) string {
	return fmt.Sprintf("%-*s %-*s %-*s %-*s",
		t.widths[0], name,
		t.widths[1], avg,
		t.widths[2], maxScore,
		t.widths[3], minScore)
}

func (t *Table) ruleWidth() int {
	width := columnCount - 1
	for _, w := range t.widths {
		width += w
	}
	return max(width, minRuleWidth)
}

package render

// Option applies a configuration option to the Table.
type Option func(*Table)

// WithWidths sets the name, average, max and min column widths.
func WithWidths(name, average, maxScore, minScore int) Option {
	return func(t *Table) {
		t.widths = [columnCount]int{name, average, maxScore, minScore}
	}
}

// WithStyler sets the emphasis implementation.
func WithStyler(s Styler) Option {
	return func(t *Table) {
		if s != nil {
			t.styler = s
		}
	}
}

// WithLabels replaces the header and legend texts.
func WithLabels(l Labels) Option {
	return func(t *Table) {
		t.labels = l
	}
}

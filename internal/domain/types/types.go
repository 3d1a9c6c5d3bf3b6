// Package types contains common types used across the application
package types

// Emphasis marks how a table row is highlighted.
type Emphasis int

// Emphasis kinds. EmphasisNone is the zero value.
const (
	EmphasisNone Emphasis = iota
	EmphasisHigh
	EmphasisLow
)

// String returns the label used in logs and metrics.
func (e Emphasis) String() string {
	switch e {
	case EmphasisHigh:
		return "high"
	case EmphasisLow:
		return "low"
	default:
		return "none"
	}
}

// Package model contains domain models passed between layers.
package model

// Record is one input row as read by the loader.
type Record struct {
	Name  string // participant identifier
	Score int    // raw score for this row
	Line  int    // 1-based source line, 0 when unknown
}

// ParticipantStats is the reduced view of all records for one participant.
// Min <= Average <= Max always holds for values built by the aggregator.
type ParticipantStats struct {
	Name    string
	Average float64
	Max     int
	Min     int
	Count   int
}

// GlobalExtremes holds the highest and lowest average across all participants.
type GlobalExtremes struct {
	MaxAverage float64
	MinAverage float64
}

// Tied reports whether every participant shares the same average.
func (g GlobalExtremes) Tied() bool {
	return g.MaxAverage == g.MinAverage
}

package stats

import "errors"

// Sentinel kinds for statistics errors.
var (
	ErrEmptyData = errors.New("no score data to summarize")
)

package render

import "errors"

// Sentinel kinds for rendering errors.
var (
	ErrInvalidWidth = errors.New("column width must be at least 1")
)

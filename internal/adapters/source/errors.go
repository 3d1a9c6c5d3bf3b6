package source

import "errors"

// Sentinel kinds for loader errors.
var (
	ErrNotFound = errors.New("score file not found")
	ErrFormat   = errors.New("invalid score file format")
)

package source

import "github.com/okian/scoretable/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithNameField sets the header of the participant column.
func WithNameField(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.nameField = name
		}
	}
}

// WithScoreField sets the header of the score column.
func WithScoreField(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.scoreField = name
		}
	}
}

// WithDelimiter sets the field separator for text input.
func WithDelimiter(r rune) Option {
	return func(l *Loader) {
		if r != 0 {
			l.delimiter = r
		}
	}
}

// WithSheet selects a workbook sheet by name.
func WithSheet(name string) Option {
	return func(l *Loader) {
		l.sheet = name
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

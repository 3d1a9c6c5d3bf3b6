package render

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/okian/scoretable/internal/domain/types"
)

// Color modes accepted by SelectStyler.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styler applies emphasis to already formatted text. Implementations may
// only wrap the text; they must not change its printable content.
type Styler interface {
	Emphasize(text string, kind types.Emphasis) string
}

// PlainStyler returns text unchanged.
type PlainStyler struct{}

// Emphasize implements Styler.
func (PlainStyler) Emphasize(text string, _ types.Emphasis) string { return text }

// ANSIStyler renders high rows bold red and low rows bold blue.
type ANSIStyler struct {
	high *color.Color
	low  *color.Color
}

// NewANSIStyler builds a styler that emits escape codes even when the
// process-wide color detection would disable them.
func NewANSIStyler() *ANSIStyler {
	high := color.New(color.FgRed, color.Bold)
	high.EnableColor()
	low := color.New(color.FgBlue, color.Bold)
	low.EnableColor()
	return &ANSIStyler{high: high, low: low}
}

// Emphasize implements Styler.
func (s *ANSIStyler) Emphasize(text string, kind types.Emphasis) string {
	switch kind {
	case types.EmphasisHigh:
		return s.high.Sprint(text)
	case types.EmphasisLow:
		return s.low.Sprint(text)
	default:
		return text
	}
}

type fdWriter interface {
	Fd() uintptr
}

// SelectStyler picks the styler for out. In auto mode escape codes are used
// only for terminals, and never when NO_COLOR is set or TERM is dumb.
func SelectStyler(mode string, out io.Writer) Styler {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		return NewANSIStyler()
	case ColorNever:
		return PlainStyler{}
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return PlainStyler{}
	}
	if os.Getenv("TERM") == "dumb" {
		return PlainStyler{}
	}
	f, ok := out.(fdWriter)
	if !ok {
		return PlainStyler{}
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewANSIStyler()
	}
	return PlainStyler{}
}

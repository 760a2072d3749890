// Package formatter reformats assembly source into a canonical layout:
// consistent capitalization, aligned operands and comments, collapsed blank
// lines and width-wrapped long lines. The pipeline classifies each physical
// line into a token, aggregates cross-line alignment metrics, renders the
// tokens back into lines and emits them with comment alignment applied. It
// performs no assembling or validation; unrecognized lines pass through
// unchanged and are reported as diagnostics.
package formatter

import (
	"strings"

	"github.com/dstrand/asmfix/config"
)

// Formatter reformats assembly source according to one immutable
// configuration. It is not safe for concurrent use; create one per run.
type Formatter struct {
	cfg   *config.Config
	diags []Diagnostic
}

// New creates a Formatter for the given configuration.
func New(cfg *config.Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// Format reformats src and returns the result together with diagnostics
// for lines that matched no classification rule. The transformation is
// total: it never fails, and re-running it on its own output with the same
// configuration yields identical text.
func (f *Formatter) Format(src string) (string, []Diagnostic) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		// The trailing newline is a terminator, not an extra source line.
		lines = lines[:n-1]
	}
	out, diags := f.FormatLines(lines)
	if len(out) == 0 {
		return "", diags
	}
	return strings.Join(out, "\n") + "\n", diags
}

// FormatLines is the line-sequence form of Format.
func (f *Formatter) FormatLines(lines []string) ([]string, []Diagnostic) {
	f.diags = nil
	tokens := make([]Token, 0, len(lines))
	for i, line := range lines {
		tokens = append(tokens, Classify(line, i+1, f.cfg))
	}
	kept, stats := f.aggregate(tokens)
	rendered := f.render(kept, &stats)
	return f.emit(rendered, stats), f.diags
}

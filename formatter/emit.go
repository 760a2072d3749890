package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// emit is the final pass: it picks a comment column per line, trims
// trailing whitespace and wraps anything wider than the configured file
// width. Plain lines pass through untouched.
func (f *Formatter) emit(lines []RenderedLine, stats WidthStats) []string {
	out := make([]string, 0, len(lines)+4)
	for _, rl := range lines {
		if rl.Plain {
			out = append(out, rl.Text)
			continue
		}

		text, marker := f.alignComment(rl, stats)
		text = strings.TrimRight(text, " \t")

		if !f.cfg.FixFileWidth || runewidth.StringWidth(text) <= f.cfg.FileWidth {
			out = append(out, text)
			continue
		}
		cut := lastSpaceBefore(text, f.cfg.FileWidth)
		if cut <= 0 {
			// No break point; emitting over-width beats corrupting the line.
			out = append(out, text)
			continue
		}
		out = append(out,
			strings.TrimRight(text[:cut], " "),
			f.continuation(text, marker)+text[cut+1:])
	}
	return out
}

// alignComment appends the trailing comment at the column selected by
// configuration: the global column, the data-only column, or a fixed gap.
// It returns the byte offset of the comment marker, or -1 without one.
func (f *Formatter) alignComment(rl RenderedLine, stats WidthStats) (string, int) {
	var suffix string
	if rl.Comment != "" {
		suffix = "; " + rl.Comment
	}

	global := f.cfg.AlignComments &&
		(!rl.IsData || (f.cfg.AlignDataComments && !f.cfg.AlignDataCommentsSeparately))
	dataOnly := rl.IsData && f.cfg.AlignDataComments && f.cfg.AlignDataCommentsSeparately

	var text string
	switch {
	case global:
		text = ljust(rl.Text, stats.MaxLine+f.cfg.MinCommentSpacing) + suffix
	case dataOnly:
		text = ljust(rl.Text, stats.MaxDataLine+f.cfg.MinCommentSpacing) + suffix
	default:
		text = rl.Text + strings.Repeat(" ", f.cfg.MinCommentSpacing) + suffix
	}
	if suffix == "" {
		return text, -1
	}
	return text, len(text) - len(suffix)
}

// continuation builds the indent for the second half of a wrapped line:
// aligned under the comment marker, pushed right by the configured extra
// indent. The result starts a valid extension comment, so a second run
// merges it back.
func (f *Formatter) continuation(text string, marker int) string {
	pad := strings.Repeat(" ", f.cfg.LongCommentIndentAmount)
	if marker < 0 {
		return pad
	}
	return strings.Repeat(" ", runewidth.StringWidth(text[:marker])) + "; " + pad
}

// ljust left-justifies s to the given display width.
func ljust(s string, width int) string {
	if d := width - runewidth.StringWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

// lastSpaceBefore returns the byte index of the last space that starts at
// or before the given display column, or -1 when there is none.
func lastSpaceBefore(s string, limit int) int {
	col := 0
	cut := -1
	for i, r := range s {
		if col >= limit {
			break
		}
		if r == ' ' {
			cut = i
		}
		col += runewidth.RuneWidth(r)
	}
	return cut
}

package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderedLine is one output line before comment alignment. Plain lines
// (blanks, full-line comments, header continuations, error passthrough)
// bypass the emitter's alignment and wrapping.
type RenderedLine struct {
	Plain   bool
	Text    string
	Comment string
	IsData  bool
}

// render turns the surviving tokens into RenderedLines using the frozen
// width maxima. Structural indentation is an explicit depth carried through
// the fold: a PROC line renders at the outer depth and then increments, an
// ENDP line decrements first, so the body sits one level deeper than its
// boundaries. The two emit-time maxima are measured here, after
// indentation.
func (f *Formatter) render(tokens []Token, stats *WidthStats) []RenderedLine {
	lines := make([]RenderedLine, 0, len(tokens)+4)
	depth := 0

	for _, tok := range tokens {
		if tok.Kind == TokenBlank {
			lines = append(lines, RenderedLine{Plain: true})
			continue
		}
		if tok.Kind == TokenError {
			// Verbatim passthrough, original whitespace included.
			lines = append(lines, RenderedLine{Plain: true, Text: tok.Raw})
			continue
		}

		if tok.Kind == TokenProcedure && tok.Proc == ProcEnd && depth > 0 {
			depth--
		}
		indent := tok.Indent
		if f.cfg.FixIndents {
			indent = strings.Repeat(" ", f.cfg.TabSize*depth)
		}

		var rl RenderedLine
		switch tok.Kind {
		case TokenCommentHeader:
			lines = append(lines, f.renderHeader(tok, stats, indent)...)
			continue
		case TokenCommentFull:
			rl = RenderedLine{Plain: true, Text: "; " + tok.Value}
		case TokenDirective:
			rl = RenderedLine{Text: tok.Value, Comment: tok.Comment}
		case TokenData:
			rl = f.renderData(tok, stats)
		case TokenProcedure:
			rl = RenderedLine{Text: tok.Label + " " + tok.Value, Comment: tok.Comment}
			if tok.Proc == ProcBegin {
				depth++
			}
		case TokenInstruction:
			rl = f.renderInstruction(tok, stats)
		}

		rl.Text = indent + rl.Text
		lines = append(lines, rl)

		if !rl.Plain {
			w := runewidth.StringWidth(rl.Text)
			switch {
			case rl.IsData && f.cfg.AlignDataComments && f.cfg.AlignDataCommentsSeparately:
				stats.MaxDataLine = max(stats.MaxDataLine, w)
			case !rl.IsData || (f.cfg.AlignDataComments && !f.cfg.AlignDataCommentsSeparately):
				stats.MaxLine = max(stats.MaxLine, w)
			}
		}
	}
	return lines
}

// renderHeader lays the field out in its own column and wraps the value at
// the file width. A continuation keeps the field column empty, which makes
// it an extension comment on the next run.
func (f *Formatter) renderHeader(tok Token, stats *WidthStats, indent string) []RenderedLine {
	fieldWidth := len("; : ") + stats.MaxField
	var text string
	if f.cfg.AlignHeaderComments {
		text = indent + ljust("; "+tok.Field+":", fieldWidth) + tok.Value
	} else {
		text = indent + "; " + tok.Field + ": " + tok.Value
	}
	text = strings.TrimRight(text, " ")

	if f.cfg.FixFileWidth && runewidth.StringWidth(text) > f.cfg.FileWidth {
		if cut := lastSpaceBefore(text, f.cfg.FileWidth); cut > 0 {
			return []RenderedLine{
				{Plain: true, Text: strings.TrimRight(text[:cut], " ")},
				{Plain: true, Text: indent + ljust("; ", fieldWidth) + text[cut+1:]},
			}
		}
	}
	return []RenderedLine{{Plain: true, Text: text}}
}

func (f *Formatter) renderData(tok Token, stats *WidthStats) RenderedLine {
	labelWidth := len(tok.Label)
	if f.cfg.AlignDataSection {
		labelWidth = stats.MaxLabel
	}
	value := tok.Value
	if f.cfg.AddSpacesBetweenInitialValues {
		value = normalizeCommas(value)
	}
	text := ljust(tok.Label, labelWidth+stats.DirectiveSpacing) +
		ljust(tok.Directive, stats.MaxSize+f.cfg.MinDataInitialValueSpacing) +
		value
	return RenderedLine{Text: text, Comment: tok.Comment, IsData: true}
}

func (f *Formatter) renderInstruction(tok Token, stats *WidthStats) RenderedLine {
	width := len(tok.Mnemonic)
	if f.cfg.AlignCodeSection {
		width = stats.MaxMnemonic
	}
	operands := tok.Operands
	if f.cfg.AddSpacesBetweenOperands && operands != "" {
		operands = normalizeCommas(operands)
	}
	return RenderedLine{Text: ljust(tok.Mnemonic, width+stats.OperandSpacing) + operands, Comment: tok.Comment}
}

// normalizeCommas rejoins a comma-separated list with the canonical ", "
// separator, collapsing irregular spacing around the commas.
func normalizeCommas(list string) string {
	return strings.Join(splitList(list), ", ")
}

// splitList splits on commas, but ignores commas inside parentheses and
// double-quoted strings so string initializers survive untouched.
func splitList(s string) []string {
	var parts []string
	parens := 0
	inQuote := false
	last := 0
	for i, r := range s {
		switch r {
		case '"':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				parens++
			}
		case ')':
			if !inQuote {
				parens--
			}
		case ',':
			if parens == 0 && !inQuote {
				parts = append(parts, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[last:]))
}

package formatter

import "strings"

// WidthStats holds the column maxima gathered over the cleaned token
// stream. They are frozen before rendering begins; the renderer only adds
// the two emitted-line maxima consumed by the emitter.
type WidthStats struct {
	MaxLabel    int // widest data label
	MaxMnemonic int // widest instruction mnemonic
	MaxField    int // widest header-comment field name
	MaxSize     int // widest data size keyword

	// Effective spacing values, merged when code and data align together.
	OperandSpacing   int
	DirectiveSpacing int

	// Set by the renderer after indentation, read by the emitter.
	MaxLine     int
	MaxDataLine int
}

// aggregate makes one forward pass over the tokens: comment extensions
// merge into their predecessor, capitalization is normalized, redundant
// blank lines are dropped and the width maxima accumulate. Error tokens
// become diagnostics without stopping the run. The returned slice keeps
// the surviving tokens in source order.
func (f *Formatter) aggregate(tokens []Token) ([]Token, WidthStats) {
	stats := WidthStats{
		OperandSpacing:   f.cfg.MinInstructionOperandSpacing,
		DirectiveSpacing: f.cfg.MinDataDirectiveSpacing,
	}

	last := -1 // index of the last surviving token
	for i := range tokens {
		tok := &tokens[i]
		switch tok.Kind {
		case TokenCommentExt:
			if last >= 0 && tokens[last].carriesComment() {
				mergeExtension(&tokens[last], tok.Value)
				tok.removed = true
				continue
			}
			// Nothing to extend; treat it as an ordinary comment.
			tok.Kind = TokenCommentFull

		case TokenBlank:
			if f.cfg.FixBlankLines && last >= 0 && tokens[last].Kind == TokenBlank {
				tok.removed = true
				continue
			}

		case TokenInstruction:
			if f.cfg.FixCapitalization {
				tok.Mnemonic = strings.ToLower(tok.Mnemonic)
			}
			stats.MaxMnemonic = max(stats.MaxMnemonic, len(tok.Mnemonic))

		case TokenData:
			if f.cfg.FixCapitalization {
				tok.Directive = strings.ToUpper(tok.Directive)
			}
			stats.MaxLabel = max(stats.MaxLabel, len(tok.Label))
			stats.MaxSize = max(stats.MaxSize, len(tok.Directive))

		case TokenDirective:
			if f.cfg.FixCapitalization {
				tok.Value = upperKeyword(tok.Value)
			}

		case TokenProcedure:
			if f.cfg.FixCapitalization {
				tok.Value = strings.ToUpper(tok.Value)
			}

		case TokenCommentHeader:
			stats.MaxField = max(stats.MaxField, len(tok.Field))

		case TokenError:
			f.diags = append(f.diags, Diagnostic{
				Line:    tok.Line,
				Message: "unrecognized line",
				Text:    tok.Value,
			})
		}
		last = i
	}

	if f.cfg.AlignCodeAndDataTogether {
		shared := max(stats.MaxLabel, stats.MaxMnemonic)
		stats.MaxLabel, stats.MaxMnemonic = shared, shared
		spacing := max(stats.OperandSpacing, stats.DirectiveSpacing)
		stats.OperandSpacing, stats.DirectiveSpacing = spacing, spacing
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if !tok.removed {
			kept = append(kept, tok)
		}
	}
	return kept, stats
}

// mergeExtension appends extension text to the predecessor: full-line and
// header comments grow their own text, everything else grows its trailing
// comment.
func mergeExtension(prev *Token, text string) {
	switch prev.Kind {
	case TokenCommentHeader, TokenCommentFull:
		prev.Value += " " + text
	default:
		if prev.Comment == "" {
			prev.Comment = text
		} else {
			prev.Comment += " " + text
		}
	}
}

// upperKeyword upper-cases the leading keyword of a directive, leaving any
// argument (an include path, an entry label) untouched.
func upperKeyword(value string) string {
	if i := strings.IndexAny(value, " \t"); i != -1 {
		return strings.ToUpper(value[:i]) + value[i:]
	}
	return strings.ToUpper(value)
}

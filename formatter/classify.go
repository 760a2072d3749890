package formatter

import (
	"regexp"
	"strings"

	"github.com/dstrand/asmfix/config"
)

var (
	reIndent       = regexp.MustCompile(`^[ \t]*`)
	reHeaderField  = regexp.MustCompile(`(?i)\b(author|assignment|date)\b`)
	reDirectiveKey = regexp.MustCompile(`(?i)^(include|end)\b`)
	reDirectiveVal = regexp.MustCompile(`^\.?([a-zA-Z0-9.] ?)+`)
	reDataLine     = regexp.MustCompile(`(?i)^([a-zA-Z_]\w*)[ \t]+(byte|word|dword|qword)[ \t]+(.+)$`)
	reProcLine     = regexp.MustCompile(`(?i)^([a-zA-Z_]\w*)[ \t]+(proc|endp)$`)
	reIdentifier   = regexp.MustCompile(`^[a-zA-Z_]\w*$`)
)

// Classify turns one raw source line into exactly one Token. Rules are
// tried in a fixed priority order and the first match wins; the error
// fallback always matches, so classification is total.
func Classify(raw string, num int, cfg *config.Config) Token {
	line := strings.TrimSpace(raw)

	tok := classifyLine(line, raw)
	tok.Line = num
	if !cfg.FixIndents {
		indent := reIndent.FindString(raw)
		tok.Indent = strings.ReplaceAll(indent, "\t", strings.Repeat(" ", cfg.TabSize))
	}
	return tok
}

func classifyLine(line, raw string) Token {
	if line == "" {
		return Token{Kind: TokenBlank}
	}
	if tok, ok := classifyComment(line); ok {
		return tok
	}

	code, comment := splitComment(line)
	for _, rule := range []func(string) (Token, bool){
		classifyDirective,
		classifyData,
		classifyProcedure,
		classifyInstruction,
	} {
		if tok, ok := rule(code); ok {
			tok.Comment = comment
			return tok
		}
	}
	return Token{Kind: TokenError, Value: line, Raw: raw}
}

// classifyComment handles the three full-line comment shapes. An extension
// is the marker followed by at least two spaces; a header carries a known
// field name before its first colon.
func classifyComment(line string) (Token, bool) {
	if !strings.HasPrefix(line, ";") {
		return Token{}, false
	}
	if strings.HasPrefix(line, ";  ") {
		return Token{Kind: TokenCommentExt, Value: strings.TrimSpace(line[1:])}, true
	}
	if colon := strings.Index(line, ":"); colon > 0 && reHeaderField.MatchString(line[:colon]) {
		return Token{
			Kind:  TokenCommentHeader,
			Field: strings.TrimSpace(line[1:colon]),
			Value: strings.TrimSpace(line[colon+1:]),
		}, true
	}
	return Token{Kind: TokenCommentFull, Value: strings.TrimSpace(line[1:])}, true
}

// classifyDirective matches "."-prefixed directives plus the INCLUDE and
// END keywords. Keyword detection is case-insensitive on whole words, so
// ENDP never shadows END.
func classifyDirective(code string) (Token, bool) {
	if !strings.HasPrefix(code, ".") && !reDirectiveKey.MatchString(code) {
		return Token{}, false
	}
	value := strings.TrimSpace(reDirectiveVal.FindString(code))
	if value == "" {
		return Token{}, false
	}
	return Token{Kind: TokenDirective, Value: value}, true
}

func classifyData(code string) (Token, bool) {
	m := reDataLine.FindStringSubmatch(code)
	if m == nil {
		return Token{}, false
	}
	return Token{
		Kind:      TokenData,
		Label:     m[1],
		Directive: m[2],
		Value:     strings.TrimSpace(m[3]),
	}, true
}

func classifyProcedure(code string) (Token, bool) {
	m := reProcLine.FindStringSubmatch(code)
	if m == nil {
		return Token{}, false
	}
	kind := ProcBegin
	if strings.EqualFold(m[2], "ENDP") {
		kind = ProcEnd
	}
	return Token{Kind: TokenProcedure, Label: m[1], Value: m[2], Proc: kind}, true
}

func classifyInstruction(code string) (Token, bool) {
	mnemonic := code
	var operands string
	if i := strings.IndexAny(code, " \t"); i != -1 {
		mnemonic = code[:i]
		operands = strings.TrimSpace(code[i:])
	}
	if !reIdentifier.MatchString(mnemonic) {
		return Token{}, false
	}
	return Token{Kind: TokenInstruction, Mnemonic: mnemonic, Operands: operands}, true
}

// splitComment separates a code line from its trailing comment, ignoring
// comment markers inside double-quoted strings.
func splitComment(line string) (code, comment string) {
	inQuote := false
	for i, r := range line {
		switch r {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
			}
		}
	}
	return line, ""
}

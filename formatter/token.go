package formatter

// TokenKind identifies the classification of one source line.
type TokenKind int

const (
	// TokenBlank is an empty or whitespace-only line.
	TokenBlank TokenKind = iota
	// TokenCommentExt continues the previous comment and is merged away
	// before rendering.
	TokenCommentExt
	// TokenCommentHeader is a "field: value" metadata comment.
	TokenCommentHeader
	// TokenCommentFull is any other full-line comment.
	TokenCommentFull
	// TokenDirective is an assembler directive line.
	TokenDirective
	// TokenData is a data-definition line.
	TokenData
	// TokenProcedure is a PROC/ENDP boundary line.
	TokenProcedure
	// TokenInstruction is a generic instruction or macro invocation.
	TokenInstruction
	// TokenError matched no rule and passes through verbatim.
	TokenError
)

// ProcKind distinguishes the two procedure boundary lines.
type ProcKind int

const (
	// ProcBegin opens a procedure body.
	ProcBegin ProcKind = iota
	// ProcEnd closes it.
	ProcEnd
)

// Token represents one classified source line.
type Token struct {
	Kind TokenKind
	Line int // 1-based source line number

	// Indent is the original leading whitespace with tabs expanded. It is
	// only captured when structural re-indentation is disabled.
	Indent string

	Field     string   // CommentHeader: text before the first colon
	Value     string   // comment text, directive text or data initializer list
	Label     string   // Data and Procedure lines
	Directive string   // Data: the size keyword (BYTE, WORD, DWORD, QWORD)
	Proc      ProcKind // Procedure only
	Mnemonic  string
	Operands  string
	Comment   string // trailing comment, marker stripped
	Raw       string // Error: the unmodified source line

	removed bool
}

// carriesComment reports whether an extension line can merge into this
// token. Blank and error tokens have nowhere to put comment text.
func (t *Token) carriesComment() bool {
	switch t.Kind {
	case TokenBlank, TokenError:
		return false
	}
	return true
}

package formatter

// Diagnostic reports a source line that matched no classification rule.
// The line itself still passes through to the output unmodified.
type Diagnostic struct {
	Line    int
	Message string
	Text    string
}

package formatter_test

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"

	"github.com/dstrand/asmfix/config"
	"github.com/dstrand/asmfix/formatter"
)

// Formats lines and requires no diagnostics.
func formatLines(t *testing.T, cfg config.Config, lines ...string) []string {
	t.Helper()
	out, diags := formatter.New(&cfg).FormatLines(lines)
	require.Empty(t, diags)
	return out
}

func TestOperandNormalizationAndCommentColumn(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg, "mov  eax,ebx   ; move it")
	require.Equal(t, []string{"mov   eax, ebx   ; move it"}, out)
}

func TestBlankLineCollapse(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg, "nop", "", "", "", "ret")
	require.Equal(t, []string{"nop", "", "ret"}, out)

	cfg.FixBlankLines = false
	out = formatLines(t, cfg, "nop", "", "", "", "ret")
	require.Equal(t, []string{"nop", "", "", "", "ret"}, out)
}

func TestHeaderCommentMerge(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg, "; Author: Jane Doe", ";  continued")
	require.Equal(t, []string{"; Author: Jane Doe continued"}, out)
}

func TestExtensionMergesIntoTrailingComment(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg,
		"mov eax, 1 ; first part",
		";  second part")
	require.Len(t, out, 1)
	require.Contains(t, out[0], "; first part second part")
}

func TestCapitalization(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg,
		".data",
		"total dword 0",
		".code",
		"MOV EAX, 1")
	require.Equal(t, []string{
		".DATA",
		"total  DWORD  0",
		".CODE",
		"mov   EAX, 1",
	}, out)

	cfg.FixCapitalization = false
	out = formatLines(t, cfg, "MOV EAX, 1")
	require.Equal(t, []string{"MOV   EAX, 1"}, out)
}

func TestDataSectionAlignment(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg,
		"count   DWORD   10,20",
		`msg  BYTE "Hi, there",0  ; greeting`)
	require.Equal(t, []string{
		"count  DWORD  10, 20",
		`msg    BYTE   "Hi, there", 0   ; greeting`,
	}, out)
}

func TestProcedureIndentation(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg,
		"main PROC",
		"mov eax, 1",
		"ret",
		"main ENDP")
	require.Equal(t, []string{
		"main PROC",
		"  mov   eax, 1",
		"  ret",
		"main ENDP",
	}, out)
}

// With align_code_section on, operands start at the same column on every
// instruction line: indent + max mnemonic width + operand spacing.
func TestOperandColumnInvariant(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg,
		"movzx eax, bl",
		"inc ecx",
		"xor edx, edx")
	col := len("movzx") + cfg.MinInstructionOperandSpacing
	for _, line := range out {
		// Every operand list here begins with an e-register.
		require.Equal(t, col, strings.IndexRune(line, 'e'), "line %q", line)
	}
	require.Equal(t, []string{
		"movzx   eax, bl",
		"inc     ecx",
		"xor     edx, edx",
	}, out)
}

func TestAlignCodeAndDataTogether(t *testing.T) {
	cfg := config.Default()
	cfg.AlignCodeAndDataTogether = true
	out := formatLines(t, cfg,
		"counter DWORD 5",
		"mov eax, 1")
	require.Equal(t, []string{
		"counter   DWORD  5",
		"mov       eax, 1",
	}, out)
}

func TestFixedGapWhenAlignmentOff(t *testing.T) {
	cfg := config.Default()
	cfg.AlignComments = false
	out := formatLines(t, cfg, "mov eax, 1 ; c", "call somewhere")
	require.Equal(t, "mov    eax, 1   ; c", out[0])
}

func TestPreservedIndentWhenFixIndentsOff(t *testing.T) {
	cfg := config.Default()
	cfg.FixIndents = false
	out := formatLines(t, cfg, "    mov eax, 1", "\tret")
	require.Equal(t, []string{"    mov   eax, 1", "  ret"}, out)
}

func TestErrorPassthrough(t *testing.T) {
	cfg := config.Default()
	out, diags := formatter.New(&cfg).FormatLines([]string{
		"mov eax, 1",
		"   ??? what is this",
		"ret",
	})
	require.Equal(t, "   ??? what is this", out[1])
	require.Len(t, diags, 1)
	require.Equal(t, 2, diags[0].Line)
	require.Equal(t, "??? what is this", diags[0].Text)
}

func TestWrapLongComment(t *testing.T) {
	cfg := config.Default()
	cfg.FileWidth = 30
	out := formatLines(t, cfg, "mov eax, ebx ; abc def ghi jkl")
	require.Equal(t, []string{
		"mov   eax, ebx   ; abc def",
		"                 ;   ghi jkl",
	}, out)
	for _, line := range out {
		require.LessOrEqual(t, runewidth.StringWidth(line), cfg.FileWidth)
	}
}

func TestWrapWithoutBreakPoint(t *testing.T) {
	cfg := config.Default()
	long := strings.Repeat("a", 100)
	out := formatLines(t, cfg, long)
	require.Equal(t, []string{long}, out)
}

func TestHeaderCommentWrap(t *testing.T) {
	cfg := config.Default()
	out := formatLines(t, cfg,
		"; Author: "+strings.Repeat("word ", 18)+"tail")
	require.Len(t, out, 2)
	require.True(t, strings.HasPrefix(out[1], "; "+strings.Repeat(" ", 2+len("Author"))))
	for _, line := range out {
		require.LessOrEqual(t, runewidth.StringWidth(line), cfg.FileWidth)
	}
}

const idempotenceSample = `; Author: Jane Doe
; Assignment: 4
; a small sample program

INCLUDE Irvine32.inc

.data
count   DWORD   10,20,30    ; the counters
greet  BYTE  "Hello, world",0

.code
main PROC
MOV  eax,count ; load it with a comment long enough to push this line well past the configured file width limit
call WriteDec


ret
main ENDP
END main
`

// Formatting already-formatted output yields byte-identical output.
func TestIdempotence(t *testing.T) {
	cfg := config.Default()
	once, diags := formatter.New(&cfg).Format(idempotenceSample)
	require.Empty(t, diags)
	twice, diags := formatter.New(&cfg).Format(once)
	require.Empty(t, diags)
	require.Equal(t, once, twice)

	for _, line := range strings.Split(strings.TrimSuffix(once, "\n"), "\n") {
		require.LessOrEqual(t, runewidth.StringWidth(line), cfg.FileWidth, "line %q", line)
	}
}

// Every input, however malformed, comes out as exactly one token per line
// and no line is dropped.
func TestTotality(t *testing.T) {
	cfg := config.Default()
	cfg.FixBlankLines = false
	lines := []string{"", "  ", "; c", ";  ext", ".data", "x BYTE 1", "p PROC", "p ENDP", "ret", "!!!", "1 + 1"}
	out, _ := formatter.New(&cfg).FormatLines(lines)
	// The extension merges into the preceding comment; everything else
	// stays one line for one line.
	require.Len(t, out, len(lines)-1)
}

func TestEmptyInput(t *testing.T) {
	cfg := config.Default()
	out, diags := formatter.New(&cfg).Format("")
	require.Empty(t, out)
	require.Empty(t, diags)
}

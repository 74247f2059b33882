package ir

import (
	"testing"

	"github.com/rkumar-dev/minic/lexer"
	"github.com/rkumar-dev/minic/parser"
	"github.com/rkumar-dev/minic/semantics"

	"github.com/stretchr/testify/assert"
)

func buildFrom(t *testing.T, src string) []Instr {
	t.Helper()
	toks := lexer.Tokenize(src)
	root, errs := parser.Parse(toks)
	assert.Empty(t, errs)
	res := semantics.Analyze(root)
	assert.Empty(t, res.Errors)
	return Build(res.Typed)
}

func TestBuild_VarDeclWithInit(t *testing.T) {
	code := buildFrom(t, "int x = 1 + 2;")
	rendered := Render(code)
	assert.Equal(t, []string{"t1 = 1 + 2", "x = t1"}, rendered)
}

func TestBuild_IfElseLabels(t *testing.T) {
	code := buildFrom(t, "int x = 1; if (x < 2) { print(1); } else { print(2); }")
	rendered := Render(code)
	assert.Contains(t, rendered, "Lelse1:")
	assert.Contains(t, rendered, "Lend2:")
	assert.Contains(t, rendered, "goto Lend2")
}

func TestBuild_WhileLabels(t *testing.T) {
	code := buildFrom(t, "int i = 0; while (i < 10) { i = i + 1; }")
	rendered := Render(code)
	assert.Contains(t, rendered, "Lwhile1:")
	assert.Contains(t, rendered, "Lwend1:")
}

func TestBuild_ForLabels(t *testing.T) {
	code := buildFrom(t, "for (int i = 0; i < 10; i = i + 1) { print(i); }")
	rendered := Render(code)
	assert.Contains(t, rendered, "Lfor1:")
	assert.Contains(t, rendered, "Lfend1:")
}

func TestBuild_FunctionStartEnd(t *testing.T) {
	code := buildFrom(t, "int add(int a, int b) { return a + b; }")
	rendered := Render(code)
	assert.Equal(t, "func add(a, b)", rendered[0])
	assert.Equal(t, "endfunc add", rendered[len(rendered)-1])
}

func TestBuild_VoidCallHasNoDst(t *testing.T) {
	code := buildFrom(t, "void noop() { return; } noop();")
	rendered := Render(code)
	found := false
	for _, r := range rendered {
		if r == "call _ = noop()" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuild_NonVoidCallGetsFreshTemp(t *testing.T) {
	code := buildFrom(t, "int one() { return 1; } int x = one();")
	rendered := Render(code)
	found := false
	for _, r := range rendered {
		if r == "call t1 = one()" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuild_SharedLabelCounterAcrossConstructs(t *testing.T) {
	code := buildFrom(t, "if (1 < 2) { print(1); } while (0 < 1) { print(2); }")
	rendered := Render(code)
	// if consumes label 1 and 2 (Lelse1, Lend2); while then starts at 3.
	assert.Contains(t, rendered, "Lelse1:")
	assert.Contains(t, rendered, "Lend2:")
	assert.Contains(t, rendered, "Lwhile3:")
	assert.Contains(t, rendered, "Lwend4:")
}

package compiler

import (
	"testing"

	"github.com/rkumar-dev/minic/config"
	"github.com/rkumar-dev/minic/symtab"

	"github.com/stretchr/testify/assert"
)

func TestCompile_SimpleArithmeticPrint(t *testing.T) {
	res := Compile("print(1 + 2 * 3);", config.Default())
	assert.Empty(t, res.Errors)
	assert.Equal(t, "7", res.Output)
}

func TestCompile_VariablesAndAssignment(t *testing.T) {
	res := Compile("int x = 5; x = x + 1; print(x);", config.Default())
	assert.Empty(t, res.Errors)
	assert.Equal(t, "6", res.Output)
}

func TestCompile_IfElse(t *testing.T) {
	res := Compile("int x = 10; if (x > 5) { print(1); } else { print(0); }", config.Default())
	assert.Empty(t, res.Errors)
	assert.Equal(t, "1", res.Output)
}

func TestCompile_WhileLoop(t *testing.T) {
	res := Compile("int i = 0; while (i < 3) { print(i); i = i + 1; }", config.Default())
	assert.Empty(t, res.Errors)
	assert.Equal(t, "0\n1\n2", res.Output)
}

func TestCompile_ForLoop(t *testing.T) {
	res := Compile("for (int i = 0; i < 3; i = i + 1) { print(i); }", config.Default())
	assert.Empty(t, res.Errors)
	assert.Equal(t, "0\n1\n2", res.Output)
}

func TestCompile_RecursiveFunction(t *testing.T) {
	src := `
int fact(int n) {
    if (n <= 1) { return 1; }
    return n * fact(n - 1);
}
print(fact(5));
`
	res := Compile(src, config.Default())
	assert.Empty(t, res.Errors)
	assert.Equal(t, "120", res.Output)
}

func TestCompile_TypeErrorStillProducesFullBundle(t *testing.T) {
	res := Compile("int x = true;", config.Default())
	assert.NotEmpty(t, res.Errors)
	// every later stage still runs even though semantics failed
	assert.NotEmpty(t, res.StageLogs)
	assert.Len(t, res.StageLogs, 16)
}

func TestCompile_SyntaxErrorPrecedesSemanticErrorsInList(t *testing.T) {
	// The semantic error is on line 1 and the syntax error (missing ';') at
	// the end of line 2, yet the syntax error comes first in the list.
	res := Compile("bool b = 1;\nint x = 1", config.Default())
	assert.Len(t, res.Errors, 2)
	assert.Equal(t, "Expected ';' after declaration", res.Errors[0].Message)
	assert.Contains(t, res.Errors[1].Message, "Cannot assign int to bool")
}

func TestCompile_StageLogsCoverAllEightPhases(t *testing.T) {
	res := Compile("print(1);", config.Default())
	assert.Len(t, res.StageLogs, 16)
	assert.Contains(t, res.StageLogs[0], "01. Lexical analysis started")
	assert.Contains(t, res.StageLogs[len(res.StageLogs)-1], "08. VM execution done")
}

func TestCompile_SymbolTableSnapshotIncludesGlobals(t *testing.T) {
	res := Compile("int x = 1;", config.Default())
	scopes, ok := res.SymbolTable["scopes"]
	assert.True(t, ok)
	assert.NotNil(t, scopes)
	snap, ok := scopes.([]symtab.ScopeSnapshot)
	if assert.True(t, ok) && assert.NotEmpty(t, snap) {
		assert.Equal(t, "int", snap[0].Symbols["x"])
	}
}

func TestCompile_StepLimitHaltsRunawayLoop(t *testing.T) {
	opts := config.Options{MaxSteps: 50}
	res := Compile("int i = 0; while (1 == 1) { i = i + 1; }", opts)
	assert.Empty(t, res.Errors)
	assert.True(t, res.StepLimitExceeded)
}

func TestCompile_ModuloAndDivision(t *testing.T) {
	// Division is always true (floating-point) division at runtime even
	// though the static type of int/int is int — the type system governs
	// compile-time checking only, not the VM's arithmetic.
	res := Compile("print(7 % 3); print(7 / 2);", config.Default())
	assert.Empty(t, res.Errors)
	assert.Equal(t, "1\n3.5", res.Output)
}

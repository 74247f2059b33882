package parser

import (
	"testing"

	"github.com/rkumar-dev/minic/ast"
	"github.com/rkumar-dev/minic/lexer"

	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, src string) (*ast.Program, []string) {
	t.Helper()
	toks := lexer.Tokenize(src)
	root, errs := Parse(toks)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return root, msgs
}

func TestParse_VarDeclWithInit(t *testing.T) {
	root, errs := parse(t, "int x = 1 + 2;")
	assert.Empty(t, errs)
	assert.Len(t, root.Body, 1)
	decl, ok := root.Body[0].(*ast.VarDecl)
	assert.True(t, ok)
	assert.Equal(t, "int", decl.VarType)
	assert.Equal(t, "x", decl.Name)
	bin, ok := decl.Init.(*ast.Binary)
	assert.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestParse_OperatorPrecedence(t *testing.T) {
	root, errs := parse(t, "1 + 2 * 3;")
	assert.Empty(t, errs)
	stmt := root.Body[0].(*ast.ExprStmt)
	top, ok := stmt.X.(*ast.Binary)
	assert.True(t, ok)
	assert.Equal(t, "+", top.Op)
	_, leftIsLit := top.Left.(*ast.Literal)
	assert.True(t, leftIsLit)
	right, ok := top.Right.(*ast.Binary)
	assert.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestParse_FunctionDecl(t *testing.T) {
	root, errs := parse(t, "int add(int a, int b) { return a + b; }")
	assert.Empty(t, errs)
	fn, ok := root.Body[0].(*ast.FunctionDecl)
	assert.True(t, ok)
	assert.Equal(t, "int", fn.ReturnType)
	assert.Equal(t, "add", fn.Name)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, ast.Param{Type: "int", Name: "a"}, fn.Params[0])
	assert.Len(t, fn.Body.Statements, 1)
}

func TestParse_IfElse(t *testing.T) {
	root, errs := parse(t, "if (x < 1) { print(1); } else { print(2); }")
	assert.Empty(t, errs)
	ifs, ok := root.Body[0].(*ast.If)
	assert.True(t, ok)
	assert.NotNil(t, ifs.Then)
	assert.NotNil(t, ifs.Else)
}

func TestParse_ForLoop(t *testing.T) {
	root, errs := parse(t, "for (int i = 0; i < 10; i = i + 1) { print(i); }")
	assert.Empty(t, errs)
	f, ok := root.Body[0].(*ast.For)
	assert.True(t, ok)
	assert.NotNil(t, f.Init)
	assert.NotNil(t, f.Cond)
	assert.NotNil(t, f.Post)
}

func TestParse_AssignmentToNonVariableTargetIsSyntaxError(t *testing.T) {
	_, errs := parse(t, "1 = 2;")
	assert.NotEmpty(t, errs)
}

func TestParse_MissingSemicolonRecovers(t *testing.T) {
	// Missing ';' after the first declaration: the parser should record an
	// error and still return the first declaration. Recovery consumes the
	// offending 'int' and skips through the next ';', so the second
	// declaration is not parsed.
	root, errs := parse(t, "int x = 1\nint y = 2;")
	assert.NotEmpty(t, errs)
	assert.GreaterOrEqual(t, len(root.Body), 1)
}

func TestParse_VoidVarDeclIsError(t *testing.T) {
	_, errs := parse(t, "void x;")
	assert.NotEmpty(t, errs)
}

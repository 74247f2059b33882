// Package semantics implements the single-pass type checker: it resolves
// every name against a symtab.SymbolTable, fills in each expression's
// inferred type, and records a diagnostic (continuing best-effort) for
// every violation it finds.
package semantics

import (
	"fmt"

	"github.com/rkumar-dev/minic/ast"
	"github.com/rkumar-dev/minic/symtab"
	"github.com/rkumar-dev/minic/token"
)

const (
	Int   = "int"
	Float = "float"
	Bool  = "bool"
	Void  = "void"
	Error = "error"
)

func numeric(t string) bool { return t == Int || t == Float }

// FuncSig is one entry of the function signature table, populated before
// any function body is analyzed so forward and recursive calls type-check.
type FuncSig struct {
	Return string
	Params []ast.Param
}

// Result bundles everything a semantic analysis pass produces.
type Result struct {
	Typed  *ast.Program
	Errors []token.Diagnostic
	Funcs  map[string]FuncSig
	Table  *symtab.SymbolTable
}

// Analyzer performs the pre-pass (function signature collection) and the
// main pass (type checking and scope resolution) over a Program.
type Analyzer struct {
	table      *symtab.SymbolTable
	errors     []token.Diagnostic
	funcs      map[string]FuncSig
	currentRet *string // nil outside any function body
}

// New creates an Analyzer with a fresh global scope and empty signature
// table.
func New() *Analyzer {
	return &Analyzer{table: symtab.New(), funcs: make(map[string]FuncSig)}
}

// Analyze runs a full pass over root and returns the aggregated Result.
func Analyze(root *ast.Program) Result {
	a := New()
	a.visitProgram(root)
	return Result{Typed: root, Errors: a.errors, Funcs: a.funcs, Table: a.table}
}

func (a *Analyzer) err(line, col int, msg string) {
	a.errors = append(a.errors, token.Diagnostic{Message: msg, Line: line, Col: col})
}

func (a *Analyzer) visitProgram(p *ast.Program) {
	for _, s := range p.Body {
		if fd, ok := s.(*ast.FunctionDecl); ok {
			if _, exists := a.funcs[fd.Name]; exists {
				a.err(0, 0, fmt.Sprintf("Redeclaration of function '%s'", fd.Name))
				continue
			}
			a.funcs[fd.Name] = FuncSig{Return: fd.ReturnType, Params: fd.Params}
		}
	}
	for _, s := range p.Body {
		if fd, ok := s.(*ast.FunctionDecl); ok {
			a.visitFunction(fd)
		} else {
			a.visitStmt(s)
		}
	}
}

func (a *Analyzer) visitFunction(fd *ast.FunctionDecl) {
	savedRet := a.currentRet
	ret := fd.ReturnType
	a.currentRet = &ret
	a.table.Push()
	for _, p := range fd.Params {
		if !a.table.Define(p.Name, p.Type) {
			a.err(0, 0, fmt.Sprintf("Parameter redeclared: %s", p.Name))
		}
	}
	a.visitBlockBody(fd.Body)
	a.table.Pop()
	a.currentRet = savedRet
}

// visitBlockBody visits a block's statements in the scope already pushed
// by the caller (used for function bodies, which share the parameter
// scope instead of opening a second nested one).
func (a *Analyzer) visitBlockBody(b *ast.Block) {
	for _, s := range b.Statements {
		if _, ok := s.(*ast.FunctionDecl); ok {
			a.err(0, 0, "Nested function declarations not allowed")
			continue
		}
		a.visitStmt(s)
	}
}

func (a *Analyzer) visitBlock(b *ast.Block) {
	a.table.Push()
	a.visitBlockBody(b)
	a.table.Pop()
}

func (a *Analyzer) visitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		a.visitBlock(n)
	case *ast.VarDecl:
		a.visitVarDecl(n)
	case *ast.If:
		a.visitIf(n)
	case *ast.While:
		a.visitWhile(n)
	case *ast.For:
		a.visitFor(n)
	case *ast.Print:
		a.visitExpr(n.Expr)
	case *ast.Return:
		a.visitReturn(n)
	case *ast.ExprStmt:
		a.visitExpr(n.X)
	}
}

func (a *Analyzer) visitVarDecl(n *ast.VarDecl) {
	if !a.table.Define(n.Name, n.VarType) {
		a.err(n.Line, n.Col, fmt.Sprintf("Redeclaration of '%s'", n.Name))
	}
	if n.Init != nil {
		t := a.visitExpr(n.Init)
		if !assignable(n.VarType, t) {
			a.err(n.Line, n.Col, fmt.Sprintf("Cannot assign %s to %s in declaration '%s'", t, n.VarType, n.Name))
		}
	}
}

func (a *Analyzer) visitIf(n *ast.If) {
	if t := a.visitExpr(n.Cond); t != Bool {
		a.err(0, 0, "if condition must be bool")
	}
	a.visitStmt(n.Then)
	if n.Else != nil {
		a.visitStmt(n.Else)
	}
}

func (a *Analyzer) visitWhile(n *ast.While) {
	if t := a.visitExpr(n.Cond); t != Bool {
		a.err(0, 0, "while condition must be bool")
	}
	a.visitStmt(n.Body)
}

func (a *Analyzer) visitFor(n *ast.For) {
	a.table.Push()
	if n.Init != nil {
		a.visitStmt(n.Init)
	}
	if n.Cond != nil {
		if t := a.visitExpr(n.Cond); t != Bool {
			a.err(0, 0, "for condition must be bool")
		}
	}
	if n.Post != nil {
		a.visitStmt(n.Post)
	}
	a.visitStmt(n.Body)
	a.table.Pop()
}

func (a *Analyzer) visitReturn(n *ast.Return) {
	if a.currentRet == nil {
		// Top-level return: type-check only, no error — it ends the
		// program at runtime instead.
		if n.Expr != nil {
			a.visitExpr(n.Expr)
		}
		return
	}
	if n.Expr == nil {
		if *a.currentRet != Void {
			a.err(0, 0, fmt.Sprintf("Return value required for function returning %s", *a.currentRet))
		}
		return
	}
	t := a.visitExpr(n.Expr)
	if !assignable(*a.currentRet, t) {
		a.err(0, 0, fmt.Sprintf("Cannot return %s from function returning %s", t, *a.currentRet))
	}
}

// visitExpr dispatches on expression kind, fills in n.Inferred via
// SetType, and returns the inferred type for the caller's convenience.
func (a *Analyzer) visitExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Assign:
		return a.visitAssign(n)
	case *ast.Call:
		return a.visitCall(n)
	case *ast.Literal:
		n.SetType(string(n.Kind))
		return string(n.Kind)
	case *ast.Var:
		return a.visitVar(n)
	case *ast.Unary:
		return a.visitUnary(n)
	case *ast.Binary:
		return a.visitBinary(n)
	case *ast.Grouping:
		t := a.visitExpr(n.X)
		n.SetType(t)
		return t
	}
	e.SetType(Error)
	return Error
}

func (a *Analyzer) visitAssign(n *ast.Assign) string {
	sym, ok := a.table.Resolve(n.Name)
	if !ok {
		a.err(n.Line, n.Col, fmt.Sprintf("Undeclared variable '%s'", n.Name))
		n.SetType(Error)
		a.visitExpr(n.Value)
		return Error
	}
	valType := a.visitExpr(n.Value)
	if !assignable(sym.Type, valType) {
		a.err(n.Line, n.Col, fmt.Sprintf("Cannot assign %s to %s variable '%s'", valType, sym.Type, n.Name))
		n.SetType(Error)
		return Error
	}
	n.SetType(sym.Type)
	return sym.Type
}

func (a *Analyzer) visitCall(n *ast.Call) string {
	sig, ok := a.funcs[n.Name]
	if !ok {
		a.err(n.Line, n.Col, fmt.Sprintf("Call to undefined function '%s'", n.Name))
		n.SetType(Error)
		for _, arg := range n.Args {
			a.visitExpr(arg)
		}
		return Error
	}
	if len(n.Args) != len(sig.Params) {
		a.err(n.Line, n.Col, fmt.Sprintf("Function '%s' expects %d arg(s), got %d", n.Name, len(sig.Params), len(n.Args)))
	}
	limit := len(sig.Params)
	if len(n.Args) < limit {
		limit = len(n.Args)
	}
	for i := 0; i < limit; i++ {
		at := a.visitExpr(n.Args[i])
		pt := sig.Params[i].Type
		if !assignable(pt, at) {
			a.err(n.Line, n.Col, fmt.Sprintf("Argument type %s incompatible with parameter %s in call to '%s'", at, pt, n.Name))
		}
	}
	for i := limit; i < len(n.Args); i++ {
		a.visitExpr(n.Args[i])
	}
	n.SetType(sig.Return)
	return sig.Return
}

func (a *Analyzer) visitVar(n *ast.Var) string {
	sym, ok := a.table.Resolve(n.Name)
	if !ok {
		a.err(n.Line, n.Col, fmt.Sprintf("Undeclared variable '%s'", n.Name))
		n.SetType(Error)
		return Error
	}
	n.SetType(sym.Type)
	return sym.Type
}

func (a *Analyzer) visitUnary(n *ast.Unary) string {
	t := a.visitExpr(n.Right)
	switch n.Op {
	case "!":
		if t != Bool {
			a.err(0, 0, "'!' requires bool")
			n.SetType(Error)
			return Error
		}
		n.SetType(Bool)
		return Bool
	case "+", "-":
		if !numeric(t) {
			a.err(0, 0, fmt.Sprintf("Unary '%s' requires numeric operand", n.Op))
			n.SetType(Error)
			return Error
		}
		n.SetType(t)
		return t
	}
	n.SetType(Error)
	return Error
}

func (a *Analyzer) visitBinary(n *ast.Binary) string {
	lt := a.visitExpr(n.Left)
	rt := a.visitExpr(n.Right)
	op := n.Op
	switch op {
	case "+", "-", "*", "/":
		if numeric(lt) && numeric(rt) {
			result := Int
			if lt == Float || rt == Float {
				result = Float
			}
			n.SetType(result)
			return result
		}
		a.err(0, 0, fmt.Sprintf("Operator '%s' requires numeric operands", op))
	case "%":
		if lt == Int && rt == Int {
			n.SetType(Int)
			return Int
		}
		a.err(0, 0, "'%' requires int operands")
	case "<", "<=", ">", ">=":
		if numeric(lt) && numeric(rt) {
			n.SetType(Bool)
			return Bool
		}
		a.err(0, 0, fmt.Sprintf("Operator '%s' requires numeric operands", op))
	case "==", "!=":
		if lt == rt && lt != Error {
			n.SetType(Bool)
			return Bool
		}
		a.err(0, 0, "'=='/'!=' require operands of the same type")
	case "&&", "||":
		if lt == Bool && rt == Bool {
			n.SetType(Bool)
			return Bool
		}
		a.err(0, 0, "'&&'/'||' require bool operands")
	default:
		a.err(0, 0, fmt.Sprintf("Unknown operator '%s'", op))
	}
	n.SetType(Error)
	return Error
}

// assignable is the type-compatibility predicate: exact match, int→float
// widening, and void→void.
func assignable(to, from string) bool {
	if to == from {
		return true
	}
	if to == Float && from == Int {
		return true
	}
	if to == Void {
		return from == Void
	}
	return false
}

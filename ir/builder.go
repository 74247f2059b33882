package ir

import (
	"strconv"

	"github.com/rkumar-dev/minic/ast"
)

// Builder lowers a typed AST into a three-address IR sequence. Its
// temporary and label counters are per-Builder state — a fresh Builder
// always starts its numbering from 1, never shared across invocations.
type Builder struct {
	code     []Instr
	tempNum  int
	labelNum int
}

// NewBuilder creates a Builder with zeroed counters.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build lowers an entire Program into its IR sequence.
func Build(root *ast.Program) []Instr {
	b := NewBuilder()
	for _, s := range root.Body {
		b.genStmt(s)
	}
	return b.code
}

func (b *Builder) emit(i Instr) { b.code = append(b.code, i) }

func (b *Builder) newTemp() string {
	b.tempNum++
	return "t" + strconv.Itoa(b.tempNum)
}

func (b *Builder) newLabel(base string) string {
	b.labelNum++
	return base + strconv.Itoa(b.labelNum)
}

// genExpr lowers an expression to an operand: a literal, a variable name,
// or a fresh temporary holding the computed value.
func (b *Builder) genExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Literal:
		return literalOperand(n)
	case *ast.Var:
		return n.Name
	case *ast.Assign:
		rhs := b.genExpr(n.Value)
		b.emit(Assign{Dst: n.Name, Src: rhs})
		return n.Name
	case *ast.Unary:
		t := b.newTemp()
		b.emit(Unary{Dst: t, Op: n.Op, Operand: b.genExpr(n.Right)})
		return t
	case *ast.Binary:
		left := b.genExpr(n.Left)
		right := b.genExpr(n.Right)
		t := b.newTemp()
		b.emit(Bin{Dst: t, Op: n.Op, Left: left, Right: right})
		return t
	case *ast.Grouping:
		return b.genExpr(n.X)
	case *ast.Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = b.genExpr(a)
		}
		isVoid := n.Type() == "void"
		if isVoid {
			b.emit(Call{HasDst: false, Name: n.Name, Args: args})
			return "0"
		}
		t := b.newTemp()
		b.emit(Call{Dst: t, HasDst: true, Name: n.Name, Args: args})
		return t
	}
	t := b.newTemp()
	b.emit(Assign{Dst: t, Src: "0"})
	return t
}

func literalOperand(n *ast.Literal) string {
	switch n.Kind {
	case ast.LitBool:
		if n.Value.(bool) {
			return "1"
		}
		return "0"
	case ast.LitInt:
		return strconv.FormatInt(n.Value.(int64), 10)
	case ast.LitFloat:
		return strconv.FormatFloat(n.Value.(float64), 'g', -1, 64)
	}
	return "0"
}

func (b *Builder) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		for _, st := range n.Statements {
			b.genStmt(st)
		}
	case *ast.VarDecl:
		if n.Init != nil {
			v := b.genExpr(n.Init)
			b.emit(Assign{Dst: n.Name, Src: v})
		}
	case *ast.If:
		elseLbl := b.newLabel("Lelse")
		endLbl := b.newLabel("Lend")
		cond := b.genExpr(n.Cond)
		b.emit(IfFalse{Cond: cond, Label: elseLbl})
		b.genStmt(n.Then)
		b.emit(Goto{Label: endLbl})
		b.emit(Label{Name: elseLbl})
		if n.Else != nil {
			b.genStmt(n.Else)
		}
		b.emit(Label{Name: endLbl})
	case *ast.While:
		start := b.newLabel("Lwhile")
		end := b.newLabel("Lwend")
		b.emit(Label{Name: start})
		cond := b.genExpr(n.Cond)
		b.emit(IfFalse{Cond: cond, Label: end})
		b.genStmt(n.Body)
		b.emit(Goto{Label: start})
		b.emit(Label{Name: end})
	case *ast.For:
		start := b.newLabel("Lfor")
		end := b.newLabel("Lfend")
		if n.Init != nil {
			b.genStmt(n.Init)
		}
		b.emit(Label{Name: start})
		if n.Cond != nil {
			b.emit(IfFalse{Cond: b.genExpr(n.Cond), Label: end})
		}
		b.genStmt(n.Body)
		if n.Post != nil {
			b.genStmt(n.Post)
		}
		b.emit(Goto{Label: start})
		b.emit(Label{Name: end})
	case *ast.Print:
		b.emit(Print{Value: b.genExpr(n.Expr)})
	case *ast.Return:
		if n.Expr != nil {
			b.emit(Return{Value: b.genExpr(n.Expr), HasValue: true})
		} else {
			b.emit(Return{HasValue: false})
		}
	case *ast.ExprStmt:
		b.genExpr(n.X)
	case *ast.FunctionDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		b.emit(FuncStart{Name: n.Name, Params: params})
		b.genStmt(n.Body)
		b.emit(FuncEnd{Name: n.Name})
	}
}

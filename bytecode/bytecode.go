// Package bytecode mirrors the IR one instruction at a time into a linear
// bytecode form: same operand shapes, uppercase mnemonics, and a flat
// []Instr the VM executes directly (no separate constant pool or operand
// stack — everything addresses named slots exactly like the IR does).
package bytecode

import (
	"fmt"

	"github.com/rkumar-dev/minic/ir"
)

// Instr is the closed sum of bytecode instruction types.
type Instr interface {
	fmt.Stringer
	instrNode()
}

type instrBase struct{}

func (instrBase) instrNode() {}

type Label struct {
	instrBase
	Name string
}

func (i Label) String() string { return i.Name + ":" }

type Jmp struct {
	instrBase
	Label string
}

func (i Jmp) String() string { return "JMP " + i.Label }

type IfFalse struct {
	instrBase
	Cond  string
	Label string
}

func (i IfFalse) String() string { return fmt.Sprintf("IFFALSE %s %s", i.Cond, i.Label) }

type Mov struct {
	instrBase
	Dst string
	Src string
}

func (i Mov) String() string { return fmt.Sprintf("MOV %s, %s", i.Dst, i.Src) }

type Unary struct {
	instrBase
	Dst string
	Op  string
	Src string
}

func (i Unary) String() string { return fmt.Sprintf("UNARY %s, %s, %s", i.Dst, i.Op, i.Src) }

type Bin struct {
	instrBase
	Dst   string
	Op    string
	Left  string
	Right string
}

func (i Bin) String() string {
	return fmt.Sprintf("BIN %s, %s, %s, %s", i.Dst, i.Op, i.Left, i.Right)
}

type Print struct {
	instrBase
	Value string
}

func (i Print) String() string { return "PRINT " + i.Value }

type Ret struct {
	instrBase
	Value    string
	HasValue bool
}

func (i Ret) String() string {
	if !i.HasValue {
		return "RET"
	}
	return "RET " + i.Value
}

type Func struct {
	instrBase
	Name   string
	Params []string
}

func (i Func) String() string { return fmt.Sprintf("FUNC %s(%s)", i.Name, joinComma(i.Params)) }

type EndFunc struct {
	instrBase
	Name string
}

func (i EndFunc) String() string { return "ENDFUNC " + i.Name }

type Call struct {
	instrBase
	Dst    string
	HasDst bool
	Name   string
	Args   []string
}

func (i Call) String() string {
	dst := "_"
	if i.HasDst {
		dst = i.Dst
	}
	return fmt.Sprintf("CALL %s = %s(%s)", dst, i.Name, joinComma(i.Args))
}

func joinComma(xs []string) string {
	out := ""
	for idx, x := range xs {
		if idx > 0 {
			out += ", "
		}
		out += x
	}
	return out
}

// Render turns a bytecode sequence into its rendered-string form, used
// directly by the output bundle's "bytecode" field.
func Render(code []Instr) []string {
	out := make([]string, len(code))
	for i, ins := range code {
		out[i] = ins.String()
	}
	return out
}

// Gen lowers an IR sequence into bytecode, one instruction at a time — a
// structural mirror of the IR with renamed, uppercase mnemonics.
func Gen(code []ir.Instr) []Instr {
	out := make([]Instr, 0, len(code))
	for _, ins := range code {
		switch n := ins.(type) {
		case ir.Label:
			out = append(out, Label{Name: n.Name})
		case ir.Goto:
			out = append(out, Jmp{Label: n.Label})
		case ir.IfFalse:
			out = append(out, IfFalse{Cond: n.Cond, Label: n.Label})
		case ir.Assign:
			out = append(out, Mov{Dst: n.Dst, Src: n.Src})
		case ir.Unary:
			out = append(out, Unary{Dst: n.Dst, Op: n.Op, Src: n.Operand})
		case ir.Bin:
			out = append(out, Bin{Dst: n.Dst, Op: n.Op, Left: n.Left, Right: n.Right})
		case ir.Print:
			out = append(out, Print{Value: n.Value})
		case ir.Return:
			out = append(out, Ret{Value: n.Value, HasValue: n.HasValue})
		case ir.FuncStart:
			out = append(out, Func{Name: n.Name, Params: n.Params})
		case ir.FuncEnd:
			out = append(out, EndFunc{Name: n.Name})
		case ir.Call:
			out = append(out, Call{Dst: n.Dst, HasDst: n.HasDst, Name: n.Name, Args: n.Args})
		}
	}
	return out
}

package vm

import (
	"testing"

	"github.com/rkumar-dev/minic/bytecode"

	"github.com/stretchr/testify/assert"
)

func TestRun_PrintLiteral(t *testing.T) {
	code := []bytecode.Instr{bytecode.Print{Value: "42"}}
	res := Run(code, 0)
	assert.Equal(t, "42", res.Output)
}

func TestRun_PrintFormatsIntegersWithoutDecimal(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Bin{Dst: "t1", Op: "+", Left: "1", Right: "1"},
		bytecode.Print{Value: "t1"},
	}
	res := Run(code, 0)
	assert.Equal(t, "2", res.Output)
}

func TestRun_PrintFormatsFloats(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Bin{Dst: "t1", Op: "/", Left: "1", Right: "2"},
		bytecode.Print{Value: "t1"},
	}
	res := Run(code, 0)
	assert.Equal(t, "0.5", res.Output)
}

func TestRun_JumpAndIfFalse(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Mov{Dst: "x", Src: "0"},
		bytecode.IfFalse{Cond: "x", Label: "END"},
		bytecode.Print{Value: "1"},
		bytecode.Label{Name: "END"},
		bytecode.Print{Value: "2"},
	}
	res := Run(code, 0)
	assert.Equal(t, "2", res.Output)
}

func TestRun_WhileLoop(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Mov{Dst: "i", Src: "0"},
		bytecode.Label{Name: "L1"},
		bytecode.Bin{Dst: "t1", Op: "<", Left: "i", Right: "3"},
		bytecode.IfFalse{Cond: "t1", Label: "L2"},
		bytecode.Print{Value: "i"},
		bytecode.Bin{Dst: "i", Op: "+", Left: "i", Right: "1"},
		bytecode.Jmp{Label: "L1"},
		bytecode.Label{Name: "L2"},
	}
	res := Run(code, 0)
	assert.Equal(t, "0\n1\n2", res.Output)
}

func TestRun_FunctionCallAndReturn(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Func{Name: "inc", Params: []string{"n"}},
		bytecode.Bin{Dst: "t1", Op: "+", Left: "n", Right: "1"},
		bytecode.Ret{Value: "t1", HasValue: true},
		bytecode.EndFunc{Name: "inc"},
		bytecode.Call{Dst: "r", HasDst: true, Name: "inc", Args: []string{"4"}},
		bytecode.Print{Value: "r"},
	}
	res := Run(code, 0)
	assert.Equal(t, "5", res.Output)
}

func TestRun_FunctionEndWithoutReturnYieldsZero(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Func{Name: "f", Params: nil},
		bytecode.EndFunc{Name: "f"},
		bytecode.Call{Dst: "r", HasDst: true, Name: "f", Args: nil},
		bytecode.Print{Value: "r"},
	}
	res := Run(code, 0)
	assert.Equal(t, "0", res.Output)
}

func TestRun_UnknownFunctionCallIsNoOp(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Call{Dst: "r", HasDst: true, Name: "missing", Args: nil},
		bytecode.Print{Value: "1"},
	}
	res := Run(code, 0)
	assert.Equal(t, "1", res.Output)
}

func TestRun_UnknownVariableReadsAsZero(t *testing.T) {
	code := []bytecode.Instr{bytecode.Print{Value: "undeclared"}}
	res := Run(code, 0)
	assert.Equal(t, "0", res.Output)
}

func TestRun_GlobalReturnEndsProgram(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Print{Value: "1"},
		bytecode.Ret{HasValue: false},
		bytecode.Print{Value: "2"},
	}
	res := Run(code, 0)
	assert.Equal(t, "1", res.Output)
}

func TestRun_StepLimitStopsExecution(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Mov{Dst: "i", Src: "0"},
		bytecode.Label{Name: "L1"},
		bytecode.Print{Value: "i"},
		bytecode.Bin{Dst: "i", Op: "+", Left: "i", Right: "1"},
		bytecode.Jmp{Label: "L1"},
	}
	res := Run(code, 5)
	assert.True(t, res.StepLimitExceeded)
}

func TestRun_GlobalSkipsFunctionBody(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Func{Name: "f", Params: nil},
		bytecode.Print{Value: "should-not-run"},
		bytecode.EndFunc{Name: "f"},
		bytecode.Print{Value: "1"},
	}
	res := Run(code, 0)
	assert.Equal(t, "1", res.Output)
}

func TestVM_DivisionByZeroProducesInf(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Bin{Dst: "t1", Op: "/", Left: "1", Right: "0"},
		bytecode.Print{Value: "t1"},
	}
	res := Run(code, 0)
	assert.Equal(t, "+Inf", res.Output)
}

func TestVM_NegativeModuloFollowsFlooredConvention(t *testing.T) {
	code := []bytecode.Instr{
		bytecode.Bin{Dst: "t1", Op: "%", Left: "-7", Right: "3"},
		bytecode.Print{Value: "t1"},
	}
	res := Run(code, 0)
	assert.Equal(t, "2", res.Output)
}

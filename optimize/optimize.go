// Package optimize runs two IR-to-IR cleanup passes: constant folding
// with a handful of algebraic identities, then a conservative, reverse-scan
// dead-code elimination restricted to compiler-introduced temporaries.
//
// Neither pass reorders instructions or reasons about control flow beyond
// what a single linear backward scan sees — this mirrors the Python
// reference optimizer exactly, including its deliberately narrow DCE
// (only sheds dead `t<N>` temporaries, never user variables).
package optimize

import (
	"regexp"
	"strconv"

	"github.com/rkumar-dev/minic/ir"
)

var tempRe = regexp.MustCompile(`^t[0-9]+$`)

func isTemp(name string) bool { return tempRe.MatchString(name) }

func isConst(x string) bool {
	if x == "" {
		return false
	}
	_, err := strconv.ParseFloat(x, 64)
	return err == nil
}

func constVal(x string) (float64, bool) {
	v, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func fmtNum(x float64) string {
	if x == float64(int64(x)) {
		return strconv.FormatInt(int64(x), 10)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func evalBin(op, a, b string) (string, bool) {
	av, ok1 := constVal(a)
	bv, ok2 := constVal(b)
	if !ok1 || !ok2 {
		return "", false
	}
	switch op {
	case "+":
		return fmtNum(av + bv), true
	case "-":
		return fmtNum(av - bv), true
	case "*":
		return fmtNum(av * bv), true
	case "/":
		if bv == 0 {
			return "", false
		}
		return fmtNum(av / bv), true
	case "%":
		if av == float64(int64(av)) && bv == float64(int64(bv)) && bv != 0 {
			return fmtNum(flooredMod(int64(av), int64(bv))), true
		}
		return "", false
	case "<":
		return boolStr(av < bv), true
	case "<=":
		return boolStr(av <= bv), true
	case ">":
		return boolStr(av > bv), true
	case ">=":
		return boolStr(av >= bv), true
	case "==":
		return boolStr(av == bv), true
	case "!=":
		return boolStr(av != bv), true
	case "&&":
		return boolStr(av != 0 && bv != 0), true
	case "||":
		return boolStr(av != 0 || bv != 0), true
	}
	return "", false
}

// flooredMod implements Python's modulo convention (sign follows the
// divisor), not Go's native truncated remainder (sign follows the dividend).
func flooredMod(ia, ib int64) float64 {
	m := ia % ib
	if m != 0 && (m < 0) != (ib < 0) {
		m += ib
	}
	return float64(m)
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func evalUnary(op, a string) (string, bool) {
	av, ok := constVal(a)
	if !ok {
		return "", false
	}
	switch op {
	case "!":
		return boolStr(av == 0), true
	case "+":
		return fmtNum(av), true
	case "-":
		return fmtNum(-av), true
	}
	return "", false
}

// ConstantFold applies constant folding and a small set of algebraic
// identities (x+0, x-0, x*1, x/1, x*0, 0*x) to every Bin/Unary instruction.
func ConstantFold(code []ir.Instr) []ir.Instr {
	out := make([]ir.Instr, 0, len(code))
	for _, ins := range code {
		switch n := ins.(type) {
		case ir.Bin:
			if isConst(n.Left) && isConst(n.Right) {
				if v, ok := evalBin(n.Op, n.Left, n.Right); ok {
					out = append(out, ir.Assign{Dst: n.Dst, Src: v})
					continue
				}
			}
			if (n.Op == "+" || n.Op == "-") && isConst(n.Right) {
				if v, _ := constVal(n.Right); v == 0 {
					out = append(out, ir.Assign{Dst: n.Dst, Src: n.Left})
					continue
				}
			}
			if n.Op == "*" && isConst(n.Right) {
				if v, _ := constVal(n.Right); v == 1 {
					out = append(out, ir.Assign{Dst: n.Dst, Src: n.Left})
					continue
				}
			}
			if n.Op == "/" && isConst(n.Right) {
				if v, _ := constVal(n.Right); v == 1 {
					out = append(out, ir.Assign{Dst: n.Dst, Src: n.Left})
					continue
				}
			}
			if n.Op == "*" && isConst(n.Right) {
				if v, _ := constVal(n.Right); v == 0 {
					out = append(out, ir.Assign{Dst: n.Dst, Src: "0"})
					continue
				}
			}
			if n.Op == "*" && isConst(n.Left) {
				if v, _ := constVal(n.Left); v == 0 {
					out = append(out, ir.Assign{Dst: n.Dst, Src: "0"})
					continue
				}
			}
			out = append(out, n)
		case ir.Unary:
			if isConst(n.Operand) {
				if v, ok := evalUnary(n.Op, n.Operand); ok {
					out = append(out, ir.Assign{Dst: n.Dst, Src: v})
					continue
				}
			}
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out
}

func usedVars(ins ir.Instr) []string {
	switch n := ins.(type) {
	case ir.Bin:
		return []string{n.Left, n.Right}
	case ir.Unary:
		return []string{n.Operand}
	case ir.Assign:
		return []string{n.Src}
	case ir.IfFalse:
		return []string{n.Cond}
	case ir.Print:
		return []string{n.Value}
	case ir.Call:
		return n.Args
	case ir.Return:
		if n.HasValue {
			return []string{n.Value}
		}
	}
	return nil
}

func definedVar(ins ir.Instr) (string, bool) {
	switch n := ins.(type) {
	case ir.Assign:
		return n.Dst, true
	case ir.Bin:
		return n.Dst, true
	case ir.Unary:
		return n.Dst, true
	}
	return "", false
}

func hasSideEffect(ins ir.Instr) bool {
	switch n := ins.(type) {
	case ir.Print, ir.Return, ir.IfFalse, ir.Goto, ir.Label, ir.Call, ir.FuncStart, ir.FuncEnd:
		return true
	case ir.Assign:
		return !isTemp(n.Dst)
	}
	return false
}

// DCE removes instructions that define a dead temporary and have no other
// side effect, scanning backward so liveness is exact for straight-line
// temp chains. It is conservative about control flow: jumps, labels, and
// calls are never pruned, and liveness updates run even for instructions
// that end up dropped, matching the reference implementation.
func DCE(code []ir.Instr) []ir.Instr {
	live := make(map[string]bool)
	out := make([]ir.Instr, 0, len(code))
	for i := len(code) - 1; i >= 0; i-- {
		ins := code[i]
		d, hasDst := definedVar(ins)
		keep := hasSideEffect(ins) || !hasDst || (hasDst && live[d])
		if keep {
			out = append(out, ins)
		}
		for _, u := range usedVars(ins) {
			if u != "" && !isConst(u) {
				live[u] = true
			}
		}
		if hasDst && live[d] {
			delete(live, d)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Optimize runs the full pipeline: constant folding followed by dead-code
// elimination.
func Optimize(code []ir.Instr) []ir.Instr {
	return DCE(ConstantFold(code))
}

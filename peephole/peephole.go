// Package peephole runs three small, order-dependent cleanup passes over
// a bytecode sequence: drop self-moves, drop a jump immediately followed
// by its own target label, then collapse runs of consecutive labels into
// one and remap every jump/iffalse target through the resulting chain.
package peephole

import "github.com/rkumar-dev/minic/bytecode"

// RemoveSelfMoves drops every MOV whose destination and source are the
// same slot.
func RemoveSelfMoves(code []bytecode.Instr) []bytecode.Instr {
	out := make([]bytecode.Instr, 0, len(code))
	for _, ins := range code {
		if m, ok := ins.(bytecode.Mov); ok && m.Dst == m.Src {
			continue
		}
		out = append(out, ins)
	}
	return out
}

// RemoveJmpToNextLabel drops a JMP when the very next instruction is the
// label it jumps to.
func RemoveJmpToNextLabel(code []bytecode.Instr) []bytecode.Instr {
	out := make([]bytecode.Instr, 0, len(code))
	n := len(code)
	for i := 0; i < n; i++ {
		ins := code[i]
		if j, ok := ins.(bytecode.Jmp); ok && i+1 < n {
			if lbl, ok2 := code[i+1].(bytecode.Label); ok2 && lbl.Name == j.Label {
				continue
			}
		}
		out = append(out, ins)
	}
	return out
}

// CollapseConsecutiveLabels merges runs of adjacent labels into the first
// label of the run, then rewrites every jump/iffalse target through the
// resulting rename chain.
func CollapseConsecutiveLabels(code []bytecode.Instr) []bytecode.Instr {
	out := make([]bytecode.Instr, 0, len(code))
	labelMap := make(map[string]string)
	prevLabel := ""
	havePrev := false
	for _, ins := range code {
		if lbl, ok := ins.(bytecode.Label); ok {
			if !havePrev {
				out = append(out, ins)
				prevLabel = lbl.Name
				havePrev = true
			} else {
				labelMap[lbl.Name] = prevLabel
			}
			continue
		}
		havePrev = false
		out = append(out, ins)
	}

	remap := func(name string) string {
		for {
			next, ok := labelMap[name]
			if !ok {
				return name
			}
			name = next
		}
	}

	remapped := make([]bytecode.Instr, 0, len(out))
	for _, ins := range out {
		switch n := ins.(type) {
		case bytecode.Jmp:
			remapped = append(remapped, bytecode.Jmp{Label: remap(n.Label)})
		case bytecode.IfFalse:
			remapped = append(remapped, bytecode.IfFalse{Cond: n.Cond, Label: remap(n.Label)})
		default:
			remapped = append(remapped, ins)
		}
	}
	return remapped
}

// Run applies all three passes in their required order.
func Run(code []bytecode.Instr) []bytecode.Instr {
	code = RemoveSelfMoves(code)
	code = RemoveJmpToNextLabel(code)
	code = CollapseConsecutiveLabels(code)
	return code
}

package pcode

import (
	"strconv"

	"github.com/aketzali/minic/internal/tac"
)

// Lower implements spec §4.4's lower(tac) → pcode contract.
//
// Two passes: the first identifies "unstored conditions" — a temporary
// defined by a binary/unary op and consumed immediately and only by the
// following IfGoto — so the second pass can leave that value on the operand
// stack instead of round-tripping it through a memory cell (spec's
// peephole). The second pass walks the TAC linearly, assigning memory
// addresses to variables and temporaries on demand as they are first
// declared or stored, and emits P-code. Labels are carried through as
// symbolic text; nothing here resolves a label to an instruction index (spec
// §9 — that happens once, at VM load time).
func Lower(prog *tac.Program) *Program {
	l := &lowerer{addr: map[string]int{}}
	peephole := findUnstoredConditions(prog)

	skipPush := false
	for i, instr := range prog.Instrs {
		if peephole[i] {
			l.emitConditionPush(instr)
			skipPush = true
			continue
		}
		if instr.Kind == tac.IfGoto && skipPush {
			l.emitIfGotoTail(instr)
			skipPush = false
			continue
		}
		l.lowerInstr(instr)
	}
	l.emit(Hlt, "")

	return &Program{Instrs: l.instrs, Addresses: l.addr}
}

type lowerer struct {
	instrs   []Instr
	addr     map[string]int
	nextAddr int
}

func (l *lowerer) emit(op Mnemonic, arg string) {
	l.instrs = append(l.instrs, Instr{Op: op, Arg: arg})
}

// address returns the on-demand memory cell for name, assigning the next
// free one the first time it's seen.
func (l *lowerer) address(name string) string {
	if a, ok := l.addr[name]; ok {
		return strconv.Itoa(a)
	}
	a := l.nextAddr
	l.addr[name] = a
	l.nextAddr++
	return strconv.Itoa(a)
}

func (l *lowerer) pushOperand(o tac.Operand) {
	switch o.Kind {
	case tac.OpLiteral:
		l.emit(Ldc, o.String())
	case tac.OpString:
		l.emit(Ldc, o.Text)
	default: // OpVar, OpTemp
		l.emit(Lod, l.address(o.Name))
	}
}

// emitBinaryPush pushes both operands and the operator's result, leaving it
// on the stack. "!=" has no native mnemonic (spec §4.4): it's materialised
// as equ ; ldc 0 ; equ, keeping the VM's relational set minimal while still
// accepting a hand-written neq.
func (l *lowerer) emitBinaryPush(op string, left, right tac.Operand) {
	l.pushOperand(left)
	l.pushOperand(right)
	if op == "!=" {
		l.emit(Equ, "")
		l.emit(Ldc, "0")
		l.emit(Equ, "")
		return
	}
	mnem, ok := binaryOpMnemonic[op]
	if !ok {
		mnem = Equ
	}
	l.emit(mnem, "")
}

// emitConditionPush computes instr's value onto the stack without storing
// it — used both by the peephole path and, via lowerInstr, by the ordinary
// stored path.
func (l *lowerer) emitConditionPush(instr tac.Instr) {
	switch instr.Kind {
	case tac.AssignBinary:
		l.emitBinaryPush(instr.Op, instr.Left, instr.Right)
	case tac.AssignNot:
		l.pushOperand(instr.Right)
		l.emit(Ldc, "0")
		l.emit(Equ, "")
	case tac.AssignNeg:
		l.emit(Ldc, "0")
		l.pushOperand(instr.Right)
		l.emit(Sbi, "")
	}
}

// emitIfGotoTail emits the jump once the condition is already on the stack.
// `if not c goto L` maps directly onto fjp (jump-if-false); `if c goto L`
// negates the condition first so fjp still fires on the right sense (spec
// §4.4 — do-while's backward branch is the only user of the positive form).
func (l *lowerer) emitIfGotoTail(instr tac.Instr) {
	if !instr.Negate {
		l.emit(Ldc, "0")
		l.emit(Equ, "")
	}
	l.emit(Fjp, instr.Target)
}

func (l *lowerer) lowerInstr(instr tac.Instr) {
	switch instr.Kind {
	case tac.Declare:
		l.address(instr.Name) // reserve a cell; no run-time instruction

	case tac.Read:
		l.emit(Rd, "")
		l.emit(Sto, l.address(instr.Name))

	case tac.Write:
		l.pushOperand(instr.WriteOp)
		l.emit(Wr, "")

	case tac.AssignLit, tac.AssignCopy:
		l.pushOperand(instr.Right)
		l.emit(Sto, l.address(instr.Name))

	case tac.AssignBinary, tac.AssignNot, tac.AssignNeg:
		l.emitConditionPush(instr)
		l.emit(Sto, l.address(instr.Name))

	case tac.IfGoto:
		l.pushOperand(instr.Right)
		l.emitIfGotoTail(instr)

	case tac.Goto:
		l.emit(Ujp, instr.Target)

	case tac.Label:
		l.emit(Lab, instr.Label)

	case tac.Comment:
		// No P-code equivalent; dropped rather than threaded through as a
		// no-op mnemonic the VM would have to special-case.
	}
}

// findUnstoredConditions scans the whole program and returns the set of
// instruction indices whose result is used exactly once — as the very next
// instruction's IfGoto condition — and so never needs a memory round-trip.
func findUnstoredConditions(prog *tac.Program) map[int]bool {
	uses := map[string]int{}
	for _, instr := range prog.Instrs {
		countTempUse(uses, instr.Left)
		countTempUse(uses, instr.Right)
		countTempUse(uses, instr.WriteOp)
	}

	candidates := map[int]bool{}
	for i, instr := range prog.Instrs {
		switch instr.Kind {
		case tac.AssignBinary, tac.AssignNot, tac.AssignNeg:
		default:
			continue
		}
		if i+1 >= len(prog.Instrs) {
			continue
		}
		next := prog.Instrs[i+1]
		if next.Kind != tac.IfGoto {
			continue
		}
		if next.Right.Kind != tac.OpTemp || next.Right.Name != instr.Name {
			continue
		}
		if uses[instr.Name] == 1 {
			candidates[i] = true
		}
	}
	return candidates
}

func countTempUse(uses map[string]int, o tac.Operand) {
	if o.Kind == tac.OpTemp {
		uses[o.Name]++
	}
}

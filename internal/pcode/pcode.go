// Package pcode implements the P-code lowerer from spec §4.4: lower(tac) →
// pcode. Labels remain symbolic text until the VM resolves them at load time
// (spec §9: "do not patch PC-relative offsets into instructions at
// generation time") — Instr.Arg carries a label name for ujp/fjp/lab, not a
// numeric offset.
package pcode

import "fmt"

// Mnemonic is the closed set of P-code operations (spec §3).
type Mnemonic string

const (
	Ldc Mnemonic = "ldc"
	Lod Mnemonic = "lod"
	Sto Mnemonic = "sto"

	Adi Mnemonic = "adi"
	Sbi Mnemonic = "sbi"
	Mpi Mnemonic = "mpi"
	Dvi Mnemonic = "dvi"
	Mod Mnemonic = "mod"
	Pot Mnemonic = "pot"

	Les Mnemonic = "les"
	Leq Mnemonic = "leq"
	Grt Mnemonic = "grt"
	Geq Mnemonic = "geq"
	Equ Mnemonic = "equ"
	Neq Mnemonic = "neq" // accepted by the VM; the lowerer never emits it — see binaryOpMnemonic

	And Mnemonic = "and"
	Or  Mnemonic = "or"

	Ujp Mnemonic = "ujp"
	Fjp Mnemonic = "fjp"

	Rd  Mnemonic = "rd"
	Wr  Mnemonic = "wr"
	Lab Mnemonic = "lab"
	Hlt Mnemonic = "hlt"
)

// Instr is one P-code line: a mnemonic with an optional textual operand.
type Instr struct {
	Op  Mnemonic
	Arg string // literal text, memory address, or symbolic label — never a resolved offset
}

func (i Instr) String() string {
	if i.Arg == "" {
		return string(i.Op)
	}
	return fmt.Sprintf("%s %s", i.Op, i.Arg)
}

// Program is the lowered instruction sequence plus the on-demand address
// assignment it was built with.
type Program struct {
	Instrs    []Instr
	Addresses map[string]int // variable/temporary name -> memory cell
}

func (p *Program) Lines() []string {
	lines := make([]string, len(p.Instrs))
	for i, instr := range p.Instrs {
		lines[i] = instr.String()
	}
	return lines
}

// binaryOpMnemonic is the operator mnemonic map from spec §4.4. "!=" is
// deliberately absent: it's materialised as equ ; ldc 0 ; equ rather than a
// native neq emission, so it has no single-mnemonic entry here.
var binaryOpMnemonic = map[string]Mnemonic{
	"+": Adi, "-": Sbi, "*": Mpi, "/": Dvi, "%": Mod, "^": Pot,
	"<": Les, "<=": Leq, ">": Grt, ">=": Geq, "==": Equ,
	"&&": And, "||": Or,
}

// Package tac models the three-address code emitted by the semantic
// analyzer (spec §3): a linear sequence of instructions drawn from a closed
// textual grammar. Instr is a closed sum type over that grammar rather than
// the original implementation's ad hoc formatted strings, with String()
// rendering the exact textual form spec §3 specifies.
package tac

import "fmt"

// OperandKind distinguishes the three operand shapes an expression can
// surface (spec §9 "Mixed temporary/value channel" design note).
type OperandKind int

const (
	OpVar OperandKind = iota
	OpTemp
	OpLiteral
	OpString // a string-literal operand, passed through verbatim to WRITE
)

// Operand is Temp(name) | Literal(value) | Var(name) | a raw string literal.
type Operand struct {
	Kind    OperandKind
	Name    string // for OpVar / OpTemp
	Literal any    // int64 | float64 | bool, for OpLiteral
	Text    string // for OpString, includes surrounding quotes
}

func Var(name string) Operand    { return Operand{Kind: OpVar, Name: name} }
func Temp(name string) Operand   { return Operand{Kind: OpTemp, Name: name} }
func Lit(value any) Operand      { return Operand{Kind: OpLiteral, Literal: value} }
func Str(quoted string) Operand  { return Operand{Kind: OpString, Text: quoted} }

func (o Operand) String() string {
	switch o.Kind {
	case OpVar, OpTemp:
		return o.Name
	case OpString:
		return o.Text
	default:
		return formatLiteral(o.Literal)
	}
}

func formatLiteral(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return formatFloat(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatFloat follows SPEC_FULL.md's resolution of the float-printing Open
// Question: a whole-valued float prints without a fractional part.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Kind is the closed set of TAC instruction forms (spec §3).
type Kind int

const (
	Declare Kind = iota
	Read
	Write
	AssignLit    // name = literal
	AssignBinary // name = operand op operand
	AssignNot    // name = ! operand
	AssignNeg    // name = 0 - operand
	AssignCopy   // name = operand (no operator; e.g. `x = y` or `x = tk`)
	IfGoto       // if [not] operand goto L
	Goto
	Label
	Comment
)

// Instr is one TAC line.
type Instr struct {
	Kind    Kind
	Name    string  // destination variable/temporary, for assignment forms
	Type    string  // for Declare
	Op      string  // for AssignBinary
	Left    Operand // for AssignBinary
	Right   Operand // for AssignBinary, AssignLit/Copy/Neg/Not's sole operand, IfGoto's condition
	Negate  bool    // for IfGoto: "if not operand goto L"
	Target  string  // label name, for Goto/IfGoto
	Label   string  // for Label
	Text    string  // for Comment
	WriteOp Operand // for Write
}

func (i Instr) String() string {
	switch i.Kind {
	case Declare:
		return fmt.Sprintf("DECLARE %s %s", i.Name, i.Type)
	case Read:
		return fmt.Sprintf("READ %s", i.Name)
	case Write:
		return fmt.Sprintf("WRITE %s", i.WriteOp)
	case AssignLit, AssignCopy:
		return fmt.Sprintf("%s = %s", i.Name, i.Right)
	case AssignBinary:
		return fmt.Sprintf("%s = %s %s %s", i.Name, i.Left, i.Op, i.Right)
	case AssignNot:
		return fmt.Sprintf("%s = ! %s", i.Name, i.Right)
	case AssignNeg:
		return fmt.Sprintf("%s = 0 - %s", i.Name, i.Right)
	case IfGoto:
		if i.Negate {
			return fmt.Sprintf("if not %s goto %s", i.Right, i.Target)
		}
		return fmt.Sprintf("if %s goto %s", i.Right, i.Target)
	case Goto:
		return fmt.Sprintf("goto %s", i.Target)
	case Label:
		return fmt.Sprintf("%s:", i.Label)
	case Comment:
		return fmt.Sprintf("# %s", i.Text)
	default:
		return "?"
	}
}

// Program is the full TAC sequence produced by one compilation.
type Program struct {
	Instrs []Instr
}

func (p *Program) Add(i Instr) { p.Instrs = append(p.Instrs, i) }

func (p *Program) Lines() []string {
	lines := make([]string, len(p.Instrs))
	for i, instr := range p.Instrs {
		lines[i] = instr.String()
	}
	return lines
}

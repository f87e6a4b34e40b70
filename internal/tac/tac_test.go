package tac

import "testing"

func TestOperandString(t *testing.T) {
	cases := []struct {
		op   Operand
		want string
	}{
		{Var("x"), "x"},
		{Temp("t0"), "t0"},
		{Lit(int64(3)), "3"},
		{Lit(2.5), "2.5"},
		{Lit(2.0), "2"},
		{Lit(true), "true"},
		{Str(`"hi"`), `"hi"`},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("Operand.String() = %q, want %q", got, c.want)
		}
	}
}

func TestInstrStringForms(t *testing.T) {
	cases := []struct {
		instr Instr
		want  string
	}{
		{Instr{Kind: Declare, Name: "x", Type: "int"}, "DECLARE x int"},
		{Instr{Kind: Read, Name: "x"}, "READ x"},
		{Instr{Kind: Write, WriteOp: Var("x")}, "WRITE x"},
		{Instr{Kind: AssignCopy, Name: "x", Right: Lit(int64(1))}, "x = 1"},
		{Instr{Kind: AssignBinary, Name: "t0", Left: Var("a"), Op: "+", Right: Var("b")}, "t0 = a + b"},
		{Instr{Kind: AssignNot, Name: "t0", Right: Var("flag")}, "t0 = ! flag"},
		{Instr{Kind: AssignNeg, Name: "t0", Right: Var("x")}, "t0 = 0 - x"},
		{Instr{Kind: IfGoto, Negate: true, Right: Temp("t0"), Target: "L1"}, "if not t0 goto L1"},
		{Instr{Kind: IfGoto, Right: Temp("t0"), Target: "L1"}, "if t0 goto L1"},
		{Instr{Kind: Goto, Target: "L0"}, "goto L0"},
		{Instr{Kind: Label, Label: "L0"}, "L0:"},
		{Instr{Kind: Comment, Text: "note"}, "# note"},
	}
	for _, c := range cases {
		if got := c.instr.String(); got != c.want {
			t.Errorf("Instr.String() = %q, want %q", got, c.want)
		}
	}
}

func TestProgramLines(t *testing.T) {
	p := &Program{}
	p.Add(Instr{Kind: Declare, Name: "x", Type: "int"})
	p.Add(Instr{Kind: Read, Name: "x"})
	lines := p.Lines()
	want := []string{"DECLARE x int", "READ x"}
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

package ast

import "github.com/aketzali/minic/internal/token"

// IfStmt is `if (cond) [then] block [else block] [end]`. EndMissing records
// whether the (optional) trailing `end` was absent; the parser itself emits
// the missing-end warning when it sets this field.
type IfStmt struct {
	Position   token.Position
	Cond       Node
	Then       *Block
	Else       *Block // nil when there is no else branch
	EndMissing bool
}

func (s *IfStmt) Pos() token.Position { return s.Position }
func (*IfStmt) node()                 {}

// WhileStmt is `while (cond) block`.
type WhileStmt struct {
	Position token.Position
	Cond     Node
	Body     *Block
}

func (s *WhileStmt) Pos() token.Position { return s.Position }
func (*WhileStmt) node()                 {}

// DoWhileStmt is `do block while (cond);`.
type DoWhileStmt struct {
	Position token.Position
	Body     *Block
	Cond     Node
}

func (s *DoWhileStmt) Pos() token.Position { return s.Position }
func (*DoWhileStmt) node()                 {}

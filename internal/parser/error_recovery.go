package parser

// SynchronizationSet names a group of recovery tokens a panic-mode
// synchronize() call can target (spec §4.2: "advance tokens until the
// current token is in the follow set or a statement-starter").
type SynchronizationSet int

const (
	SyncStatementStarters SynchronizationSet = iota
	SyncDeclarationStarters
	SyncBlockClosers
)

var statementStarters = []string{";", "}", "int", "float", "bool", "if", "while", "do", "cin", "cout"}
var declarationStarters = []string{"int", "float", "bool", "if", "while", "do", "cin", "cout", "}"}
var blockClosers = []string{"}", "end", "else"}

func (s SynchronizationSet) tokens() []string {
	switch s {
	case SyncDeclarationStarters:
		return declarationStarters
	case SyncBlockClosers:
		return blockClosers
	default:
		return statementStarters
	}
}

// synchronize implements panic-mode recovery: advance past tokens until the
// current token is in the named set (or a statement starter, always
// included), consuming a trailing ";" so the caller resumes cleanly. It never
// consumes past "}" to avoid unbalancing the block nest (spec §4.2).
func (p *Parser) synchronize(set SynchronizationSet) bool {
	targets := set.tokens()
	syncSet := make(map[string]bool, len(targets)+len(statementStarters))
	for _, t := range targets {
		syncSet[t] = true
	}
	for _, t := range statementStarters {
		syncSet[t] = true
	}

	for !p.atEOF() {
		if p.is("}") {
			return true // never consume the closing brace
		}
		if syncSet[p.cur().Lexeme] {
			if p.is(";") {
				p.advance()
			}
			return true
		}
		p.advance()
	}
	return false
}

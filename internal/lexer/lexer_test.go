package lexer

import (
	"testing"

	"github.com/aketzali/minic/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanBasicDeclaration(t *testing.T) {
	toks, diags := Scan(`int x, y;`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []token.Kind{token.RESERVED, token.IDENTIFIER, token.SYMBOL, token.IDENTIFIER, token.SYMBOL, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanWhitespaceAndCommentsFiltered(t *testing.T) {
	toks, _ := Scan("int x; // trailing\n/* block */ x = 1;")
	for _, tok := range toks {
		if tok.Kind == token.WHITESPACE || tok.Kind == token.LINE_COMMENT || tok.Kind == token.MULTILINE_COMMENT {
			t.Errorf("unexpected %s token in filtered stream", tok.Kind)
		}
	}
}

func TestScanOperators(t *testing.T) {
	toks, diags := Scan("<= >= == != && || & | !")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	lexemes := make([]string, 0, len(toks)-1)
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		lexemes = append(lexemes, tok.Lexeme)
	}
	want := []string{"<=", ">=", "==", "!=", "&&", "||", "&&", "||", "!"}
	if len(lexemes) != len(want) {
		t.Fatalf("got %v, want %v", lexemes, want)
	}
	for i := range want {
		if lexemes[i] != want[i] {
			t.Errorf("operator %d: got %q, want %q", i, lexemes[i], want[i])
		}
	}
}

func TestScanSplitIncrement(t *testing.T) {
	toks, _ := Scan("x+ +1")
	foundPlusPlus := false
	for _, tok := range toks {
		if tok.Lexeme == "++" {
			foundPlusPlus = true
		}
	}
	if !foundPlusPlus {
		t.Errorf("expected a synthesised ++ token, got %+v", toks)
	}
}

func TestScanNumbers(t *testing.T) {
	toks, diags := Scan("42 3.14")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if toks[0].Kind != token.INT_LITERAL || toks[0].Lexeme != "42" {
		t.Errorf("got %+v, want INT_LITERAL 42", toks[0])
	}
	if toks[1].Kind != token.REAL_LITERAL || toks[1].Lexeme != "3.14" {
		t.Errorf("got %+v, want REAL_LITERAL 3.14", toks[1])
	}
}

func TestScanMalformedNumber(t *testing.T) {
	_, diags := Scan("1.2.3")
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for a malformed number")
	}
}

func TestScanStringLiteral(t *testing.T) {
	toks, diags := Scan(`cout << "hi\n";`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == token.STRING_LITERAL {
			found = true
			if tok.Lexeme != `"hi\n"` {
				t.Errorf("got lexeme %q, want %q", tok.Lexeme, `"hi\n"`)
			}
		}
	}
	if !found {
		t.Error("no STRING_LITERAL token produced")
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, diags := Scan(`cout << "unterminated;`)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an unterminated string")
	}
}

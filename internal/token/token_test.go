package token

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		ILLEGAL:    "ILLEGAL",
		EOF:        "EOF",
		ARITH_OP:   "ARITH_OP",
		IDENTIFIER: "IDENTIFIER",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestIsReserved(t *testing.T) {
	for _, word := range []string{"if", "while", "cout", "main"} {
		if !IsReserved(word) {
			t.Errorf("IsReserved(%q) = false, want true", word)
		}
	}
	if IsReserved("foo") {
		t.Error("IsReserved(\"foo\") = true, want false")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: IDENTIFIER, Lexeme: "x", Pos: Position{Line: 3, Column: 5}}
	want := "[IDENTIFIER] 'x' (Line 3, Column 5)"
	if got := tok.String(); got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}

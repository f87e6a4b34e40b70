package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tidwall/gjson"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it. The subcommands print via fmt.Println/Printf
// directly (matching the teacher's own command style), so capturing at the
// os.Stdout level is the only way to observe them from a test.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stdout: %v", err)
	}
	return string(out)
}

// resetFlags restores the persistent flag state cobra leaves behind between
// Execute() calls, since rootCmd is a package-level singleton shared by every
// test in this file.
func resetFlags() {
	evalExpr = ""
	configPath = ""
	format = "text"
}

func TestLexJSONOutputQueryableWithGJSON(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"lex", "-e", "int x;", "--format", "json"})

	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute returned %v", err)
		}
	})

	kind := gjson.Get(out, "tokens.0.kind")
	if !kind.Exists() {
		t.Fatalf("tokens.0.kind missing from %s", out)
	}
	if lexeme := gjson.Get(out, "tokens.0.lexeme").String(); lexeme != "int" {
		t.Errorf("tokens.0.lexeme = %q, want %q", lexeme, "int")
	}
	if n := gjson.Get(out, "tokens.#").Int(); n == 0 {
		t.Error("expected at least one token in the JSON output")
	}
}

func TestAnalyzeJSONOutputQueryableWithGJSON(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"analyze", "-e", "main { int x; x = 7; cout << x; }", "--format", "json"})

	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute returned %v", err)
		}
	})

	if id := gjson.Get(out, "symbols.0.identifier").String(); id != "x" {
		t.Errorf("symbols.0.identifier = %q, want %q", id, "x")
	}
	if dt := gjson.Get(out, "symbols.0.data_type").String(); dt != "int" {
		t.Errorf("symbols.0.data_type = %q, want %q", dt, "int")
	}
}

func TestTACJSONOutputQueryableWithGJSON(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"tac", "-e", "main { int x; x = 7; cout << x; }", "--format", "json"})

	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute returned %v", err)
		}
	})

	if n := gjson.Get(out, "tac.#").Int(); n == 0 {
		t.Error("expected at least one TAC line in the JSON output")
	}
}

func TestAnalyzeSymbolReportSnapshot(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"analyze", "-e", "main { int x; x = 7; cout << x; }"})

	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute returned %v", err)
		}
	})

	snaps.MatchSnapshot(t, out)
}

func TestRunProducesExpectedStdout(t *testing.T) {
	resetFlags()
	rootCmd.SetArgs([]string{"run", "-e", "main { int x; x = 7; cout << x; }"})

	out := captureStdout(t, func() {
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute returned %v", err)
		}
	})

	if out != "7" {
		t.Errorf("stdout = %q, want %q", out, "7")
	}
}

// pipelineFixtures are the spec §8 end-to-end scenarios, reused here to
// snapshot the tac/pcode/run subcommands' output rather than just the
// analyze command above.
var pipelineFixtures = []struct {
	name   string
	source string
}{
	{"DeclarationAndOutput", "main { int x; x = 7; cout << x; }"},
	{
		"WhileSumOfEvens",
		`main {
			int i, sum;
			i = 1;
			sum = 0;
			while (i <= 10) {
				if (i % 2 == 0) { sum = sum + i; } end
				i = i + 1;
			}
			cout << sum;
		}`,
	},
	{"TypeCoercion", "main { float f; int i; i = 2; f = i; cout << f; }"},
}

func TestPipelineTACSnapshots(t *testing.T) {
	for _, fx := range pipelineFixtures {
		t.Run(fx.name, func(t *testing.T) {
			resetFlags()
			rootCmd.SetArgs([]string{"tac", "-e", fx.source})
			out := captureStdout(t, func() {
				if err := rootCmd.Execute(); err != nil {
					t.Fatalf("Execute returned %v", err)
				}
			})
			snaps.MatchSnapshot(t, out)
		})
	}
}

func TestPipelinePcodeSnapshots(t *testing.T) {
	for _, fx := range pipelineFixtures {
		t.Run(fx.name, func(t *testing.T) {
			resetFlags()
			rootCmd.SetArgs([]string{"pcode", "-e", fx.source})
			out := captureStdout(t, func() {
				if err := rootCmd.Execute(); err != nil {
					t.Fatalf("Execute returned %v", err)
				}
			})
			snaps.MatchSnapshot(t, out)
		})
	}
}

func TestPipelineRunStdoutSnapshots(t *testing.T) {
	for _, fx := range pipelineFixtures {
		t.Run(fx.name, func(t *testing.T) {
			resetFlags()
			rootCmd.SetArgs([]string{"run", "-e", fx.source})
			out := captureStdout(t, func() {
				if err := rootCmd.Execute(); err != nil {
					t.Fatalf("Execute returned %v", err)
				}
			})
			snaps.MatchSnapshot(t, out)
		})
	}
}

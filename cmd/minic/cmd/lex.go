package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/internal/token"
	"github.com/aketzali/minic/pkg/minic"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file and print the resulting tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	tokens, diags := minic.Scan(source, filename)

	if format == "json" {
		return printJSON(tokens, diags)
	}

	for _, t := range tokens {
		fmt.Println(t)
	}
	printDiags(diags)
	if len(diag.Errors(diags)) > 0 {
		exitWithError("%d lexical error(s)", len(diag.Errors(diags)))
	}
	return nil
}

func printDiags(diags []*diag.Diagnostic) {
	for _, d := range diags {
		fmt.Println(d.Format(false))
	}
}

// printJSON assembles a JSON document for the token listing using sjson,
// one Set call per field rather than a struct marshal — SPEC_FULL.md's
// ambient-stack choice to exercise tidwall/sjson from the CLI.
func printJSON(tokens []token.Token, diags []*diag.Diagnostic) error {
	out := "{}"
	var err error
	for i, t := range tokens {
		prefix := fmt.Sprintf("tokens.%d.", i)
		if out, err = sjson.Set(out, prefix+"kind", t.Kind.String()); err != nil {
			return err
		}
		if out, err = sjson.Set(out, prefix+"lexeme", t.Lexeme); err != nil {
			return err
		}
		if out, err = sjson.Set(out, prefix+"line", t.Pos.Line); err != nil {
			return err
		}
		if out, err = sjson.Set(out, prefix+"column", t.Pos.Column); err != nil {
			return err
		}
	}
	out, err = setDiagsJSON(out, "diagnostics", diags)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func setDiagsJSON(doc, key string, diags []*diag.Diagnostic) (string, error) {
	var err error
	for i, d := range diags {
		prefix := fmt.Sprintf("%s.%d.", key, i)
		if doc, err = sjson.Set(doc, prefix+"severity", d.Severity.String()); err != nil {
			return doc, err
		}
		if doc, err = sjson.Set(doc, prefix+"message", d.Message); err != nil {
			return doc, err
		}
		if doc, err = sjson.Set(doc, prefix+"line", d.Pos.Line); err != nil {
			return doc, err
		}
		if doc, err = sjson.Set(doc, prefix+"column", d.Pos.Column); err != nil {
			return doc, err
		}
	}
	return doc, nil
}

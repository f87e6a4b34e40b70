package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/pkg/minic"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and report syntax diagnostics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	tokens, scanDiags := minic.Scan(source, filename)
	prog, parseDiags := minic.Parse(tokens, source, filename)
	all := append(scanDiags, parseDiags...)

	fmt.Printf("program: %d top-level declarations/statements\n", len(prog.Declarations))
	printDiags(all)
	if len(diag.Errors(all)) > 0 {
		exitWithError("%d syntax error(s)", len(diag.Errors(all)))
	}
	return nil
}

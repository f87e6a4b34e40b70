package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/aketzali/minic/internal/config"
	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/pkg/minic"
)

var tacCmd = &cobra.Command{
	Use:   "tac [file]",
	Short: "Print the three-address code emitted by the semantic analyser",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTAC,
}

func init() {
	rootCmd.AddCommand(tacCmd)
}

func runTAC(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	result := minic.Compile(source, filename, minic.AnalyseOptions{SymbolBuckets: cfg.SymbolBuckets})
	if result.TAC == nil {
		exitWithError("compilation failed before TAC could be emitted")
		return nil
	}

	if format == "json" {
		if err := printTACJSON(result.TAC.Lines(), result.Diags); err != nil {
			return err
		}
	} else {
		for _, line := range result.TAC.Lines() {
			fmt.Println(line)
		}
		printDiags(result.Diags)
	}
	if len(diag.Errors(result.Diags)) > 0 {
		exitWithError("%d error(s)", len(diag.Errors(result.Diags)))
	}
	return nil
}

// printTACJSON assembles the TAC line listing via sjson, matching lex.go's
// --format json path.
func printTACJSON(lines []string, diags []*diag.Diagnostic) error {
	out := "{}"
	var err error
	for i, line := range lines {
		if out, err = sjson.Set(out, fmt.Sprintf("tac.%d", i), line); err != nil {
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

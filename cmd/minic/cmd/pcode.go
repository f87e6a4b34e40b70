package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aketzali/minic/internal/config"
	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/pkg/minic"
)

var pcodeCmd = &cobra.Command{
	Use:   "pcode [file]",
	Short: "Print the P-code lowered from the compiled program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPcode,
}

func init() {
	rootCmd.AddCommand(pcodeCmd)
}

func runPcode(cmd *cobra.Command, args []string) error {
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
		exitWithError("compilation failed before P-code could be generated")
		return nil
	}

	program := minic.Lower(result.TAC)
	for _, line := range program.Lines() {
		fmt.Println(line)
	}
	printDiags(result.Diags)
	if len(diag.Errors(result.Diags)) > 0 {
		exitWithError("%d error(s)", len(diag.Errors(result.Diags)))
	}
	return nil
}

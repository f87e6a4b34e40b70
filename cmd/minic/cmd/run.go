package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aketzali/minic/internal/config"
	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/pkg/minic"
)

var traceExec bool

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and execute a source file against the P-code VM",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&traceExec, "trace-exec", false, "print every executed P-code instruction to stderr")
}

func runRun(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	result := minic.Compile(source, filename, minic.AnalyseOptions{SymbolBuckets: cfg.SymbolBuckets})
	if len(diag.Errors(result.Diags)) > 0 {
		printDiags(result.Diags)
		exitWithError("%d error(s), not running", len(diag.Errors(result.Diags)))
		return nil
	}

	program := minic.Lower(result.TAC)

	execOpts := minic.ExecuteOptions{MemorySize: cfg.MemorySize}
	if traceExec || cfg.TraceExec {
		execOpts.Trace = os.Stderr
	}

	runtimeDiags, err := minic.Execute(program, os.Stdin, os.Stdout, execOpts)
	for _, d := range runtimeDiags {
		fmt.Fprintln(os.Stderr, d)
	}
	if err != nil {
		exitWithError("%s", err)
	}
	return nil
}

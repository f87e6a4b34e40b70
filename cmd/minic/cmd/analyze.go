package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/aketzali/minic/internal/config"
	"github.com/aketzali/minic/internal/diag"
	"github.com/aketzali/minic/internal/symtab"
	"github.com/aketzali/minic/pkg/minic"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run semantic analysis and print the symbol report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	result := minic.Compile(source, filename, minic.AnalyseOptions{SymbolBuckets: cfg.SymbolBuckets})

	if format == "json" {
		if err := printSymbolReportJSON(result.Symbols, result.Diags); err != nil {
			return err
		}
	} else {
		printSymbolReport(result.Symbols)
		printDiags(result.Diags)
	}
	if len(diag.Errors(result.Diags)) > 0 {
		exitWithError("%d semantic error(s)", len(diag.Errors(result.Diags)))
	}
	return nil
}

// printSymbolReport renders the columns spec §6 names: identifier, register,
// value, data_type, scope, use_lines.
func printSymbolReport(symbols *symtab.Table) {
	if symbols == nil {
		return
	}
	fmt.Println("identifier\tregister\tvalue\tdata_type\tscope\tuse_lines")
	for _, row := range symtab.Report(symbols) {
		lines := make([]string, len(row.UseLines))
		for i, l := range row.UseLines {
			lines[i] = fmt.Sprintf("%d", l)
		}
		value := "?"
		if row.Value != nil {
			value = fmt.Sprintf("%v", row.Value)
		}
		fmt.Printf("%s\t%d\t%s\t%s\t%s\t%s\n", row.Identifier, row.Register, value, row.DataType, row.Scope, strings.Join(lines, ","))
	}
}

// printSymbolReportJSON assembles the same columns as printSymbolReport, via
// sjson field-by-field Set calls rather than a struct marshal, matching
// lex.go's --format json path.
func printSymbolReportJSON(symbols *symtab.Table, diags []*diag.Diagnostic) error {
	out := "{}"
	var err error
	if symbols != nil {
		for i, row := range symtab.Report(symbols) {
			prefix := fmt.Sprintf("symbols.%d.", i)
			value := "?"
			if row.Value != nil {
				value = fmt.Sprintf("%v", row.Value)
			}
			if out, err = sjson.Set(out, prefix+"identifier", row.Identifier); err != nil {
				return err
			}
			if out, err = sjson.Set(out, prefix+"register", row.Register); err != nil {
				return err
			}
			if out, err = sjson.Set(out, prefix+"value", value); err != nil {
				return err
			}
			if out, err = sjson.Set(out, prefix+"data_type", row.DataType.String()); err != nil {
				return err
			}
			if out, err = sjson.Set(out, prefix+"scope", row.Scope); err != nil {
				return err
			}
			if out, err = sjson.Set(out, prefix+"use_lines", row.UseLines); err != nil {
				return err
			}
		}
	}
	out, err = setDiagsJSON(out, "diagnostics", diags)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

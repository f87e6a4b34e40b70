// Package cmd implements the minic CLI (spec §6: "the library may be
// driven by a small CLI that reads a file path and prints each artefact").
// Each pipeline stage gets its own subcommand, modeled on the cobra
// subcommand-per-command layout the teacher uses.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	evalExpr   string
	configPath string
	format     string
)

var rootCmd = &cobra.Command{
	Use:     "minic",
	Short:   "A compiler and virtual machine for the minic teaching language",
	Version: Version,
	Long: `minic compiles and runs programs in a small imperative language
(int/float/bool variables, if/while/do-while, cin/cout) through a full
pipeline: scanner, parser, semantic analyser, P-code lowerer, and a
stack-machine virtual machine.

Each pipeline stage is available as its own subcommand for inspection.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVarP(&evalExpr, "eval", "e", "", "compile inline source instead of reading a file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config overriding memory/bucket sizing")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "output format: text|json")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

// readSource resolves the file-or-eval-flag input convention shared by every
// subcommand.
func readSource(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e/--eval for inline code")
}

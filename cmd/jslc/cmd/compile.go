package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-jsl/internal/compiler"
	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/spf13/cobra"
)

var (
	compileOutput        string
	compileEmitDebugInfo bool
	compileNoValidate    bool
	compileStrict        bool
	compilePretty        bool
	compileVerbose       bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file to Lua",
	Long: `Compile runs a source file through Normalize -> Lower -> Validate -> Emit
and writes the resulting Lua 5.3+ source to stdout or to -o.

Examples:
  # Compile to stdout
  jslc compile script.js

  # Compile to a named output file
  jslc compile script.js -o script.lua

  # Skip validation and allow transforms to abort the whole run on rejection
  jslc compile script.js --no-validate --strict`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVar(&compileEmitDebugInfo, "emit-debug-info", false, "include debug annotations in the emitted Lua")
	compileCmd.Flags().BoolVar(&compileNoValidate, "no-validate", false, "skip IR validation before emission")
	compileCmd.Flags().BoolVar(&compileStrict, "strict", false, "abort the whole compile on the first rejected transform instead of rolling it back")
	compileCmd.Flags().BoolVar(&compilePretty, "pretty", false, "use four-space indentation in the emitted Lua")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileScript(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	opts := compiler.DefaultOptions()
	opts.Path = filename
	opts.EmitDebugInfo = compileEmitDebugInfo
	opts.Validate = !compileNoValidate
	opts.StrictMode = compileStrict
	if compilePretty {
		opts.Indent = "    "
	}

	res := compiler.Compile(input, opts)
	if !res.Success {
		fmt.Fprint(os.Stderr, diag.FormatDiagnostics(res.Errors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("compilation failed with %d error(s)", len(res.Errors))
	}

	if len(res.Warnings) > 0 {
		fmt.Fprint(os.Stderr, diag.FormatDiagnostics(res.Warnings, true))
		fmt.Fprintln(os.Stderr)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compilation successful\n")
		fmt.Fprintf(os.Stderr, "  Nodes: %d\n", res.MetaPerf.NodeCount)
		fmt.Fprintf(os.Stderr, "  CFGs:  %d\n", res.MetaPerf.CFGCount)
		fmt.Fprintf(os.Stderr, "  Lower: %dns\n", res.MetaPerf.LowerNs)
		fmt.Fprintf(os.Stderr, "  Emit:  %dns\n", res.MetaPerf.EmitNs)
	}

	if compileOutput == "" {
		fmt.Print(res.Code)
		return nil
	}

	outFile := compileOutput
	if outFile == "-" {
		fmt.Print(res.Code)
		return nil
	}

	if err := os.WriteFile(outFile, []byte(res.Code), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Lua written to %s (%d bytes)\n", outFile, len(res.Code))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}
	return nil
}

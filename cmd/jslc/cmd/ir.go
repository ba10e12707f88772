package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/go-jsl/internal/compiler"
	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/cwbudde/go-jsl/internal/golden"
	"github.com/spf13/cobra"
)

var irJSON bool

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Print the lowered IR for a source file",
	Long: `ir runs a source file through Normalize and Lower and prints the resulting
IR module. By default it prints a structural shape summary (node-kind
histogram, CFG/block counts, max depth); --json prints the full serialized
IR document described by the IR serialized form.`,
	Args: cobra.ExactArgs(1),
	RunE: printIR,
}

func init() {
	rootCmd.AddCommand(irCmd)
	irCmd.Flags().BoolVar(&irJSON, "json", false, "print the full serialized IR document instead of a shape summary")
}

func printIR(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	opts := compiler.DefaultOptions()
	opts.Path = filename
	res := compiler.Compile(string(content), opts)
	if res.IR == nil {
		fmt.Fprint(os.Stderr, diag.FormatDiagnostics(res.Errors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("could not produce an IR module for %s", filename)
	}

	if !res.Success {
		fmt.Fprint(os.Stderr, diag.FormatDiagnostics(res.Errors, true))
		fmt.Fprintln(os.Stderr)
	}

	if irJSON {
		data, err := json.MarshalIndent(res.IR, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal IR module: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(golden.Summarize(res.IR).String())
	return nil
}

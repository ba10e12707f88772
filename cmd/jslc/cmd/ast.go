package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/go-jsl/internal/compiler"
	"github.com/cwbudde/go-jsl/internal/diag"
	"github.com/spf13/cobra"
)

var astJSON bool

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the canonical AST for a source file",
	Long: `ast normalizes a source file's raw parse tree and prints the resulting
canonical AST - a debugging aid, not part of the compile pipeline's output
contract.`,
	Args: cobra.ExactArgs(1),
	RunE: printAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().BoolVar(&astJSON, "json", false, "print the AST as JSON instead of its default textual rendering")
}

func printAST(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	opts := compiler.DefaultOptions()
	opts.Path = filename
	opts.Validate = false
	res := compiler.Compile(string(content), opts)
	if res.AST == nil {
		fmt.Fprint(os.Stderr, diag.FormatDiagnostics(res.Errors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("could not produce an AST for %s", filename)
	}

	if astJSON {
		data, err := json.MarshalIndent(res.AST, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal AST: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(res.AST.String())
	return nil
}

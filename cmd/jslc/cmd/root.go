package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jslc",
	Short: "JS-flavored-to-Lua source compiler",
	Long: `jslc compiles a small JavaScript-flavored language to Lua 5.3+ source
through a canonical IR: normalize the parser's raw AST, lower it to IR,
run any registered IR transforms, validate, and emit Lua.

The surface lexer/parser is an external collaborator; jslc's compile
command passes the file's text to a narrow embedded recognizer that
handles only a handful of literal fixture shapes. It does not read an
already-normalized AST.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

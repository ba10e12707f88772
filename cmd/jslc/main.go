// Command jslc compiles a small JavaScript-flavored language to Lua 5.3+
// through a canonical IR, exposing the core compiler package via a thin
// Cobra command tree.
package main

import (
	"os"

	"github.com/cwbudde/go-jsl/cmd/jslc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

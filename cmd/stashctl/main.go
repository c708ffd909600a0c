// Command stashctl searches saved items from the terminal, either from a JSON
// export file or from the configured item store.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

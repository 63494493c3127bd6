// Edline is an interactive line editor for the terminal. It reads lines with
// Emacs, Vi or Helix keybindings, history, completion, hints and syntax
// highlighting, and echoes every submitted line back.
package main

import (
	"os"

	"github.com/elves/edline/pkg/buildinfo"
	"github.com/elves/edline/pkg/prog"
	"github.com/elves/edline/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &shell.Program{})))
}

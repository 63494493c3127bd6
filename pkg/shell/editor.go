package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/elves/edline/pkg/cli"
	"github.com/elves/edline/pkg/cli/histutil"
	"github.com/elves/edline/pkg/cli/mode"
	"github.com/elves/edline/pkg/fsutil"
	"github.com/elves/edline/pkg/strutil"
)

// This type is the interface that the line editor has to satisfy. It is
// satisfied by cli.App, and by minEditor when the input is not a terminal.
type editor interface {
	ReadLine() (cli.Signal, error)
	SetEditMode(m mode.EditMode)
}

type minEditor struct {
	in      *bufio.Reader
	out     io.Writer
	history histutil.Store
}

func newMinEditor(in, out *os.File, history histutil.Store) *minEditor {
	return &minEditor{bufio.NewReader(in), out, history}
}

// SetEditMode is a no-op since the minimal editor has no keybindings.
func (ed *minEditor) SetEditMode(mode.EditMode) {}

func (ed *minEditor) ReadLine() (cli.Signal, error) {
	fmt.Fprintf(ed.out, "%s> ", fsutil.Getwd())
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// The last line has no line ending; submit it now and report EOF on
		// the next call.
		err = nil
	}
	if err != nil {
		return cli.Signal{}, err
	}
	line = strutil.ChopLineEnding(line)
	if ed.history != nil && line != "" {
		if _, err := ed.history.AddCmd(line); err != nil {
			logger.Println("add history:", err)
		}
	}
	return cli.SuccessSignal(line), nil
}

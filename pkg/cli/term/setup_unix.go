//go:build unix

package term

import (
	"fmt"
	"os"

	"github.com/elves/edline/pkg/sys/eunix"
)

const (
	enableBracketedPaste  = "\033[?2004h"
	disableBracketedPaste = "\033[?2004l"
	// The writer wraps lines itself, so the terminal's autowrap is turned off
	// while editing.
	disableAutowrap = "\033[?7l"
	enableAutowrap  = "\033[?7h"
)

// Setup sets up the terminal so that it is suitable for the line editor: the
// input is put into raw mode and bracketed paste is turned on. It returns a
// function that restores the original state, which must be called on every
// exit path.
func Setup(in, out *os.File) (func() error, error) {
	fd := int(in.Fd())
	term, err := eunix.TermiosForFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}
	savedTermios := term.Copy()

	term.SetRaw()
	err = term.ApplyToFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}

	_, err = out.WriteString(disableAutowrap + enableBracketedPaste)
	if err != nil {
		savedTermios.ApplyToFd(fd)
		return nil, fmt.Errorf("can't write terminal setup sequences: %w", err)
	}

	return func() error {
		_, errWrite := out.WriteString(enableAutowrap + disableBracketedPaste)
		errApply := savedTermios.ApplyToFd(fd)
		if errApply != nil {
			return fmt.Errorf("can't restore terminal attribute: %w", errApply)
		}
		return errWrite
	}, nil
}

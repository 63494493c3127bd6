//go:build unix

// Package eunix provides terminal utilities for Unix systems.
package eunix

import (
	"golang.org/x/sys/unix"
)

// Termios represents terminal attributes.
type Termios unix.Termios

// TermiosForFd returns the terminal attributes of the file descriptor, which
// must be open on a terminal device.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies term to the given file descriptor.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetRaw turns off canonical input, echoing and signal generation, so that
// every key (including Ctrl-C, Ctrl-Z, Ctrl-S and Ctrl-V) is delivered to the
// reader one byte at a time. Output processing is kept, so "\n" still returns
// the cursor to the first column.
func (term *Termios) SetRaw() {
	term.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	term.Iflag &^= unix.ICRNL | unix.IXON | unix.INLCR | unix.IGNCR
	term.Cc[unix.VMIN] = 1
	term.Cc[unix.VTIME] = 0
}

// IsRaw reports whether SetRaw has been applied.
func (term *Termios) IsRaw() bool {
	return term.Lflag&(unix.ICANON|unix.ECHO|unix.ISIG) == 0
}

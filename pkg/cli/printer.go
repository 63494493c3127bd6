package cli

import (
	"errors"
	"fmt"
)

// DefaultPrinterCapacity is the number of lines a Printer made by NewPrinter
// holds before Print fails.
const DefaultPrinterCapacity = 1000

// ErrPrinterFull is returned by Printer.Print when the printer holds as many
// lines as it can.
var ErrPrinterFull = errors.New("printer is full")

// Printer prints lines above the editor while a line is being read. It is
// safe for concurrent use. Lines printed while no line is being read are shown
// when the next session starts.
type Printer struct {
	ch chan string
}

// NewPrinter creates a Printer with DefaultPrinterCapacity.
func NewPrinter() *Printer { return NewPrinterWithCapacity(DefaultPrinterCapacity) }

// NewPrinterWithCapacity creates a Printer holding at most n lines.
func NewPrinterWithCapacity(n int) *Printer {
	return &Printer{make(chan string, n)}
}

// Print queues a line. It never blocks; it returns ErrPrinterFull when the
// line can't be queued.
func (p *Printer) Print(line string) error {
	select {
	case p.ch <- line:
		return nil
	default:
		return ErrPrinterFull
	}
}

// Printf is like Print, but formats the line with fmt.Sprintf.
func (p *Printer) Printf(format string, args ...any) error {
	return p.Print(fmt.Sprintf(format, args...))
}

// Lines returns the channel of queued lines.
func (p *Printer) Lines() <-chan string { return p.ch }

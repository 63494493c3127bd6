package cli

import "fmt"

// SignalKind is how a session ended.
type SignalKind int

// Possible values for SignalKind.
const (
	// Success means a line was submitted; Signal.Text holds it.
	Success SignalKind = iota
	// CtrlC means the line was abandoned.
	CtrlC
	// CtrlD means end of input was requested on an empty line.
	CtrlD
	// CtrlL means the ClearScreen event was asked to end the session.
	CtrlL
)

var signalKindNames = [...]string{
	Success: "success",
	CtrlC:   "ctrl_c",
	CtrlD:   "ctrl_d",
	CtrlL:   "ctrl_l",
}

func (k SignalKind) String() string {
	if k < 0 || int(k) >= len(signalKindNames) {
		return fmt.Sprintf("signal(%d)", int(k))
	}
	return signalKindNames[k]
}

// Signal is the result of ReadLine.
type Signal struct {
	Kind SignalKind
	Text string
}

// SuccessSignal returns a Success signal carrying text.
func SuccessSignal(text string) Signal { return Signal{Success, text} }

func (s Signal) String() string {
	if s.Kind == Success {
		return fmt.Sprintf("success(%q)", s.Text)
	}
	return s.Kind.String()
}

//go:build unix

package sys

import (
	"os"
	"os/signal"
	"syscall"
)

func notifySignals() chan os.Signal {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	// Ctrl-C and Ctrl-Z reach the editor as keys while the terminal is in raw
	// mode, so the only signals of interest are the ones the terminal
	// generates regardless of its mode.
	signal.Notify(sigCh, syscall.SIGWINCH, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	return sigCh
}

// StopSignals stops relaying signals to a channel returned by NotifySignals.
func StopSignals(sigCh chan os.Signal) {
	signal.Stop(sigCh)
}

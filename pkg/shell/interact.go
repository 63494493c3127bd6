package shell

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/elves/edline/pkg/cli"
	"github.com/elves/edline/pkg/cli/histutil"
	"github.com/elves/edline/pkg/cli/mode"
	"github.com/elves/edline/pkg/errutil"
	"github.com/elves/edline/pkg/rc"
	"github.com/elves/edline/pkg/sys"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Config *rc.Config
	// Print the time above the prompt every second.
	Clock bool
	// The terminal to edit on. When nil, a TTY on stdin and stderr is used if
	// stdin is a terminal, and a minimal editor otherwise.
	TTY cli.TTY
}

var (
	now           = time.Now
	clockInterval = time.Second
)

// Sequence to clear the screen when ClearScreen ends a session.
const clearScreen = "\033[H\033[2J"

// Interact runs an interactive session, until the user asks to quit or the
// input ends. Submitted lines are written to stdout, except the commands
// "exit", "history" and "mode".
func Interact(fds [3]*os.File, cfg *InteractConfig) (err error) {
	config := cfg.Config
	if config == nil {
		d := rc.Default()
		config = &d
	}
	spec := cli.AppSpec{TTY: cfg.TTY}
	closeHistory, err := config.Build(&spec)
	if err != nil {
		return err
	}
	defer func() { err = errutil.Multi(err, closeHistory()) }()
	if spec.TTY == nil && sys.IsATTY(fds[0].Fd()) {
		spec.TTY = cli.NewTTY(fds[0], fds[2])
	}

	var ed editor
	if spec.TTY != nil {
		if cfg.Clock {
			spec.Printer = cli.NewPrinter()
			stop := make(chan struct{})
			defer close(stop)
			go printClock(spec.Printer, stop)
		}
		ed = cli.NewApp(spec)
	} else {
		ed = newMinEditor(fds[0], fds[2], spec.History)
	}

	cooldown := time.Second
	for {
		sig, err := ed.ReadLine()

		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); !isMinEditor {
				fmt.Fprintln(fds[2], "Falling back to basic line editor")
				ed = newMinEditor(fds[0], fds[2], spec.History)
			} else {
				fmt.Fprintln(fds[2], "Don't know what to do, pid is", os.Getpid())
				fmt.Fprintln(fds[2], "Restarting editor in", cooldown)
				time.Sleep(cooldown)
				if cooldown < time.Minute {
					cooldown *= 2
				}
			}
			continue
		}

		// No error; reset cooldown.
		cooldown = time.Second

		switch sig.Kind {
		case cli.CtrlD:
			return nil
		case cli.CtrlC:
			continue
		case cli.CtrlL:
			fmt.Fprint(fds[2], clearScreen)
			continue
		}
		if !execute(fds, ed, spec.History, sig.Text) {
			return nil
		}
	}
	return nil
}

// Handles one submitted line. It returns false when the session should end.
func execute(fds [3]*os.File, ed editor, history histutil.Store, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	switch fields[0] {
	case "exit":
		return false
	case "history":
		cmds, err := history.AllCmds()
		if err != nil {
			fmt.Fprintln(fds[2], "history:", err)
			return true
		}
		for _, cmd := range cmds {
			fmt.Fprintf(fds[1], "%5d  %s\n", cmd.Seq, cmd.Text)
		}
		return true
	case "mode":
		if len(fields) != 2 {
			fmt.Fprintln(fds[2], "usage: mode emacs|vi|helix")
			return true
		}
		m, err := mode.ParseEditMode(fields[1])
		if err != nil {
			fmt.Fprintln(fds[2], err)
			return true
		}
		ed.SetEditMode(m)
		return true
	}
	fmt.Fprintln(fds[1], line)
	return true
}

func printClock(p *cli.Printer, stop <-chan struct{}) {
	ticker := time.NewTicker(clockInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := p.Print(now().Format("15:04:05")); err != nil {
				logger.Println("clock:", err)
			}
		case <-stop:
			return
		}
	}
}

// Package shell is the entry point for the interactive line reader of edline.
// It reads lines with the editor and echoes them back.
package shell

import (
	"os"

	"github.com/elves/edline/pkg/cli/mode"
	"github.com/elves/edline/pkg/logutil"
	"github.com/elves/edline/pkg/prog"
	"github.com/elves/edline/pkg/rc"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("edline takes no arguments")
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	return Interact(fds, &InteractConfig{Config: cfg, Clock: f.Clock})
}

// Loads the rc file named by the flags, and applies the overrides of -mode
// and -history.
func loadConfig(f *prog.Flags) (*rc.Config, error) {
	var cfg *rc.Config
	var err error
	switch {
	case f.NoRc:
		d := rc.Default()
		cfg = &d
	case f.RC != "":
		cfg, err = rc.Load(f.RC)
	default:
		cfg, err = rc.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if f.Mode != "" {
		if _, err := mode.ParseEditMode(f.Mode); err != nil {
			return nil, prog.BadUsage(err.Error())
		}
		cfg.EditMode = f.Mode
	}
	if f.History != "" {
		cfg.History.Path = f.History
		if cfg.History.Backend == rc.HistoryMemory {
			cfg.History.Backend = rc.HistoryFile
		}
	}
	return cfg, nil
}

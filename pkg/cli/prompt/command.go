package prompt

import (
	"os/exec"
	"strings"

	"github.com/elves/edline/pkg/ui"
)

// Command returns an Async segment showing the first line of the output of
// running cmdline with "sh -c". It is recomputed when the working directory
// changes. Failures show as "!" followed by the error.
func Command(cmdline string) *Async {
	return NewAsync(Config{Compute: func() ui.Text {
		out, err := exec.Command("sh", "-c", cmdline).Output()
		if err != nil {
			return ui.T("!"+err.Error(), ui.FgRed)
		}
		line, _, _ := strings.Cut(string(out), "\n")
		return ui.T(line)
	}})
}

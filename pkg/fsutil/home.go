package fsutil

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/elves/edline/pkg/env"
)

// GetHome finds the home directory of a specified user. When given an empty
// string, it finds the home directory of the current user.
func GetHome(uname string) (string, error) {
	if uname == "" {
		// Use $HOME as override if we are looking for the home of the current
		// variable.
		home := os.Getenv(env.HOME)
		if home != "" {
			return strings.TrimRight(home, pathSep), nil
		}
	}

	// Look up the user.
	var u *user.User
	var err error
	if uname == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(uname)
	}
	if err != nil {
		return "", fmt.Errorf("can't resolve ~%s: %s", uname, err.Error())
	}
	home := u.HomeDir
	if home == "" {
		return "", errors.New("can't resolve ~" + uname)
	}
	return strings.TrimRight(home, pathSep), nil
}

const pathSep = "/" + string(filepath.Separator)

// ExpandTilde expands a leading "~" or "~user" of path to the home directory
// of the current or the named user. Other paths are returned unchanged.
func ExpandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	uname, rest := path[1:], ""
	if i := strings.IndexAny(uname, pathSep); i != -1 {
		uname, rest = uname[:i], uname[i:]
	}
	home, err := GetHome(uname)
	if err != nil {
		return "", err
	}
	return home + rest, nil
}

// TildeAbbr replaces a leading home directory of the current user in path
// with "~". Nothing is abbreviated when the home directory is unknown or is
// the root directory.
func TildeAbbr(path string) string {
	home, err := GetHome("")
	if err != nil || home == "" || home == "/" {
		return path
	}
	rest, ok := strings.CutPrefix(path, home)
	if !ok || (rest != "" && !strings.ContainsRune(pathSep, rune(rest[0]))) {
		return path
	}
	return "~" + rest
}

// Getwd returns the working directory with the home directory abbreviated,
// or "?" if it can't be determined.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "?"
	}
	return TildeAbbr(wd)
}

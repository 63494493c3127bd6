// Package env keeps names of environment variables with special significance to
// edline.
package env

// Environment variables with special significance to edline.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	EDLINE_TEST_TIME_SCALE = "EDLINE_TEST_TIME_SCALE"
	HOME                   = "HOME"
	// Directory for the rc file; defaults to ~/.config.
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	// Directory for the history; defaults to ~/.local/state.
	XDG_STATE_HOME = "XDG_STATE_HOME"
)

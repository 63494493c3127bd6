// Package rc loads the YAML configuration file of edline and turns it into a
// cli.AppSpec.
package rc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/elves/edline/pkg/cli"
	"github.com/elves/edline/pkg/cli/complete"
	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/cli/hint"
	"github.com/elves/edline/pkg/cli/histutil"
	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/cli/mode"
	"github.com/elves/edline/pkg/cli/prompt"
	"github.com/elves/edline/pkg/env"
	"github.com/elves/edline/pkg/fsutil"
	"github.com/elves/edline/pkg/highlight"
	"github.com/elves/edline/pkg/logutil"
	"github.com/elves/edline/pkg/store"
)

var logger = logutil.GetLogger("[rc] ")

// Config is the content of an rc file.
type Config struct {
	EditMode     string        `yaml:"edit_mode"`
	ChordTimeout time.Duration `yaml:"chord_timeout"`

	History    History    `yaml:"history"`
	Hints      bool       `yaml:"hints"`
	Completion Completion `yaml:"completion"`
	// Nil means no highlighting.
	Highlight *Highlight `yaml:"highlight"`
	Clipboard string     `yaml:"clipboard"`
	Prompt    Prompt     `yaml:"prompt"`

	ValidateBrackets bool `yaml:"validate_brackets"`
	// Makes ClearScreen end ReadLine with CtrlL instead of clearing the screen.
	ClearScreenExits bool `yaml:"clear_screen_exits"`

	Bindings []keymap.BindingSpec `yaml:"bindings"`
}

// Names of history backends.
const (
	HistoryMemory = "memory"
	HistoryFile   = "file"
	HistoryBolt   = store.BackendBolt
	HistorySQLite = store.BackendSQLite
)

// History configures where submitted lines are kept.
type History struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	Capacity int    `yaml:"capacity"`
}

// Completion configures the word completer.
type Completion struct {
	Words   []string `yaml:"words"`
	Quick   bool     `yaml:"quick"`
	Partial bool     `yaml:"partial"`
}

// Highlight names the chroma lexer and style.
type Highlight struct {
	Lexer string `yaml:"lexer"`
	Style string `yaml:"style"`
}

// Clipboard names.
const (
	ClipboardLocal  = "local"
	ClipboardSystem = "system"
)

// Prompt configures the two segments of the default prompt. The special
// values "$cwd" and "$time" show the working directory and the current time,
// and "$(cmd)" shows the first line printed by the shell command cmd.
type Prompt struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Default returns the configuration used when there is no rc file.
func Default() Config {
	return Config{
		EditMode:     mode.Emacs.String(),
		ChordTimeout: cli.DefaultChordTimeout,
		History:      History{Backend: HistoryMemory},
		Hints:        true,
		Clipboard:    ClipboardLocal,
		Prompt:       Prompt{Left: "$cwd"},
	}
}

// DefaultPath returns the path of the rc file, $XDG_CONFIG_HOME/edline/rc.yaml
// or ~/.config/edline/rc.yaml.
func DefaultPath() (string, error) {
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, "edline", "rc.yaml"), nil
	}
	home, err := fsutil.GetHome("")
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "edline", "rc.yaml"), nil
}

// DefaultHistoryPath returns the default location of the history for a
// backend other than memory.
func DefaultHistoryPath(backend string) (string, error) {
	dir := os.Getenv(env.XDG_STATE_HOME)
	if dir == "" {
		home, err := fsutil.GetHome("")
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "state")
	}
	name := "history.txt"
	if backend != HistoryFile {
		name = "history." + backend + ".db"
	}
	return filepath.Join(dir, "edline", name), nil
}

// Load reads the rc file at path. Fields missing from the file keep their
// default values; an empty file yields Default(). Unknown fields are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadDefault loads the rc file at DefaultPath, or returns Default() when the
// file does not exist.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		c := Default()
		return &c, nil
	}
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		d := Default()
		return &d, nil
	}
	return c, err
}

// Parse parses the content of an rc file and validates it.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the fields of c that Build would otherwise reject, so that
// errors show up before any resource is opened.
func (c *Config) Validate() error {
	if _, err := mode.ParseEditMode(c.EditMode); err != nil {
		return fmt.Errorf("edit_mode: %w", err)
	}
	if c.ChordTimeout < 0 {
		return fmt.Errorf("chord_timeout: negative duration %v", c.ChordTimeout)
	}
	switch c.History.Backend {
	case HistoryMemory, HistoryFile, HistoryBolt, HistorySQLite:
	default:
		return fmt.Errorf("history.backend: unknown backend %q", c.History.Backend)
	}
	if c.History.Capacity < 0 {
		return fmt.Errorf("history.capacity: negative capacity %d", c.History.Capacity)
	}
	switch c.Clipboard {
	case ClipboardLocal, ClipboardSystem:
	default:
		return fmt.Errorf("clipboard: unknown clipboard %q", c.Clipboard)
	}
	ks := keymap.DefaultSet()
	return ks.Apply(c.Bindings)
}

// Build fills spec with the collaborators described by c. The returned
// function closes the history database, if any, and must be called once the
// App is no longer used.
func (c *Config) Build(spec *cli.AppSpec) (func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	spec.EditMode, _ = mode.ParseEditMode(c.EditMode)
	spec.ChordTimeout = c.ChordTimeout

	ks := keymap.DefaultSet()
	ks.Apply(c.Bindings)
	spec.Keymaps = ks

	history, closeHistory, err := openHistory(c.History)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	spec.History = history
	if c.Hints {
		spec.Hinter = hint.NewHistoryHinter(history)
	}

	if len(c.Completion.Words) > 0 {
		spec.Completer = complete.NewWordCompleter(c.Completion.Words...)
	}
	spec.QuickCompletion = c.Completion.Quick
	spec.PartialCompletion = c.Completion.Partial

	if c.Highlight != nil {
		spec.Highlighter = highlight.NewChroma(c.Highlight.Lexer, c.Highlight.Style)
	}
	spec.SearchHighlighter = func(query string) cli.Highlighter {
		return highlight.MatchHighlighter{Query: query}
	}

	if c.Clipboard == ClipboardSystem {
		if editor.SystemClipboardSupported() {
			spec.SystemClipboard = editor.NewSystemClipboard()
		} else {
			logger.Println("system clipboard unsupported, using a local one")
		}
	}

	spec.Prompt = prompt.NewDefault(segment(c.Prompt.Left), segment(c.Prompt.Right))
	if c.ValidateBrackets {
		spec.Validator = cli.BracketValidator{}
	}
	spec.ClearScreenExits = c.ClearScreenExits
	return closeHistory, nil
}

func segment(s string) prompt.Segment {
	switch s {
	case "$cwd":
		return prompt.WorkingDirectory
	case "$time":
		return prompt.CurrentDateTime
	}
	if cmd, ok := strings.CutPrefix(s, "$("); ok && strings.HasSuffix(cmd, ")") {
		return prompt.Command(strings.TrimSuffix(cmd, ")"))
	}
	return prompt.Basic(s)
}

func openHistory(h History) (histutil.Store, func() error, error) {
	nop := func() error { return nil }
	if h.Backend == HistoryMemory {
		return histutil.NewMemStore(), nop, nil
	}
	path := h.Path
	if path == "" {
		var err error
		path, err = DefaultHistoryPath(h.Backend)
		if err != nil {
			return nil, nil, err
		}
	}
	path, err := fsutil.ExpandTilde(path)
	if err != nil {
		return nil, nil, err
	}
	if h.Backend == HistoryFile {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, nil, err
		}
		s, err := histutil.NewFileStore(path, h.Capacity)
		return s, nop, err
	}
	db, err := store.Open(h.Backend, path)
	if err != nil {
		return nil, nil, err
	}
	logger.Printf("opened %s history at %s", h.Backend, path)
	s, err := histutil.NewHybridStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return s, db.Close, nil
}

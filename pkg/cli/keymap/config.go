package keymap

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/elves/edline/pkg/cli/editor"
)

// ConfigError is returned when bindings can't be built from their
// description. It lists every problem found.
type ConfigError struct {
	Problems []string
}

func (err *ConfigError) Error() string {
	return "bad key bindings: " + strings.Join(err.Problems, "; ")
}

func (err *ConfigError) addf(format string, args ...any) {
	err.Problems = append(err.Problems, fmt.Sprintf(format, args...))
}

// Returns err if it has any problem, nil otherwise.
func (err *ConfigError) orNil() error {
	if len(err.Problems) == 0 {
		return nil
	}
	return err
}

// CommandSpec describes an editor.Command.
type CommandSpec struct {
	Cmd    string `yaml:"cmd"`
	Char   string `yaml:"char,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Select bool   `yaml:"select,omitempty"`
	N      int    `yaml:"n,omitempty"`
}

// EventSpec describes an Event. Exactly one field must be set.
type EventSpec struct {
	Send        string        `yaml:"send,omitempty"`
	Edit        []CommandSpec `yaml:"edit,omitempty"`
	Menu        string        `yaml:"menu,omitempty"`
	UntilFound  []EventSpec   `yaml:"until_found,omitempty"`
	Multiple    []EventSpec   `yaml:"multiple,omitempty"`
	HostCommand string        `yaml:"host_command,omitempty"`
}

// BindingSpec describes one binding of a mode.
type BindingSpec struct {
	Mode  string    `yaml:"mode"`
	Keys  []string  `yaml:"keys"`
	Event EventSpec `yaml:"event"`
}

// BuildCommand builds a Command from its description.
func BuildCommand(spec CommandSpec) (editor.Command, error) {
	kind, ok := editor.ParseKind(spec.Cmd)
	if !ok {
		return editor.Command{}, fmt.Errorf("unknown command %q", spec.Cmd)
	}
	cmd := editor.Command{Kind: kind, Text: spec.Text, Select: spec.Select, N: spec.N}
	if kind.NeedsChar() {
		r, size := utf8.DecodeRuneInString(spec.Char)
		if size == 0 || size != len(spec.Char) {
			return editor.Command{}, fmt.Errorf("command %s needs exactly one char, got %q", spec.Cmd, spec.Char)
		}
		cmd.Char = r
	}
	if spec.Select && !kind.IsMove() {
		return editor.Command{}, fmt.Errorf("command %s is not a move and can't select", spec.Cmd)
	}
	return cmd, nil
}

// BuildEvent builds an Event from its description.
func BuildEvent(spec EventSpec) (Event, error) {
	err := &ConfigError{}
	ev := buildEvent(spec, err, "event")
	return ev, err.orNil()
}

func buildEvent(spec EventSpec, err *ConfigError, where string) Event {
	set := 0
	for _, nonZero := range []bool{spec.Send != "", spec.Edit != nil, spec.Menu != "",
		spec.UntilFound != nil, spec.Multiple != nil, spec.HostCommand != ""} {
		if nonZero {
			set++
		}
	}
	if set != 1 {
		err.addf("%s: need exactly one of send, edit, menu, until_found, multiple and host_command, got %d", where, set)
		return Event{}
	}
	switch {
	case spec.Send != "":
		kind, ok := ParseEventKind(spec.Send)
		if !ok || !kind.IsSimple() {
			err.addf("%s: unknown event %q", where, spec.Send)
		}
		return E(kind)
	case spec.Edit != nil:
		cmds := make([]editor.Command, 0, len(spec.Edit))
		for i, cs := range spec.Edit {
			cmd, e := BuildCommand(cs)
			if e != nil {
				err.addf("%s.edit[%d]: %v", where, i, e)
				continue
			}
			cmds = append(cmds, cmd)
		}
		return EditEvent(cmds...)
	case spec.Menu != "":
		return MenuEvent(spec.Menu)
	case spec.HostCommand != "":
		return HostCommand(spec.HostCommand)
	}
	subs, kind, name := spec.UntilFound, UntilFound, "until_found"
	if spec.Multiple != nil {
		subs, kind, name = spec.Multiple, Multiple, "multiple"
	}
	evs := make([]Event, len(subs))
	for i, sub := range subs {
		evs[i] = buildEvent(sub, err, fmt.Sprintf("%s.%s[%d]", where, name, i))
	}
	return Event{Kind: kind, Events: evs}
}

// ModeName names the keymap of an editing mode in binding descriptions.
type ModeName string

// Possible values for ModeName.
const (
	ModeEmacs       ModeName = "emacs"
	ModeViNormal    ModeName = "vi_normal"
	ModeViInsert    ModeName = "vi_insert"
	ModeHelixNormal ModeName = "helix_normal"
	ModeHelixSelect ModeName = "helix_select"
	ModeHelixInsert ModeName = "helix_insert"
)

// Set holds the keymaps of all editing modes.
type Set struct {
	Emacs       *Keybindings
	ViNormal    *Keybindings
	ViInsert    *Keybindings
	HelixNormal *Keybindings
	HelixSelect *Keybindings
	HelixInsert *Keybindings
}

// DefaultSet returns the default keymaps of all modes.
func DefaultSet() Set {
	return Set{
		Emacs:       DefaultEmacs(),
		ViNormal:    DefaultViNormal(),
		ViInsert:    DefaultViInsert(),
		HelixNormal: DefaultHelixNormal(),
		HelixSelect: DefaultHelixSelect(),
		HelixInsert: DefaultHelixInsert(),
	}
}

// Get returns the keymap of the named mode.
func (s *Set) Get(name ModeName) (*Keybindings, bool) {
	var kb *Keybindings
	switch name {
	case ModeEmacs:
		kb = s.Emacs
	case ModeViNormal:
		kb = s.ViNormal
	case ModeViInsert:
		kb = s.ViInsert
	case ModeHelixNormal:
		kb = s.HelixNormal
	case ModeHelixSelect:
		kb = s.HelixSelect
	case ModeHelixInsert:
		kb = s.HelixInsert
	default:
		return nil, false
	}
	return kb, kb != nil
}

// Apply adds bindings to the keymaps of s. Either all bindings are applied or,
// when any of them is malformed, none is and a *ConfigError is returned.
func (s *Set) Apply(specs []BindingSpec) error {
	type parsed struct {
		kb   *Keybindings
		keys []string
		ev   Event
	}
	err := &ConfigError{}
	var todo []parsed
	for i, spec := range specs {
		where := fmt.Sprintf("bindings[%d]", i)
		kb, ok := s.Get(ModeName(spec.Mode))
		if !ok {
			err.addf("%s: unknown mode %q", where, spec.Mode)
		}
		if len(spec.Keys) == 0 {
			err.addf("%s: no keys", where)
		}
		for _, key := range spec.Keys {
			if _, e := ParseSequence(key); e != nil {
				err.addf("%s: %v", where, e)
			}
		}
		before := len(err.Problems)
		ev := buildEvent(spec.Event, err, where+".event")
		if ok && len(err.Problems) == before {
			todo = append(todo, parsed{kb, spec.Keys, ev})
		}
	}
	if err.orNil() != nil {
		return err
	}
	for _, p := range todo {
		// Each entry of keys is one key; joined they form the sequence.
		seq, _ := ParseSequence(strings.Join(p.keys, " "))
		p.kb.AddSequence(seq, p.ev)
	}
	return nil
}

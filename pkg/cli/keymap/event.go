package keymap

import (
	"fmt"
	"strings"

	"github.com/elves/edline/pkg/cli/editor"
)

// EventKind identifies an Event.
type EventKind int

// Possible values for EventKind.
const (
	None EventKind = iota
	// Edit runs Event.Commands against the buffer.
	Edit
	// Menu activates the menu named Event.Name.
	Menu
	MenuNext
	MenuPrevious
	MenuUp
	MenuDown
	MenuLeft
	MenuRight
	MenuPageNext
	MenuPagePrevious
	// UntilFound tries Event.Events in order and stops at the first one that
	// applies.
	UntilFound
	// Multiple runs all of Event.Events.
	Multiple
	Submit
	SubmitOrNewline
	Enter
	Esc
	CtrlC
	CtrlD
	ClearScreen
	ClearScrollback
	HistoryHintComplete
	HistoryHintWordComplete
	PreviousHistory
	NextHistory
	Up
	Down
	Left
	Right
	SearchHistory
	Repaint
	// ExecuteHostCommand ends the session with Event.Name as the result.
	ExecuteHostCommand

	numEventKinds
)

var eventKindNames = [...]string{
	None:                    "none",
	Edit:                    "edit",
	Menu:                    "menu",
	MenuNext:                "menu_next",
	MenuPrevious:            "menu_previous",
	MenuUp:                  "menu_up",
	MenuDown:                "menu_down",
	MenuLeft:                "menu_left",
	MenuRight:               "menu_right",
	MenuPageNext:            "menu_page_next",
	MenuPagePrevious:        "menu_page_previous",
	UntilFound:              "until_found",
	Multiple:                "multiple",
	Submit:                  "submit",
	SubmitOrNewline:         "submit_or_newline",
	Enter:                   "enter",
	Esc:                     "esc",
	CtrlC:                   "ctrl_c",
	CtrlD:                   "ctrl_d",
	ClearScreen:             "clear_screen",
	ClearScrollback:         "clear_scrollback",
	HistoryHintComplete:     "history_hint_complete",
	HistoryHintWordComplete: "history_hint_word_complete",
	PreviousHistory:         "previous_history",
	NextHistory:             "next_history",
	Up:                      "up",
	Down:                    "down",
	Left:                    "left",
	Right:                   "right",
	SearchHistory:           "search_history",
	Repaint:                 "repaint",
	ExecuteHostCommand:      "execute_host_command",
}

func (k EventKind) String() string {
	if k < 0 || k >= numEventKinds {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventKindNames[k]
}

// ParseEventKind returns the EventKind with the given name.
func ParseEventKind(name string) (EventKind, bool) {
	for k, n := range eventKindNames {
		if n == name {
			return EventKind(k), true
		}
	}
	return None, false
}

// IsSimple returns whether events of the kind carry no payload.
func (k EventKind) IsSimple() bool {
	switch k {
	case Edit, Menu, UntilFound, Multiple, ExecuteHostCommand:
		return false
	}
	return 0 <= k && k < numEventKinds
}

// Event is what a key resolves to.
type Event struct {
	Kind EventKind
	// Commands of an Edit event.
	Commands []editor.Command
	// Menu name of a Menu event, or the text of an ExecuteHostCommand event.
	Name string
	// Sub-events of UntilFound and Multiple.
	Events []Event
}

// E returns an Event without payload.
func E(k EventKind) Event { return Event{Kind: k} }

// EditEvent returns an Edit event.
func EditEvent(cmds ...editor.Command) Event {
	return Event{Kind: Edit, Commands: cmds}
}

// EditKinds returns an Edit event running commands without arguments.
func EditKinds(kinds ...editor.Kind) Event {
	cmds := make([]editor.Command, len(kinds))
	for i, k := range kinds {
		cmds[i] = editor.C(k)
	}
	return EditEvent(cmds...)
}

// MenuEvent returns an event activating the named menu.
func MenuEvent(name string) Event { return Event{Kind: Menu, Name: name} }

// UntilFoundEvent returns an UntilFound event.
func UntilFoundEvent(evs ...Event) Event { return Event{Kind: UntilFound, Events: evs} }

// MultipleEvent returns a Multiple event.
func MultipleEvent(evs ...Event) Event { return Event{Kind: Multiple, Events: evs} }

// HostCommand returns an ExecuteHostCommand event.
func HostCommand(text string) Event { return Event{Kind: ExecuteHostCommand, Name: text} }

// Combine returns an event running all non-None events in evs.
func Combine(evs ...Event) Event {
	var kept []Event
	for _, ev := range evs {
		if ev.Kind != None {
			kept = append(kept, ev)
		}
	}
	switch len(kept) {
	case 0:
		return Event{}
	case 1:
		return kept[0]
	default:
		return MultipleEvent(kept...)
	}
}

func (ev Event) String() string {
	switch ev.Kind {
	case Edit:
		parts := make([]string, len(ev.Commands))
		for i, cmd := range ev.Commands {
			parts[i] = cmd.String()
		}
		return "edit[" + strings.Join(parts, " ") + "]"
	case Menu, ExecuteHostCommand:
		return fmt.Sprintf("%s(%q)", ev.Kind, ev.Name)
	case UntilFound, Multiple:
		parts := make([]string, len(ev.Events))
		for i, sub := range ev.Events {
			parts[i] = sub.String()
		}
		return ev.Kind.String() + "[" + strings.Join(parts, " ") + "]"
	default:
		return ev.Kind.String()
	}
}

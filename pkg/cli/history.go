package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/cli/histutil"
	"github.com/elves/edline/pkg/store/storedefs"
)

// A walk through the history with Up and Down. It lasts as long as history
// events follow each other.
type historyWalk struct {
	cursor histutil.Cursor
	// Buffer before the walk started, restored when walking past the newest
	// entry.
	saved string
}

func (a *app) historyPrev() status {
	if a.history == nil {
		return inapplicable
	}
	if a.walk == nil {
		buf := a.ed.Buffer()
		prefix := ""
		if !buf.IsEmpty() && buf.AtEnd() {
			prefix = buf.Content()
		}
		a.walk = &historyWalk{a.history.Cursor(prefix), buf.Content()}
	}
	a.walked = true
	a.walk.cursor.Prev()
	cmd, err := a.walk.cursor.Get()
	if err == histutil.ErrEndOfHistory {
		// Stay at the oldest entry.
		a.walk.cursor.Next()
		return handled
	} else if err != nil {
		a.notifyError("history", err)
		return handled
	}
	a.ed.SetContentFromHistory(cmd.Text)
	return handled
}

func (a *app) historyNext() status {
	if a.walk == nil {
		return inapplicable
	}
	a.walked = true
	a.walk.cursor.Next()
	cmd, err := a.walk.cursor.Get()
	if err == histutil.ErrEndOfHistory {
		a.ed.SetContentFromHistory(a.walk.saved)
		a.walk = nil
		return handled
	} else if err != nil {
		a.notifyError("history", err)
		return handled
	}
	a.ed.SetContentFromHistory(cmd.Text)
	return handled
}

// The incremental history search. The mode state tracks whether it is active
// for resolving keys; this holds the rest.
type historySearch struct {
	query string
	// Buffer before the search started, restored when it is cancelled or the
	// query becomes empty.
	saved    string
	savedDot int
	matches  []storedefs.Cmd
	index    int
	failing  bool
}

func (a *app) startSearch() status {
	if a.history == nil {
		a.modes.ExitSearch()
		return inapplicable
	}
	a.menus.Close()
	a.modes.EnterSearch()
	buf := a.ed.Buffer()
	a.search = &historySearch{saved: buf.Content(), savedDot: buf.Dot()}
	return handled
}

// Ends the search. When accepted, the buffer keeps the match; otherwise it is
// restored.
func (a *app) endSearch(accept bool) {
	if !accept {
		a.ed.SetContent(a.search.saved, a.search.savedDot)
	}
	a.search = nil
	a.modes.ExitSearch()
}

// Applies edit commands to the query instead of the buffer.
func (a *app) editQuery(cmds []editor.Command) {
	s := a.search
	for _, cmd := range cmds {
		switch cmd.Kind {
		case editor.InsertChar:
			s.query += string(cmd.Char)
		case editor.InsertString:
			s.query += cmd.Text
		case editor.Backspace:
			_, size := utf8.DecodeLastRuneInString(s.query)
			s.query = s.query[:len(s.query)-size]
		}
	}
	s.run(a)
}

func (s *historySearch) run(a *app) {
	s.matches, s.index, s.failing = nil, 0, false
	if s.query == "" {
		a.ed.SetContent(s.saved, s.savedDot)
		return
	}
	matches, err := a.history.Search(s.query)
	if err != nil {
		a.notifyError("history search", err)
		s.failing = true
		return
	}
	if len(matches) == 0 {
		s.failing = true
		return
	}
	s.matches = matches
	s.show(a)
}

// Steps to the next older match.
func (s *historySearch) next(a *app) {
	if s.query == "" {
		return
	}
	if s.index+1 >= len(s.matches) {
		s.failing = true
		return
	}
	s.index++
	s.show(a)
}

// Shows the current match, with the cursor at the start of the query.
func (s *historySearch) show(a *app) {
	text := s.matches[s.index].Text
	a.ed.SetContentFromHistory(text)
	a.ed.Buffer().SetDot(strings.Index(text, s.query))
}

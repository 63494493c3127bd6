package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elves/edline/pkg/cli/editor"
	"github.com/elves/edline/pkg/cli/keymap"
	"github.com/elves/edline/pkg/cli/term"
	"github.com/elves/edline/pkg/cli/tk"
	"github.com/elves/edline/pkg/ui"
)

var errNoCandidates = errors.New("no candidates")

// Controller holds the registered menus and at most one active menu. All its
// methods must be called from the goroutine running the editor.
type Controller struct {
	menus  map[string]Menu
	active *active
}

type active struct {
	menu    Menu
	listBox tk.ListBox
	items   suggestionItems
}

// NewController creates a Controller with the given menus registered.
func NewController(menus ...Menu) *Controller {
	c := &Controller{menus: map[string]Menu{}}
	for _, m := range menus {
		c.Register(m)
	}
	return c
}

// Register adds a menu, replacing any menu with the same name.
func (c *Controller) Register(m Menu) {
	c.menus[m.Name] = m
}

// Active returns the name of the active menu, if any.
func (c *Controller) Active() (string, bool) {
	if c.active == nil {
		return "", false
	}
	return c.active.menu.Name, true
}

// Suggestions returns the suggestions of the active menu and the index of the
// selected one.
func (c *Controller) Suggestions() ([]Suggestion, int) {
	if c.active == nil {
		return nil, -1
	}
	return c.active.items, c.active.listBox.CopyState().Selected
}

// Activate activates the named menu, querying its source with the content of
// the editor. It returns false when the menu doesn't apply: another menu is
// already active, there is no menu with the name, or there are no
// suggestions. Quick and partial completion happen here and may change the
// buffer. The source is queried once; an error from it leaves the buffer
// unchanged and is returned along with true.
func (c *Controller) Activate(name string, ed *editor.Editor) (bool, error) {
	if c.active != nil {
		return false, nil
	}
	m, ok := c.menus[name]
	if !ok || m.Source == nil {
		logger.Printf("no menu named %q", name)
		return false, nil
	}
	items, err := query(m.Source, ed)
	if err == errNoCandidates {
		return false, nil
	} else if err != nil {
		return true, fmt.Errorf("%s: %w", name, err)
	}
	if m.Quick && len(items) == 1 {
		accept(ed, items[0])
		return true, nil
	}
	if m.Partial {
		if to, ok := completePrefix(ed, items); ok {
			// The suggestions still apply; only their span has grown.
			for i := range items {
				items[i].To = to
			}
		}
	}
	c.open(m, items)
	return true, nil
}

func (c *Controller) open(m Menu, items suggestionItems) {
	lb := tk.NewListBox(tk.ListBoxSpec{
		Horizontal: m.Columnar, Padding: 1, ExtendStyle: true})
	lb.Reset(items, 0)
	c.active = &active{menu: m, listBox: lb, items: items}
}

// Close deactivates the active menu. It returns false if there is none.
func (c *Controller) Close() bool {
	if c.active == nil {
		return false
	}
	c.active = nil
	return true
}

// Navigate moves the selection of the active menu according to one of the
// menu navigation events. It returns false when no menu is active or the
// event doesn't apply to the layout of the active menu.
func (c *Controller) Navigate(kind keymap.EventKind) bool {
	if c.active == nil {
		return false
	}
	f, ok := c.navigation(kind)
	if !ok {
		return false
	}
	c.active.listBox.Select(f)
	return true
}

func (c *Controller) navigation(kind keymap.EventKind) (func(tk.ListBoxState) int, bool) {
	columnar := c.active.menu.Columnar
	switch kind {
	case keymap.MenuNext:
		return tk.NextWrap, true
	case keymap.MenuPrevious:
		return tk.PrevWrap, true
	case keymap.MenuDown:
		return tk.Next, true
	case keymap.MenuUp:
		return tk.Prev, true
	case keymap.MenuLeft:
		return tk.Left, columnar
	case keymap.MenuRight:
		return tk.Right, columnar
	case keymap.MenuPageNext:
		if columnar {
			return tk.Right, true
		}
		return tk.NextPage, true
	case keymap.MenuPagePrevious:
		if columnar {
			return tk.Left, true
		}
		return tk.PrevPage, true
	}
	return nil, false
}

// Accept replaces the span of the selected suggestion with its value as one
// undo unit and closes the menu. It returns false when no menu is active.
func (c *Controller) Accept(ed *editor.Editor) bool {
	if c.active == nil {
		return false
	}
	items, selected := c.Suggestions()
	c.active = nil
	if 0 <= selected && selected < len(items) {
		accept(ed, items[selected])
	}
	return true
}

// Update queries the active menu again after the buffer has changed. The
// menu closes when the buffer is empty, when there are no suggestions left,
// and on errors, which are returned.
func (c *Controller) Update(ed *editor.Editor) error {
	if c.active == nil {
		return nil
	}
	if ed.Buffer().IsEmpty() {
		c.active = nil
		return nil
	}
	items, err := query(c.active.menu.Source, ed)
	if err != nil {
		c.active = nil
		if err == errNoCandidates {
			return nil
		}
		return err
	}
	c.active.items = items
	c.active.listBox.Reset(items, 0)
	return nil
}

// CompleteInline runs the completion of the named menu without opening it:
// the only suggestion is accepted, otherwise the prefix shared by all
// suggestions is inserted. It returns false when nothing was inserted.
func (c *Controller) CompleteInline(name string, ed *editor.Editor) (bool, error) {
	m, ok := c.menus[name]
	if !ok || m.Source == nil {
		return false, nil
	}
	items, err := query(m.Source, ed)
	switch {
	case err == errNoCandidates:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%s: %w", name, err)
	case len(items) == 1:
		accept(ed, items[0])
		return true, nil
	}
	_, ok = completePrefix(ed, items)
	return ok, nil
}

// Render renders the active menu in at most height lines. It returns nil when
// no menu is active.
func (c *Controller) Render(width, height int) *term.Buffer {
	if c.active == nil || height <= 0 {
		return nil
	}
	m := c.active.menu
	lines := height
	if m.MaxLines > 0 {
		lines = min(lines, m.MaxLines)
	}
	var title *term.Buffer
	if len(m.Title) > 0 && lines > 1 {
		title = tk.Label{Content: m.Title}.Render(width, 1)
		lines--
	}
	lb := c.active.listBox
	buf := lb.Render(width, lb.MaxHeight(width, lines))
	if title != nil {
		return title.ExtendDown(buf, false)
	}
	return buf
}

func query(src Completer, ed *editor.Editor) (suggestionItems, error) {
	buf := ed.Buffer()
	items, err := src.Complete(buf.Content(), buf.Dot())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errNoCandidates
	}
	// The slice belongs to the completer.
	items = append([]Suggestion(nil), items...)
	n := len(buf.Content())
	for i := range items {
		items[i].From = max(0, min(items[i].From, n))
		items[i].To = max(items[i].From, min(items[i].To, n))
	}
	return items, nil
}

func accept(ed *editor.Editor, s Suggestion) {
	value := s.Value
	if s.AppendSpace {
		value += " "
	}
	ed.ReplaceRange(s.From, s.To, value)
}

// Inserts the prefix shared by all suggestions if they replace the same span
// and the prefix is longer than the span. Returns the end of the inserted
// prefix and whether it did.
func completePrefix(ed *editor.Editor, items []Suggestion) (int, bool) {
	from, to := items[0].From, items[0].To
	prefix := items[0].Value
	for _, s := range items[1:] {
		if s.From != from || s.To != to {
			return 0, false
		}
		prefix = commonPrefix(prefix, s.Value)
	}
	typed := ed.Buffer().Slice(from, to)
	if len(prefix) <= len(typed) || !strings.HasPrefix(prefix, typed) {
		return 0, false
	}
	ed.ReplaceRange(from, to, prefix)
	return from + len(prefix), true
}

func commonPrefix(a, b string) string {
	for i, r := range a {
		if !strings.HasPrefix(b[min(i, len(b)):], string(r)) {
			return a[:i]
		}
	}
	return a
}

type suggestionItems []Suggestion

func (it suggestionItems) Show(i int) ui.Text { return it[i].display() }
func (it suggestionItems) Len() int           { return len(it) }

// Package highlight turns buffer content into styled text, using chroma
// lexers and styles.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/elves/edline/pkg/logutil"
	"github.com/elves/edline/pkg/ui"
)

var logger = logutil.GetLogger("[highlight] ")

const (
	// DefaultLexer is used when no lexer is named.
	DefaultLexer = "bash"
	// DefaultStyle is used when no style is named.
	DefaultStyle = "monokai"
)

// ChromaHighlighter highlights content with a chroma lexer and style.
type ChromaHighlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewChroma creates a ChromaHighlighter. Empty names select the defaults;
// unknown names fall back to a plain-text lexer and chroma's fallback style.
func NewChroma(lexerName, styleName string) *ChromaHighlighter {
	if lexerName == "" {
		lexerName = DefaultLexer
	}
	if styleName == "" {
		styleName = DefaultStyle
	}
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		logger.Printf("unknown lexer %q", lexerName)
		lexer = lexers.Fallback
	}
	return &ChromaHighlighter{chroma.Coalesce(lexer), styles.Get(styleName)}
}

// Highlight returns content with every token styled. The text of the result
// is always content itself; if tokenizing fails, it is returned unstyled.
func (h *ChromaHighlighter) Highlight(content string) ui.Text {
	if content == "" {
		return nil
	}
	it, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		logger.Println("tokenise:", err)
		return ui.T(content)
	}
	base := h.style.Get(chroma.Text)
	var t ui.Text
	n := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		if tok.Value == "" {
			continue
		}
		// Lexers may add a trailing newline.
		end := min(n+len(tok.Value), len(content))
		t = append(t, &ui.Segment{
			Style: tokenStyle(h.style.Get(tok.Type), base), Text: content[n:end]})
		n = end
		if n == len(content) {
			break
		}
	}
	if n < len(content) {
		t = append(t, &ui.Segment{Text: content[n:]})
	}
	return t
}

// Converts a chroma style entry to a ui.Style. Colors equal to the base text
// color are left unset so that the terminal's own foreground is used.
func tokenStyle(e, base chroma.StyleEntry) ui.Style {
	var s ui.Style
	if e.Colour.IsSet() && e.Colour != base.Colour {
		s.Fg = ui.TrueColor(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
	}
	s.Bold = e.Bold == chroma.Yes
	s.Italic = e.Italic == chroma.Yes
	s.Underlined = e.Underline == chroma.Yes
	return s
}

// MatchStyle is applied to matches of a MatchHighlighter.
var MatchStyle = ui.Stylings(ui.Underlined, ui.Bold)

// MatchHighlighter highlights the occurrences of Query in the content. The
// history search uses it.
type MatchHighlighter struct {
	Query string
}

// Highlight implements the highlighter interface.
func (h MatchHighlighter) Highlight(content string) ui.Text {
	return Match(content, h.Query)
}

// Match returns content with every occurrence of query styled with MatchStyle.
func Match(content, query string) ui.Text {
	if content == "" {
		return nil
	}
	if query == "" {
		return ui.T(content)
	}
	var t ui.Text
	for content != "" {
		i := strings.Index(content, query)
		if i < 0 {
			t = append(t, &ui.Segment{Text: content})
			break
		}
		if i > 0 {
			t = append(t, &ui.Segment{Text: content[:i]})
		}
		t = append(t, ui.T(query, MatchStyle)...)
		content = content[i+len(query):]
	}
	return t
}

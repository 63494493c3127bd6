// Package complete provides a completer over a fixed list of words.
package complete

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/elves/edline/pkg/cli/menu"
)

// DefaultMinWordLen is the length under which words are not offered.
const DefaultMinWordLen = 2

// WordCompleter completes the word before the cursor from a sorted list of
// words.
type WordCompleter struct {
	words      []string
	minWordLen int
}

// NewWordCompleter creates a WordCompleter with DefaultMinWordLen.
func NewWordCompleter(words ...string) *WordCompleter {
	return NewWordCompleterWithMinLen(DefaultMinWordLen, words...)
}

// NewWordCompleterWithMinLen creates a WordCompleter ignoring words with fewer
// than minWordLen runes.
func NewWordCompleterWithMinLen(minWordLen int, words ...string) *WordCompleter {
	c := &WordCompleter{minWordLen: minWordLen}
	c.Insert(words...)
	return c
}

// Insert adds words, skipping short words and duplicates.
func (c *WordCompleter) Insert(words ...string) {
	for _, w := range words {
		if len([]rune(w)) < c.minWordLen {
			continue
		}
		i := sort.SearchStrings(c.words, w)
		if i < len(c.words) && c.words[i] == w {
			continue
		}
		c.words = append(c.words, "")
		copy(c.words[i+1:], c.words[i:])
		c.words[i] = w
	}
}

// Words returns the words, sorted.
func (c *WordCompleter) Words() []string {
	return append([]string(nil), c.words...)
}

// Complete implements menu.Completer. It offers the words that extend the
// word ending at the cursor, in sorted order. Nothing is offered at the start
// of a word.
func (c *WordCompleter) Complete(content string, dot int) ([]menu.Suggestion, error) {
	dot = max(0, min(dot, len(content)))
	from := strings.LastIndexFunc(content[:dot], unicode.IsSpace) + 1
	if from > 0 {
		// Skip the rest of a multi-byte space.
		for from < dot && !utf8.RuneStart(content[from]) {
			from++
		}
	}
	typed := content[from:dot]
	if typed == "" {
		return nil, nil
	}
	var suggestions []menu.Suggestion
	for i := sort.SearchStrings(c.words, typed); i < len(c.words); i++ {
		w := c.words[i]
		if !strings.HasPrefix(w, typed) {
			break
		}
		if len(w) > len(typed) {
			suggestions = append(suggestions, menu.Suggestion{Value: w, From: from, To: dot})
		}
	}
	return suggestions, nil
}

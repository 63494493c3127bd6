package cli

import "strings"

// BracketValidator reports a buffer as incomplete when it has an odd number
// of double quotes or a bracket that is left open.
type BracketValidator struct{}

// Validate implements Validator.
func (BracketValidator) Validate(content string) bool {
	return strings.Count(content, `"`)%2 == 0 && !hasOpenBracket(content)
}

var closers = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// A closer that doesn't match the innermost open bracket is ignored.
func hasOpenBracket(s string) bool {
	var open []rune
	for _, r := range s {
		if closer, ok := closers[r]; ok {
			open = append(open, closer)
		} else if len(open) > 0 && r == open[len(open)-1] {
			open = open[:len(open)-1]
		}
	}
	return len(open) > 0
}

// Package strutil has string helpers shared by the editor and its frontends.
package strutil

import "strings"

// ChopLineEnding strips one trailing "\n" or "\r\n" from s.
func ChopLineEnding(s string) string {
	if t, ok := strings.CutSuffix(s, "\n"); ok {
		return strings.TrimSuffix(t, "\r")
	}
	return s
}

// NormalizeNewlines turns "\r\n" and lone "\r" into "\n". Terminals send "\r"
// for Enter, so text pasted into them often uses it as the line separator.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

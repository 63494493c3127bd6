package editor

import (
	"github.com/atotto/clipboard"
)

// ClipboardMode says how clipboard content is pasted.
type ClipboardMode int

// Possible values for ClipboardMode.
const (
	// Normal content is pasted at the cursor.
	Normal ClipboardMode = iota
	// Lines content is pasted as whole lines below or above the current one.
	Lines
)

// Clipboard stores the text of cut and copy commands.
type Clipboard interface {
	Set(content string, mode ClipboardMode)
	Get() (string, ClipboardMode)
}

// LocalClipboard is a Clipboard private to the process. The zero value is
// empty and ready to use.
type LocalClipboard struct {
	content string
	mode    ClipboardMode
}

// Set implements Clipboard.
func (c *LocalClipboard) Set(content string, mode ClipboardMode) {
	c.content, c.mode = content, mode
}

// Get implements Clipboard.
func (c *LocalClipboard) Get() (string, ClipboardMode) { return c.content, c.mode }

// SystemClipboard is a Clipboard backed by the clipboard of the operating
// system. It keeps a local copy, which is used when the system clipboard is
// unavailable and to remember the mode of text it has set itself.
type SystemClipboard struct {
	local LocalClipboard
	read  func() (string, error)
	write func(string) error
}

// NewSystemClipboard returns a SystemClipboard.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{read: clipboard.ReadAll, write: clipboard.WriteAll}
}

// SystemClipboardSupported reports whether a system clipboard utility was
// found.
func SystemClipboardSupported() bool { return !clipboard.Unsupported }

// Set implements Clipboard.
func (c *SystemClipboard) Set(content string, mode ClipboardMode) {
	c.local.Set(content, mode)
	if err := c.write(content); err != nil {
		logger.Println("write system clipboard:", err)
	}
}

// Get implements Clipboard.
func (c *SystemClipboard) Get() (string, ClipboardMode) {
	content, err := c.read()
	if err != nil {
		logger.Println("read system clipboard:", err)
		return c.local.Get()
	}
	if local, mode := c.local.Get(); local == content {
		return content, mode
	}
	return content, Normal
}

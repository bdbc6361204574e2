//go:build windows

// Package stderr provides a no-op capture on Windows, where the audio
// backend does not write to stderr.
package stderr

import "os"

// Capture is a no-op on Windows.
type Capture struct {
	messages chan string
}

// Start returns a capture that never receives anything.
func Start() (*Capture, error) {
	return &Capture{messages: make(chan string)}, nil
}

func (c *Capture) Messages() <-chan string { return c.messages }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop closes the message channel.
func (c *Capture) Stop() {
	close(c.messages)
}

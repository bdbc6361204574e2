//go:build !windows

// Package stderr captures output that C audio libraries (ALSA through oto)
// write straight to file descriptor 2, so it does not corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Capture redirects fd 2 into a pipe and forwards non-empty lines to
// Messages until Stop is called.
type Capture struct {
	messages chan string
	orig     int
	r, w     *os.File
}

// Start begins capturing stderr. Call it before the audio device is opened.
// On error the program can continue with stderr untouched.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		messages: make(chan string, 100),
		orig:     orig,
		r:        r,
		w:        w,
	}
	go c.forward()
	return c, nil
}

func (c *Capture) forward() {
	defer close(c.messages)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.messages <- line:
		default:
			// Channel full, drop message to avoid blocking
		}
	}
}

// Messages receives captured lines. It is closed after Stop.
func (c *Capture) Messages() <-chan string {
	return c.messages
}

// WriteOriginal writes to the real stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.orig)
	c.w.Close()
	c.r.Close()
}

// Package errmsg formats errors for the sound board status line.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/soundkit/internal/sfx"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad  Op = "load config"
	OpBankLoad    Op = "load profile bank"
	OpClipLoad    Op = "load clip"
	OpDeviceStart Op = "start audio device"
	OpLogOpen     Op = "open log file"
	OpInitialize  Op = "initialize voice pool"
	OpStateOpen   Op = "open session state"

	// Plays
	OpPlay      Op = "play"
	OpCrossFade Op = "crossfade"
	OpFade      Op = "fade"
	OpPause     Op = "pause"
	OpStop      Op = "stop"

	// Session
	OpSaveState Op = "save state for"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context, such as a
// profile name.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, sfx.ErrReleased) {
		return Ended(context)
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Ended is the message shown when acting on a play that already finished.
func Ended(context string) string {
	if context == "" {
		return "Play already ended"
	}
	return fmt.Sprintf("'%s' already ended", context)
}

// Dropped is the message shown when the pool has no voice for a play.
func Dropped(context string) string {
	return fmt.Sprintf("No free voice for '%s', play dropped", context)
}

package sfx

import "errors"

var (
	// ErrInvalidDescriptor is returned when a descriptor has no clip or an
	// out of range sample window.
	ErrInvalidDescriptor = errors.New("invalid playback descriptor")

	// ErrInvalidOperation is returned when a voice is started while busy.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrReleased is returned by every Handle operation once its play is over.
	// Callers should treat it as "this play already ended".
	ErrReleased = errors.New("playback handle released")

	// ErrNotInitialized is returned by Context.Pool when no pool exists and
	// auto creation is disabled.
	ErrNotInitialized = errors.New("voice pool not initialized")

	// ErrPoolClosed is returned when using a pool after Close.
	ErrPoolClosed = errors.New("voice pool closed")
)

package tray

import "errors"

var (
	// ErrDestroyed signals that the tray window is gone. The event loop stops
	// cleanly on it and every mutation afterwards returns it.
	ErrDestroyed = errors.New("tray window destroyed")

	// ErrAlreadyDocked is returned for a dock request naming a window that is
	// already embedded.
	ErrAlreadyDocked = errors.New("window already docked")
)

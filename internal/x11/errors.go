package x11

import (
	"errors"
	"fmt"
)

// ErrConnectionClosed is returned by WaitForEvent once the X connection is gone.
var ErrConnectionClosed = errors.New("x11 connection closed")

// ConnectionError reports a failure to establish the X connection.
type ConnectionError struct {
	Display string
	Err     error
}

func (e *ConnectionError) Error() string {
	display := e.Display
	if display == "" {
		display = "$DISPLAY"
	}
	return fmt.Sprintf("connect to X display %s: %v", display, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError reports a request rejected by the X server.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("x11 %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func protocolErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ProtocolError{Op: op, Err: err}
}

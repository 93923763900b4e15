package control

import "errors"

// ErrServerClosed is returned by Serve and Listen after Close.
var ErrServerClosed = errors.New("control server closed")

// Error reports a failure on the control channel.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "control " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

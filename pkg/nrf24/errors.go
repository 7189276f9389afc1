package nrf24

import (
	"errors"
	"fmt"
)

var (
	// ErrShortResponse indicates the link returned fewer bytes than sent.
	ErrShortResponse = errors.New("short response")
)

// TransportError wraps a failed exchange with the command that was on the wire.
type TransportError struct {
	Op  string
	Cmd byte
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s (cmd 0x%02x): %v", e.Op, e.Cmd, e.Err)
}

// Unwrap returns the underlying link error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err came from the link.
func IsTransport(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}

// Package hal defines the hardware boundaries the radio driver is written
// against: a full-duplex byte link to the chip and plain digital outputs.
package hal

import (
	"fmt"
	"sync"
)

// Transport exchanges one full-duplex frame with a peripheral. The response
// has the same length as the request.
type Transport interface {
	Exchange(req []byte) ([]byte, error)
}

// Line is a digital output (chip-enable, indicator LED).
type Line interface {
	High() error
	Low() error
}

// Set drives l high if v is true, low otherwise.
func Set(l Line, v bool) error {
	if v {
		return l.High()
	}
	return l.Low()
}

// ExchangeFunc is the func form of Transport.
type ExchangeFunc func(req []byte) ([]byte, error)

// Exchange implements Transport.
func (f ExchangeFunc) Exchange(req []byte) ([]byte, error) {
	return f(req)
}

// LengthError reports a response whose length differs from the request.
type LengthError struct {
	Want, Got int
}

// Error implements error.
func (e *LengthError) Error() string {
	return fmt.Sprintf("response length %d, want %d", e.Got, e.Want)
}

type guarded struct {
	t    Transport
	lock sync.Mutex
}

// Guard serializes exchanges on t. Each link has one owning task, the guard
// keeps frames whole when a diagnostic reader shares it.
func Guard(t Transport) Transport {
	if g, ok := t.(*guarded); ok {
		return g
	}
	return &guarded{t: t}
}

func (g *guarded) Exchange(req []byte) ([]byte, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	resp, err := g.t.Exchange(req)
	if err == nil && len(resp) != len(req) {
		err = &LengthError{Want: len(req), Got: len(resp)}
	}
	return resp, err
}

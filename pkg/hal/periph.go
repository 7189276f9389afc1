//go:build !tinygo

package hal

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// SPI adapts a periph.io SPI connection. Chip select is asserted by the
// connection for the length of each Tx.
func SPI(conn spi.Conn) Transport {
	return ExchangeFunc(func(req []byte) ([]byte, error) {
		resp := make([]byte, len(req))
		if err := conn.Tx(req, resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
}

// Pin adapts a periph.io output pin.
func Pin(p gpio.PinOut) Line {
	return &pin{p: p}
}

type pin struct {
	p gpio.PinOut
}

func (p *pin) High() error { return p.p.Out(gpio.High) }
func (p *pin) Low() error  { return p.p.Out(gpio.Low) }

// String returns the pin name.
func (p *pin) String() string { return p.p.String() }

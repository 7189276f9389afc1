//go:build tinygo

package board

import (
	"machine"

	"github.com/robotalks/nrfduo/pkg/firmware"
	"github.com/robotalks/nrfduo/pkg/hal"
)

type line machine.Pin

func (l line) High() error { machine.Pin(l).High(); return nil }
func (l line) Low() error  { machine.Pin(l).Low(); return nil }

func output(n int) line {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.High()
	return line(p)
}

type link struct {
	bus *machine.SPI
	cs  machine.Pin
}

func (l *link) Exchange(req []byte) ([]byte, error) {
	resp := make([]byte, len(req))
	l.cs.Low()
	err := l.bus.Tx(req, resp)
	l.cs.High()
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func openLink(bus *machine.SPI, l Link, hz int64) (hal.Transport, hal.Line, error) {
	err := bus.Configure(machine.SPIConfig{
		Frequency: uint32(hz),
		Mode:      0,
		SCK:       machine.Pin(l.SCK),
		SDO:       machine.Pin(l.MOSI),
		SDI:       machine.Pin(l.MISO),
	})
	if err != nil {
		return nil, nil, err
	}
	cs := output(l.CS)
	ce := output(l.CE)
	machine.Pin(ce).Low()
	return &link{bus: bus, cs: machine.Pin(cs)}, ce, nil
}

// Open configures SPI0 for the receiver, SPI1 for the transmitter and the
// LED pin.
func Open(conf *Config) (firmware.Board, error) {
	var b firmware.Board
	var err error
	if b.RxLink, b.RxCE, err = openLink(machine.SPI0, conf.Receiver, conf.SPIHz); err != nil {
		return b, err
	}
	if b.TxLink, b.TxCE, err = openLink(machine.SPI1, conf.Transmitter, conf.SPIHz); err != nil {
		return b, err
	}
	led := output(conf.LED)
	machine.Pin(led).Low()
	b.LED = led
	return b, nil
}

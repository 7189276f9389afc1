//go:build !tinygo

package board

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/robotalks/nrfduo/pkg/firmware"
	"github.com/robotalks/nrfduo/pkg/framework"
	"github.com/robotalks/nrfduo/pkg/hal"
)

type closers []io.Closer

func (c closers) Close() error {
	var errs framework.AggregatedError
	for _, cl := range c {
		errs.Add(cl.Close())
	}
	return errs.Aggregate()
}

// Open initializes the host drivers and opens the peripherals of conf.
// The returned closer releases the SPI ports.
func Open(conf *Config) (firmware.Board, io.Closer, error) {
	var b firmware.Board
	if _, err := host.Init(); err != nil {
		return b, nil, fmt.Errorf("host init: %w", err)
	}
	var ports closers
	fail := func(err error) (firmware.Board, io.Closer, error) {
		ports.Close()
		return b, nil, err
	}
	hz := physic.Frequency(conf.SPIHz) * physic.Hertz
	open := func(l Link) (hal.Transport, hal.Line, error) {
		port, err := spireg.Open(l.Port)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", l.Port, err)
		}
		ports = append(ports, port)
		conn, err := port.Connect(hz, spi.Mode0, 8)
		if err != nil {
			return nil, nil, fmt.Errorf("connect %s: %w", l.Port, err)
		}
		ce, err := outPin(l.CEPin())
		if err != nil {
			return nil, nil, err
		}
		glog.Infof("%s at %v, CE %s", l.Port, hz, l.CEPin())
		return hal.SPI(conn), ce, nil
	}
	var err error
	if b.RxLink, b.RxCE, err = open(conf.Receiver); err != nil {
		return fail(err)
	}
	if b.TxLink, b.TxCE, err = open(conf.Transmitter); err != nil {
		return fail(err)
	}
	if b.LED, err = outPin(conf.LEDPin()); err != nil {
		return fail(err)
	}
	return b, ports, nil
}

func outPin(name string) (hal.Line, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("pin %s not found", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("pin %s: %w", name, err)
	}
	return hal.Pin(p), nil
}

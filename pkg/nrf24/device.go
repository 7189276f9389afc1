package nrf24

import (
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/nrfduo/pkg/hal"
)

// Device drives one nRF24L01+ over a Transport and its CE line.
type Device struct {
	Transport hal.Transport
	CE        hal.Line
	Name      string

	// last STATUS echo, accessed atomically.
	status uint32
}

// NewDevice creates a Device.
func NewDevice(name string, t hal.Transport, ce hal.Line) *Device {
	return &Device{Name: name, Transport: t, CE: ce}
}

// Status returns the STATUS echo of the last exchange.
func (d *Device) Status() Status {
	return Status(atomic.LoadUint32(&d.status))
}

// exchange returns the response and its STATUS echo, or the last known
// STATUS on failure.
func (d *Device) exchange(op string, req []byte) ([]byte, Status, error) {
	resp, err := d.Transport.Exchange(req)
	if err == nil && len(resp) < len(req) {
		err = ErrShortResponse
	}
	if err != nil {
		return nil, d.Status(), &TransportError{Op: op, Cmd: req[0], Err: err}
	}
	atomic.StoreUint32(&d.status, uint32(resp[0]))
	return resp, Status(resp[0]), nil
}

// WriteReg writes a single-byte register.
func (d *Device) WriteReg(reg Reg, val byte) (Status, error) {
	if glog.V(2) {
		glog.Infof("%s: W %s=%02x", d.Name, reg, val)
	}
	_, stat, err := d.exchange("write "+reg.String(), []byte{W_REGISTER.With(reg), val})
	return stat, err
}

// ReadReg reads a single-byte register.
func (d *Device) ReadReg(reg Reg) (byte, Status, error) {
	resp, stat, err := d.exchange("read "+reg.String(), []byte{R_REGISTER.With(reg), 0})
	if err != nil {
		return 0, stat, err
	}
	return resp[1], stat, nil
}

// WriteAddr writes a 5-byte address register.
func (d *Device) WriteAddr(reg Reg, addr Address) (Status, error) {
	if glog.V(2) {
		glog.Infof("%s: W %s=%x", d.Name, reg, addr[:])
	}
	req := make([]byte, 1+AddressSize)
	req[0] = W_REGISTER.With(reg)
	copy(req[1:], addr[:])
	_, stat, err := d.exchange("write "+reg.String(), req)
	return stat, err
}

// ReadAddr reads a 5-byte address register.
func (d *Device) ReadAddr(reg Reg) (addr Address, stat Status, err error) {
	req := make([]byte, 1+AddressSize)
	req[0] = R_REGISTER.With(reg)
	resp, stat, err := d.exchange("read "+reg.String(), req)
	if err != nil {
		return addr, stat, err
	}
	copy(addr[:], resp[1:])
	return addr, stat, nil
}

// ReadPayload pops one payload from the RX FIFO. The returned status is the
// one echoed before the read.
func (d *Device) ReadPayload() (p Payload, stat Status, err error) {
	req := make([]byte, 1+PayloadSize)
	req[0] = byte(R_RX_PAYLOAD)
	for i := 1; i < len(req); i++ {
		req[i] = byte(NOP)
	}
	resp, stat, err := d.exchange("read payload", req)
	if err != nil {
		return p, stat, err
	}
	copy(p[:], resp[1:])
	if glog.V(2) {
		glog.Infof("%s: R_RX_PAYLOAD %x", d.Name, p[:])
	}
	return p, stat, nil
}

// WritePayload pushes one payload into the TX FIFO.
func (d *Device) WritePayload(p Payload) (Status, error) {
	req := make([]byte, 1+PayloadSize)
	req[0] = byte(W_TX_PAYLOAD)
	copy(req[1:], p[:])
	if glog.V(2) {
		glog.Infof("%s: W_TX_PAYLOAD %x", d.Name, p[:])
	}
	_, stat, err := d.exchange("write payload", req)
	return stat, err
}

// Flush issues FLUSH_RX or FLUSH_TX followed by a NOP pad byte.
func (d *Device) Flush(cmd Command) (Status, error) {
	_, stat, err := d.exchange("flush", []byte{byte(cmd), byte(NOP)})
	return stat, err
}

// NOP reads STATUS without side effects.
func (d *Device) NOP() (Status, error) {
	_, stat, err := d.exchange("nop", []byte{byte(NOP)})
	return stat, err
}

// ClearStatus writes 1 to the given STATUS flags to clear them.
func (d *Device) ClearStatus(flags Status) (Status, error) {
	return d.WriteReg(STATUS, byte(flags))
}

// SetCE drives the chip-enable line.
func (d *Device) SetCE(high bool) error {
	return hal.Set(d.CE, high)
}

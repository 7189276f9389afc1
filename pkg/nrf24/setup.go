package nrf24

import (
	"context"
	"strconv"
	"time"

	"github.com/golang/glog"
)

// Role selects which side of the link a chip plays.
type Role int

// Roles.
const (
	Transmitter Role = iota
	Receiver
)

func (r Role) String() string {
	switch r {
	case Transmitter:
		return "transmitter"
	case Receiver:
		return "receiver"
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

func bit(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// Settle is the power-on and power-up settle time.
const Settle = 5 * time.Millisecond

// DefaultAddress is the pipe 0 address shared by both roles.
var DefaultAddress = Address{1, 0, 0, 0, 0}

// Setup is the bring-up configuration of one chip.
type Setup struct {
	Role            Role
	Channel         byte
	Address         Address
	RetransmitDelay byte
	RetransmitCount byte
	Power           byte
	PayloadWidth    byte
	Retry           RetryPolicy
}

// DefaultSetup returns the fixed bring-up for role: channel 76, 1Mbps at
// full power, auto retransmit delay 5 and count 15, no auto-ack, no dynamic
// payloads and 32-byte static payloads on pipe 0.
func DefaultSetup(role Role) Setup {
	return Setup{
		Role:            role,
		Channel:         76,
		Address:         DefaultAddress,
		RetransmitDelay: 5,
		RetransmitCount: 15,
		Power:           3,
		PayloadWidth:    PayloadSize,
	}
}

// RegValue is one register write of the bring-up plan.
type RegValue struct {
	Reg Reg
	Val byte
}

// Plan returns the single-byte register writes that precede the FIFO flush,
// in the order the chip requires them.
func (s Setup) Plan() []RegValue {
	isRx := bit(s.Role == Receiver)
	return []RegValue{
		{SETUP_RETR, byte(SetupRetr(0).WithDelay(s.RetransmitDelay).WithCount(s.RetransmitCount))},
		{RF_SETUP, byte(RFSetup(0).WithPwr(s.Power).WithDRLow(0).WithDRHigh(0))},
		{FEATURE, byte(Feature(0).WithEnAckPay(0).WithEnDPL(0).WithEnDynAck(0))},
		{DYNPD, byte(Pipes(0).WithPipe(0, 0))},
		{EN_AA, byte(Pipes(0).WithPipe(0, 0))},
		{EN_RXADDR, byte(Pipes(0).WithPipe(0, isRx))},
		{RX_PW_P0, byte(RxPW(0).WithPW(s.PayloadWidth))},
		{SETUP_AW, byte(SetupAW(0).WithAW(3))},
		{RF_CH, byte(RFCh(0).WithCh(s.Channel))},
		{STATUS, byte(Status(0).WithRxDR(1).WithTxDS(1).WithMaxRT(1).WithRxPNo(0))},
	}
}

// Config returns the CONFIG value written once the FIFOs are flushed.
func (s Setup) Config() Config {
	return Config(0).
		WithEnCRC(1).
		WithCRCO(1).
		WithPwrUp(1).
		WithPrimRx(bit(s.Role == Receiver))
}

// PipeAddrReg returns TX_ADDR for a transmitter, RX_ADDR_P0 for a receiver.
func (s Setup) PipeAddrReg() Reg {
	if s.Role == Receiver {
		return RX_ADDR_P0
	}
	return TX_ADDR
}

// BringUp configures the chip from an unknown state. CE stays low until the
// end, where a receiver starts listening. Any link failure that outlives the
// retry policy aborts the bring-up.
func (d *Device) BringUp(ctx context.Context, w Waiter, s Setup) error {
	w = waiterOrSleep(w)
	if err := d.SetCE(false); err != nil {
		return err
	}
	if err := w.Sleep(ctx, Settle); err != nil {
		return err
	}
	write := func(reg Reg, val byte) error {
		return s.Retry.Do(ctx, d.Name+": write "+reg.String(), func() error {
			_, err := d.WriteReg(reg, val)
			return err
		})
	}
	for _, rv := range s.Plan() {
		if err := write(rv.Reg, rv.Val); err != nil {
			return err
		}
	}
	for _, cmd := range []Command{FLUSH_RX, FLUSH_TX} {
		err := s.Retry.Do(ctx, d.Name+": flush", func() error {
			_, err := d.Flush(cmd)
			return err
		})
		if err != nil {
			return err
		}
	}
	cfg := s.Config()
	if err := write(CONFIG, byte(cfg)); err != nil {
		return err
	}
	if err := w.Sleep(ctx, Settle); err != nil {
		return err
	}
	addrReg := s.PipeAddrReg()
	err := s.Retry.Do(ctx, d.Name+": write "+addrReg.String(), func() error {
		_, err := d.WriteAddr(addrReg, s.Address)
		return err
	})
	if err != nil {
		return err
	}
	if s.Role == Receiver {
		if err := d.SetCE(true); err != nil {
			return err
		}
	}
	glog.Infof("%s: up as %s, ch %d, %s", d.Name, s.Role, s.Channel, cfg)
	return nil
}

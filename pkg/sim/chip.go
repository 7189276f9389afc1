// Package sim models nRF24L01+ chips well enough to run the driver without
// hardware: register file, FIFOs, write-1-to-clear STATUS and CE-triggered
// transmission through a shared Air.
package sim

import (
	"sync"

	"github.com/robotalks/nrfduo/pkg/hal"
	"github.com/robotalks/nrfduo/pkg/nrf24"
)

// FIFODepth is the depth of the RX and TX FIFOs.
const FIFODepth = 3

// Stats counts chip activity.
type Stats struct {
	Exchanges int
	Sent      int
	Received  int
	Lost      int
	Overflows int
}

// Chip is a simulated nRF24L01+. It implements hal.Transport.
type Chip struct {
	Name string

	lock   sync.Mutex
	air    *Air
	regs   [0x20]byte
	addrs  map[nrf24.Reg]nrf24.Address
	rx     []nrf24.Payload
	tx     []nrf24.Payload
	ce     bool
	faults []error
	stats  Stats
}

// NewChip creates a chip in its power-on state and joins it to air.
// air may be nil for a chip that never sends or receives.
func NewChip(name string, air *Air) *Chip {
	c := &Chip{Name: name, air: air}
	c.reset()
	if air != nil {
		air.Join(c)
	}
	return c
}

func (c *Chip) reset() {
	c.regs = [0x20]byte{}
	c.regs[nrf24.CONFIG] = 0x08
	c.regs[nrf24.EN_AA] = 0x3f
	c.regs[nrf24.EN_RXADDR] = 0x03
	c.regs[nrf24.SETUP_AW] = 0x03
	c.regs[nrf24.SETUP_RETR] = 0x03
	c.regs[nrf24.RF_CH] = 0x02
	c.regs[nrf24.RF_SETUP] = 0x0f
	c.addrs = map[nrf24.Reg]nrf24.Address{
		nrf24.RX_ADDR_P0:     {0xe7, 0xe7, 0xe7, 0xe7, 0xe7},
		nrf24.RX_ADDR_P0 + 1: {0xc2, 0xc2, 0xc2, 0xc2, 0xc2},
		nrf24.TX_ADDR:        {0xe7, 0xe7, 0xe7, 0xe7, 0xe7},
	}
	c.rx, c.tx = nil, nil
}

// Fail makes the next exchanges fail with errs, one error per exchange.
func (c *Chip) Fail(errs ...error) {
	c.lock.Lock()
	c.faults = append(c.faults, errs...)
	c.lock.Unlock()
}

// Stats returns the activity counters.
func (c *Chip) Stats() Stats {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.stats
}

// Reg returns the current value of a single-byte register.
func (c *Chip) Reg(r nrf24.Reg) byte {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.readReg(r)
}

// Addr returns the current value of an address register.
func (c *Chip) Addr(r nrf24.Reg) nrf24.Address {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.addrs[r]
}

// Pending returns the number of payloads in the RX and TX FIFOs.
func (c *Chip) Pending() (rx, tx int) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.rx), len(c.tx)
}

// CE returns the chip-enable line of the chip.
func (c *Chip) CE() hal.Line {
	return &ceLine{chip: c}
}

func (c *Chip) status() nrf24.Status {
	s := nrf24.Status(c.regs[nrf24.STATUS] & 0x70)
	if len(c.rx) == 0 {
		s = s.WithRxPNo(7)
	}
	if len(c.tx) >= FIFODepth {
		s |= nrf24.Status(nrf24.TxFull.Mask())
	}
	return s
}

func (c *Chip) fifoStatus() byte {
	var v byte
	if len(c.rx) == 0 {
		v |= 0x01
	}
	if len(c.rx) >= FIFODepth {
		v |= 0x02
	}
	if len(c.tx) == 0 {
		v |= 0x10
	}
	if len(c.tx) >= FIFODepth {
		v |= 0x20
	}
	return v
}

func (c *Chip) readReg(r nrf24.Reg) byte {
	switch r {
	case nrf24.STATUS:
		return byte(c.status())
	case nrf24.FIFO_STATUS:
		return c.fifoStatus()
	}
	if addr, ok := c.addrs[r]; ok {
		return addr[0]
	}
	return c.regs[r&0x1f]
}

func (c *Chip) writeReg(r nrf24.Reg, v byte) {
	switch r {
	case nrf24.STATUS:
		c.regs[r] &^= v & 0x70
	case nrf24.OBSERVE_TX, nrf24.FIFO_STATUS:
	default:
		c.regs[r&0x1f] = v
	}
}

// Exchange implements hal.Transport.
func (c *Chip) Exchange(req []byte) ([]byte, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if len(c.faults) > 0 {
		err := c.faults[0]
		c.faults = c.faults[1:]
		if err != nil {
			return nil, err
		}
	}
	c.stats.Exchanges++
	resp := make([]byte, len(req))
	if len(req) == 0 {
		return resp, nil
	}
	resp[0] = byte(c.status())
	cmd := req[0]
	switch {
	case cmd&0xe0 == byte(nrf24.R_REGISTER):
		reg := nrf24.Reg(cmd & 0x1f)
		if addr, ok := c.addrs[reg]; ok {
			copy(resp[1:], addr[:])
		} else if len(resp) > 1 {
			resp[1] = c.readReg(reg)
		}
	case cmd&0xe0 == byte(nrf24.W_REGISTER):
		reg := nrf24.Reg(cmd & 0x1f)
		if addr, ok := c.addrs[reg]; ok {
			copy(addr[:], req[1:])
			c.addrs[reg] = addr
		} else if len(req) > 1 {
			c.writeReg(reg, req[1])
		}
	case cmd == byte(nrf24.R_RX_PAYLOAD):
		if len(c.rx) > 0 {
			copy(resp[1:], c.rx[0][:])
			c.rx = c.rx[1:]
		}
	case cmd == byte(nrf24.W_TX_PAYLOAD):
		if len(c.tx) < FIFODepth {
			c.tx = append(c.tx, nrf24.PayloadFrom(req[1:]))
		}
	case cmd == byte(nrf24.FLUSH_TX):
		c.tx = nil
	case cmd == byte(nrf24.FLUSH_RX):
		c.rx = nil
	}
	return resp, nil
}

func (c *Chip) config() nrf24.Config {
	return nrf24.Config(c.regs[nrf24.CONFIG])
}

// listening reports whether the chip accepts a packet on channel ch sent to
// addr. Caller holds the lock.
func (c *Chip) listening(ch byte, addr nrf24.Address) bool {
	cfg := c.config()
	return c.ce && cfg.PwrUp() == 1 && cfg.PrimRx() == 1 &&
		nrf24.RFCh(c.regs[nrf24.RF_CH]).Ch() == ch &&
		nrf24.Pipes(c.regs[nrf24.EN_RXADDR]).Pipe(0) == 1 &&
		c.addrs[nrf24.RX_ADDR_P0] == addr
}

// receive accepts p if the chip is listening. It returns false when the chip
// is not listening; a full RX FIFO still acknowledges but drops p.
func (c *Chip) receive(ch byte, addr nrf24.Address, p nrf24.Payload) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.listening(ch, addr) {
		return false
	}
	if len(c.rx) >= FIFODepth {
		c.stats.Overflows++
		return true
	}
	c.rx = append(c.rx, p)
	c.regs[nrf24.STATUS] |= nrf24.RxDR.Mask()
	c.stats.Received++
	return true
}

// setCE drives CE. A rising edge in PTX mode sends the head of the TX FIFO.
func (c *Chip) setCE(high bool) {
	c.lock.Lock()
	rising := high && !c.ce
	c.ce = high
	cfg := c.config()
	if !rising || cfg.PrimRx() == 1 || cfg.PwrUp() == 0 || len(c.tx) == 0 {
		c.lock.Unlock()
		return
	}
	p := c.tx[0]
	ch := nrf24.RFCh(c.regs[nrf24.RF_CH]).Ch()
	addr := c.addrs[nrf24.TX_ADDR]
	autoAck := nrf24.Pipes(c.regs[nrf24.EN_AA]).Pipe(0) == 1
	c.lock.Unlock()

	acked := false
	if c.air != nil {
		acked = c.air.transmit(c, ch, addr, p) > 0
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.stats.Sent++
	if autoAck && !acked {
		c.regs[nrf24.STATUS] |= nrf24.MaxRT.Mask()
		c.stats.Lost++
		return
	}
	c.tx = c.tx[1:]
	c.regs[nrf24.STATUS] |= nrf24.TxDS.Mask()
}

type ceLine struct {
	chip *Chip
}

func (l *ceLine) High() error {
	l.chip.setCE(true)
	return nil
}

func (l *ceLine) Low() error {
	l.chip.setCE(false)
	return nil
}

func (l *ceLine) String() string {
	return l.chip.Name + ".CE"
}

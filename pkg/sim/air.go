package sim

import (
	"sync"

	"github.com/robotalks/nrfduo/pkg/nrf24"
)

// Packet is a payload seen on the air.
type Packet struct {
	From      string
	Channel   byte
	Address   nrf24.Address
	Payload   nrf24.Payload
	Receivers int
}

// PacketListener observes every packet sent through the air.
type PacketListener interface {
	PacketSent(Packet)
}

// PacketListenerFunc is the func form of PacketListener.
type PacketListenerFunc func(Packet)

// PacketSent implements PacketListener.
func (f PacketListenerFunc) PacketSent(p Packet) {
	f(p)
}

// Air connects chips. A packet reaches every other chip listening on the
// same channel and address.
type Air struct {
	// Drop, if set, decides whether a packet is lost before reaching any chip.
	Drop func(Packet) bool

	lock      sync.Mutex
	chips     []*Chip
	listeners []PacketListener
}

// NewAir creates an empty medium.
func NewAir() *Air {
	return &Air{}
}

// Join adds a chip.
func (a *Air) Join(c *Chip) {
	a.lock.Lock()
	a.chips = append(a.chips, c)
	a.lock.Unlock()
}

// Subscribe adds a listener.
func (a *Air) Subscribe(ln PacketListener) {
	a.lock.Lock()
	a.listeners = append(a.listeners, ln)
	a.lock.Unlock()
}

func (a *Air) transmit(from *Chip, ch byte, addr nrf24.Address, p nrf24.Payload) int {
	a.lock.Lock()
	chips := append([]*Chip(nil), a.chips...)
	listeners := append([]PacketListener(nil), a.listeners...)
	drop := a.Drop
	a.lock.Unlock()

	pkt := Packet{From: from.Name, Channel: ch, Address: addr, Payload: p}
	if drop == nil || !drop(pkt) {
		for _, c := range chips {
			if c != from && c.receive(ch, addr, p) {
				pkt.Receivers++
			}
		}
	}
	for _, ln := range listeners {
		ln.PacketSent(pkt)
	}
	return pkt.Receivers
}

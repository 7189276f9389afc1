//go:build !tinygo

package board

import (
	"github.com/golang/glog"

	"github.com/robotalks/nrfduo/pkg/firmware"
	"github.com/robotalks/nrfduo/pkg/sim"
)

// Sim is a board of simulated chips sharing one air.
type Sim struct {
	Air *sim.Air
	Rx  *sim.Chip
	Tx  *sim.Chip
	LED *sim.Pin
}

// NewSim creates a simulated board.
func NewSim() *Sim {
	air := sim.NewAir()
	s := &Sim{
		Air: air,
		Rx:  sim.NewChip("rx", air),
		Tx:  sim.NewChip("tx", air),
		LED: sim.NewPin("led"),
	}
	air.Subscribe(sim.PacketListenerFunc(func(p sim.Packet) {
		glog.V(2).Infof("air: %s ch %d -> %d receivers: %q", p.From, p.Channel, p.Receivers, p.Payload.Trimmed())
	}))
	return s
}

// Board returns the peripherals of s.
func (s *Sim) Board() firmware.Board {
	return firmware.Board{
		RxLink: s.Rx,
		RxCE:   s.Rx.CE(),
		TxLink: s.Tx,
		TxCE:   s.Tx.CE(),
		LED:    s.LED,
	}
}

// Stats returns the counters of both chips.
func (s *Sim) Stats() map[string]interface{} {
	return map[string]interface{}{
		"rx": s.Rx.Stats(),
		"tx": s.Tx.Stats(),
	}
}

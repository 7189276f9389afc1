package indicator

import (
	"context"

	"github.com/golang/glog"

	"github.com/robotalks/nrfduo/pkg/framework"
	"github.com/robotalks/nrfduo/pkg/hal"
)

// Signal is a momentary indicator command.
type Signal int

// Signals.
const (
	Off Signal = iota
	On
)

func (s Signal) String() string {
	if s == On {
		return "on"
	}
	return "off"
}

// Channel is a single-slot mailbox of signals. Any number of senders may
// share it; one receiver drains it.
type Channel struct {
	slot chan Signal
}

// NewChannel creates an empty channel.
func NewChannel() *Channel {
	return &Channel{slot: make(chan Signal, 1)}
}

// Pending returns the number of signals sitting in the slot, 0 or 1.
func (c *Channel) Pending() int {
	return len(c.slot)
}

// Sender binds the channel to the execution context of a producer task.
func (c *Channel) Sender(s framework.Suspender) *Sender {
	return &Sender{ch: c, s: s}
}

// Receiver binds the channel to the execution context of the consumer task.
func (c *Channel) Receiver(s framework.Suspender) *Receiver {
	return &Receiver{ch: c, s: s}
}

// Sender puts signals into a Channel.
type Sender struct {
	ch *Channel
	s  framework.Suspender
}

// Send places sig in the slot, waiting while it is occupied.
func (s *Sender) Send(ctx context.Context, sig Signal) error {
	select {
	case s.ch.slot <- sig:
		return nil
	default:
	}
	return framework.Suspend(ctx, s.s, func(ctx context.Context) error {
		select {
		case s.ch.slot <- sig:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// Receiver takes signals from a Channel.
type Receiver struct {
	ch *Channel
	s  framework.Suspender
}

// Recv waits for the next signal.
func (r *Receiver) Recv(ctx context.Context) (sig Signal, err error) {
	select {
	case sig = <-r.ch.slot:
		return sig, nil
	default:
	}
	err = framework.Suspend(ctx, r.s, func(ctx context.Context) error {
		select {
		case sig = <-r.ch.slot:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	return sig, err
}

// Task drives the indicator pin from received signals.
type Task struct {
	Pin      hal.Line
	Signals  *Receiver
	Observer func(Signal)
}

// Run applies signals to the pin until ctx is done or the pin fails.
func (t *Task) Run(ctx context.Context) error {
	for {
		sig, err := t.Signals.Recv(ctx)
		if err != nil {
			return err
		}
		if err = hal.Set(t.Pin, sig == On); err != nil {
			return err
		}
		glog.V(3).Infof("indicator %s", sig)
		if t.Observer != nil {
			t.Observer(sig)
		}
	}
}

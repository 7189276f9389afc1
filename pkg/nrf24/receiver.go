package nrf24

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// RxState is the state of the receive loop.
type RxState int

// Receive loop states.
const (
	Polling RxState = iota
	Draining
	Signaling
)

func (s RxState) String() string {
	switch s {
	case Polling:
		return "polling"
	case Draining:
		return "draining"
	case Signaling:
		return "signaling"
	}
	return "unknown"
}

// ReceiveLoop polls a listening chip, drains each payload and blinks.
type ReceiveLoop struct {
	Device   *Device
	Signals  SignalSender
	Waiter   Waiter
	Reporter Reporter
	Blink    Blink
	// PollInterval is the wait between idle polls, 0 polls back to back.
	PollInterval time.Duration

	state RxState
	last  Payload
}

// NewReceiveLoop creates a ReceiveLoop with the default blink.
func NewReceiveLoop(d *Device, s SignalSender, w Waiter) *ReceiveLoop {
	return &ReceiveLoop{Device: d, Signals: s, Waiter: w, Blink: DefaultBlink}
}

// State returns the state the next Step runs.
func (r *ReceiveLoop) State() RxState {
	return r.state
}

// Last returns the most recently drained payload.
func (r *ReceiveLoop) Last() Payload {
	return r.last
}

// Step runs the current state and moves to the next one.
func (r *ReceiveLoop) Step(ctx context.Context) error {
	w := waiterOrSleep(r.Waiter)
	switch r.state {
	case Polling:
		_, stat, err := r.Device.ReadReg(STATUS)
		if err != nil {
			return err
		}
		if stat.DataReady() {
			r.state = Draining
			return nil
		}
		if r.PollInterval > 0 {
			return w.Sleep(ctx, r.PollInterval)
		}
		return ctx.Err()
	case Draining:
		p, stat, err := r.Device.ReadPayload()
		if err != nil {
			return err
		}
		if _, err = r.Device.WriteReg(STATUS, byte(stat.WithRxDR(1))); err != nil {
			return err
		}
		r.last = p
		glog.V(1).Infof("%s: received %q", r.Device.Name, p.Trimmed())
		if r.Reporter != nil {
			r.Reporter.Report(Event{
				Kind:    EventReceived,
				Device:  r.Device.Name,
				Role:    Receiver,
				Payload: p,
				Status:  stat,
				Time:    time.Now(),
			})
		}
		r.state = Signaling
		return nil
	case Signaling:
		if err := r.Blink.Run(ctx, w, r.Signals); err != nil {
			return err
		}
		r.state = Polling
		return nil
	}
	return nil
}

// Run steps the loop until a link failure or ctx is done.
func (r *ReceiveLoop) Run(ctx context.Context) error {
	for {
		if err := r.Step(ctx); err != nil {
			return err
		}
	}
}

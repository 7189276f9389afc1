package nrf24

import (
	"context"
	"time"

	"github.com/robotalks/nrfduo/pkg/indicator"
)

// Waiter suspends the calling task for a duration.
type Waiter interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type sleepWaiter struct{}

func (sleepWaiter) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func waiterOrSleep(w Waiter) Waiter {
	if w == nil {
		return sleepWaiter{}
	}
	return w
}

// SignalSender delivers indicator signals, blocking while the slot is taken.
type SignalSender interface {
	Send(ctx context.Context, sig indicator.Signal) error
}

// Blink is the indicator sequence that follows each radio event.
type Blink struct {
	Hold time.Duration // between On and Off
	Gap  time.Duration // after Off
	Idle time.Duration // before the loop resumes
}

// DefaultBlink holds each phase for 100ms.
var DefaultBlink = Blink{
	Hold: 100 * time.Millisecond,
	Gap:  100 * time.Millisecond,
	Idle: 100 * time.Millisecond,
}

// Run sends On, waits Hold, sends Off, waits Gap then Idle.
func (b Blink) Run(ctx context.Context, w Waiter, s SignalSender) error {
	if s != nil {
		if err := s.Send(ctx, indicator.On); err != nil {
			return err
		}
	}
	if err := w.Sleep(ctx, b.Hold); err != nil {
		return err
	}
	if s != nil {
		if err := s.Send(ctx, indicator.Off); err != nil {
			return err
		}
	}
	if err := w.Sleep(ctx, b.Gap); err != nil {
		return err
	}
	return w.Sleep(ctx, b.Idle)
}

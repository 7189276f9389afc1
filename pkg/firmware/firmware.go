// Package firmware assembles the dual-core radio image: core A hosts the
// receiver, core B hosts the transmitter and the indicator task, and the
// indicator channel is the only thing the two cores share.
package firmware

import (
	"context"

	"github.com/robotalks/nrfduo/pkg/framework"
	"github.com/robotalks/nrfduo/pkg/hal"
	"github.com/robotalks/nrfduo/pkg/indicator"
	"github.com/robotalks/nrfduo/pkg/nrf24"
)

// Board is the set of peripherals the image runs on.
type Board struct {
	RxLink hal.Transport
	RxCE   hal.Line
	TxLink hal.Transport
	TxCE   hal.Line
	LED    hal.Line
}

// RadioTask brings a chip up and then runs its loop.
type RadioTask struct {
	Device *nrf24.Device
	Setup  nrf24.Setup
	Loop   framework.Runnable
}

// Run implements framework.Runnable. Bring-up keeps the core.
func (t *RadioTask) Run(ctx context.Context) error {
	if err := t.Device.BringUp(ctx, nil, t.Setup); err != nil {
		return err
	}
	return t.Loop.Run(ctx)
}

// System is the assembled image.
type System struct {
	CoreA *framework.Core
	CoreB *framework.Core

	Signals     *indicator.Channel
	Indicator   *indicator.Task
	Receiver    *nrf24.ReceiveLoop
	Transmitter *nrf24.TransmitLoop
	RxDevice    *nrf24.Device
	TxDevice    *nrf24.Device
	RxSetup     nrf24.Setup
	TxSetup     nrf24.Setup
}

// New builds the tasks of both cores on board.
func New(board Board, conf *Config) *System {
	if conf == nil {
		conf = NewConfig()
	}
	s := &System{
		CoreA:   framework.NewCore("core0"),
		CoreB:   framework.NewCore("core1"),
		Signals: indicator.NewChannel(),
	}
	s.RxDevice = nrf24.NewDevice("rx", hal.Guard(board.RxLink), board.RxCE)
	s.TxDevice = nrf24.NewDevice("tx", hal.Guard(board.TxLink), board.TxCE)

	s.Receiver = nrf24.NewReceiveLoop(s.RxDevice, s.Signals.Sender(s.CoreA), s.CoreA)
	s.Receiver.PollInterval = conf.PollInterval
	s.Receiver.Blink = conf.Blink()

	s.Transmitter = nrf24.NewTransmitLoop(s.TxDevice, s.Signals.Sender(s.CoreB), s.CoreB)
	s.Transmitter.Message = []byte(conf.Message)
	s.Transmitter.ConfirmDelivery = conf.ConfirmDelivery
	s.Transmitter.Blink = conf.Blink()

	s.Indicator = &indicator.Task{Pin: board.LED, Signals: s.Signals.Receiver(s.CoreB)}

	s.RxSetup = nrf24.DefaultSetup(nrf24.Receiver)
	s.RxSetup.Retry = conf.RetryPolicy()
	s.TxSetup = nrf24.DefaultSetup(nrf24.Transmitter)
	s.TxSetup.Retry = conf.RetryPolicy()

	s.CoreA.Spawn("receiver", &RadioTask{Device: s.RxDevice, Setup: s.RxSetup, Loop: s.Receiver})
	s.CoreB.
		Spawn("indicator", s.Indicator).
		Spawn("transmitter", &RadioTask{Device: s.TxDevice, Setup: s.TxSetup, Loop: s.Transmitter})
	return s
}

// SetReporter sends the radio events of both loops to r.
func (s *System) SetReporter(r nrf24.Reporter) {
	s.Receiver.Reporter = r
	s.Transmitter.Reporter = r
}

// Run runs both cores until ctx is done. The cores are independent: a
// failed task on one core leaves the other core running.
func (s *System) Run(ctx context.Context) error {
	return framework.NewRunnerWith(ctx).Go(s.CoreA, s.CoreB).Wait()
}

package nrf24

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// DefaultMessage is the text carried by every transmitted payload.
var DefaultMessage = []byte("Hello, world!")

// Transmit timings.
const (
	DefaultPulse           = 10 * time.Microsecond
	DefaultDeliveryPoll    = 100 * time.Microsecond
	DefaultDeliveryTimeout = 2 * time.Millisecond
)

// TransmitLoop sends a fixed payload, pulses CE and blinks, forever.
type TransmitLoop struct {
	Device   *Device
	Signals  SignalSender
	Waiter   Waiter
	Reporter Reporter
	Blink    Blink
	Message  []byte
	Pulse    time.Duration

	// ConfirmDelivery polls STATUS after each pulse for TX_DS or MAX_RT.
	ConfirmDelivery bool
	DeliveryPoll    time.Duration
	DeliveryTimeout time.Duration
}

// NewTransmitLoop creates a TransmitLoop with the default message and timings.
func NewTransmitLoop(d *Device, s SignalSender, w Waiter) *TransmitLoop {
	return &TransmitLoop{
		Device:          d,
		Signals:         s,
		Waiter:          w,
		Blink:           DefaultBlink,
		Message:         DefaultMessage,
		Pulse:           DefaultPulse,
		DeliveryPoll:    DefaultDeliveryPoll,
		DeliveryTimeout: DefaultDeliveryTimeout,
	}
}

// Send transmits one payload and runs the blink sequence.
func (t *TransmitLoop) Send(ctx context.Context) error {
	w := waiterOrSleep(t.Waiter)
	p := PayloadFrom(t.Message)
	if _, err := t.Device.WritePayload(p); err != nil {
		return err
	}
	if err := t.Device.SetCE(true); err != nil {
		return err
	}
	if err := w.Sleep(ctx, t.Pulse); err != nil {
		return err
	}
	if err := t.Device.SetCE(false); err != nil {
		return err
	}
	delivery := Unchecked
	if t.ConfirmDelivery {
		var err error
		if delivery, err = t.confirm(ctx, w); err != nil {
			return err
		}
	}
	if t.Reporter != nil {
		t.Reporter.Report(Event{
			Kind:     EventSent,
			Device:   t.Device.Name,
			Role:     Transmitter,
			Payload:  p,
			Status:   t.Device.Status(),
			Delivery: delivery,
			Time:     time.Now(),
		})
	}
	return t.Blink.Run(ctx, w, t.Signals)
}

func (t *TransmitLoop) confirm(ctx context.Context, w Waiter) (Delivery, error) {
	deadline := time.Now().Add(t.DeliveryTimeout)
	for {
		_, stat, err := t.Device.ReadReg(STATUS)
		if err != nil {
			return Unconfirmed, err
		}
		switch {
		case stat.TxDS() == 1:
			_, err = t.Device.ClearStatus(Status(0).WithTxDS(1))
			return Delivered, err
		case stat.MaxRT() == 1:
			glog.Warningf("%s: max retransmits reached, payload dropped", t.Device.Name)
			if _, err = t.Device.ClearStatus(Status(0).WithMaxRT(1)); err != nil {
				return Lost, err
			}
			_, err = t.Device.Flush(FLUSH_TX)
			return Lost, err
		}
		if !time.Now().Before(deadline) {
			glog.Warningf("%s: no TX_DS or MAX_RT within %v", t.Device.Name, t.DeliveryTimeout)
			return Unconfirmed, nil
		}
		if err = w.Sleep(ctx, t.DeliveryPoll); err != nil {
			return Unconfirmed, err
		}
	}
}

// Run sends until a link failure or ctx is done.
func (t *TransmitLoop) Run(ctx context.Context) error {
	for {
		if err := t.Send(ctx); err != nil {
			return err
		}
	}
}

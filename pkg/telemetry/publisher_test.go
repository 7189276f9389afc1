package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/nrfduo/pkg/indicator"
	"github.com/robotalks/nrfduo/pkg/nrf24"
	pb "github.com/robotalks/nrfduo/pkg/proto/nrfduo/v1"
)

type chanSink struct {
	ch  chan []byte
	err error
}

func (s *chanSink) WritePacket(pkt []byte) error {
	s.ch <- pkt
	return s.err
}

func TestEncodeEvent(t *testing.T) {
	now := time.Unix(1700000000, 5)
	ev := EventFrom(nrf24.Event{
		Kind:     nrf24.EventSent,
		Device:   "tx",
		Role:     nrf24.Transmitter,
		Payload:  nrf24.PayloadFrom(nrf24.DefaultMessage),
		Status:   0x2e,
		Delivery: nrf24.Delivered,
		Time:     now,
	})
	data, err := Encode(ev)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, pb.EventKind_EVENT_SENT, got.Kind)
	require.Equal(t, pb.Role_TRANSMITTER, got.Role)
	require.Equal(t, pb.Delivery_DELIVERED, got.Delivery)
	require.Equal(t, "Hello, world!", string(got.Payload))
	require.Equal(t, uint32(0x2e), got.Status)
	require.Equal(t, now.UnixNano(), got.TimeUnixNano)

	_, err = Decode([]byte{0xff})
	require.Error(t, err)
}

func TestPublisherFansOut(t *testing.T) {
	a, b := &chanSink{ch: make(chan []byte, 4)}, &chanSink{ch: make(chan []byte, 4)}
	p := NewPublisher("dev", 4).AddSink(a).AddSink(b)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Run(ctx)
	}()

	p.Report(nrf24.Event{Kind: nrf24.EventReceived, Device: "rx", Role: nrf24.Receiver})
	p.Indicate(indicator.On)
	for _, s := range []*chanSink{a, b} {
		ev, err := Decode(<-s.ch)
		require.NoError(t, err)
		require.Equal(t, pb.EventKind_EVENT_RECEIVED, ev.Kind)
		require.Equal(t, "dev", ev.DeviceId)
		require.Equal(t, uint64(1), ev.Seq)
		ev, err = Decode(<-s.ch)
		require.NoError(t, err)
		require.Equal(t, pb.EventKind_EVENT_INDICATOR, ev.Kind)
		require.True(t, ev.Indicator)
		require.Equal(t, uint64(2), ev.Seq)
	}
	cancel()
	wg.Wait()
	require.Equal(t, uint64(2), p.Stats().Published)
}

func TestPublisherDropsWhenFull(t *testing.T) {
	p := NewPublisher("dev", 2)
	for i := 0; i < 5; i++ {
		p.Indicate(indicator.Off)
	}
	require.Equal(t, uint64(3), p.Stats().Dropped)
}

func TestPublisherCountsSinkErrors(t *testing.T) {
	s := &chanSink{ch: make(chan []byte, 1), err: errors.New("down")}
	p := NewPublisher("dev", 1).AddSink(s)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	p.Indicate(indicator.On)
	<-s.ch
	cancel()
	<-done
	require.Equal(t, uint64(1), p.Stats().Failed)
	require.Equal(t, uint64(0), p.Stats().Published)
}

func TestConfigID(t *testing.T) {
	conf := NewConfig()
	require.False(t, conf.Enabled())
	conf.DeviceID = "bench"
	require.Equal(t, "bench", conf.ID())
	conf.EventsFile = "events.bin"
	require.True(t, conf.Enabled())
}

package nrf24

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/nrfduo/pkg/indicator"
)

func newReceiveFixture(status byte) (*fixture, *ReceiveLoop) {
	f := newFixture()
	f.link.respond = func(req []byte) ([]byte, error) {
		resp := make([]byte, len(req))
		resp[0] = status
		switch req[0] {
		case R_REGISTER.With(STATUS):
			resp[1] = status
		case byte(R_RX_PAYLOAD):
			copy(resp[1:], "Hello, world!")
		}
		return resp, nil
	}
	r := NewReceiveLoop(f.device, fakeSender{f.recorder}, fakeWaiter{f.recorder})
	return f, r
}

func TestReceiveDataReady(t *testing.T) {
	f, r := newReceiveFixture(0x40)
	var events []Event
	r.Reporter = ReportFunc(func(e Event) { events = append(events, e) })
	ctx := context.Background()

	require.Equal(t, Polling, r.State())
	require.NoError(t, r.Step(ctx))
	require.Equal(t, Draining, r.State())
	require.NoError(t, r.Step(ctx))
	require.Equal(t, Signaling, r.State())
	require.NoError(t, r.Step(ctx))
	require.Equal(t, Polling, r.State())

	read := make([]byte, 33)
	read[0] = 0x61
	for i := 1; i < len(read); i++ {
		read[i] = 0xff
	}
	require.Equal(t, [][]byte{
		{0x07, 0x00},
		read,
		{0x27, 0x40},
	}, f.frames)
	require.Equal(t, []indicator.Signal{indicator.On, indicator.Off}, f.sent)
	require.Equal(t, []string{
		"xfer", "xfer", "xfer",
		"signal on", "wait 100ms", "signal off", "wait 100ms", "wait 100ms",
	}, f.events)

	require.Len(t, events, 1)
	require.Equal(t, EventReceived, events[0].Kind)
	require.Equal(t, Receiver, events[0].Role)
	require.Equal(t, "Hello, world!", string(events[0].Payload.Trimmed()))
	require.Equal(t, "Hello, world!", string(r.Last().Trimmed()))
}

func TestReceiveAcksWithPayloadStatus(t *testing.T) {
	f, r := newReceiveFixture(0x41)
	ctx := context.Background()
	require.NoError(t, r.Step(ctx))
	require.NoError(t, r.Step(ctx))
	require.Equal(t, []byte{0x27, 0x41}, f.frames[2])
}

func TestReceiveIdle(t *testing.T) {
	f, r := newReceiveFixture(0x0e)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Step(ctx))
		require.Equal(t, Polling, r.State())
	}
	require.Len(t, f.frames, 3)
	require.Empty(t, f.waits)
	require.Empty(t, f.sent)

	f.reset()
	r.PollInterval = time.Millisecond
	require.NoError(t, r.Step(ctx))
	require.Equal(t, []time.Duration{time.Millisecond}, f.waits)
}

func TestReceiveRunStops(t *testing.T) {
	_, r := newReceiveFixture(0x0e)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, r.Run(ctx))

	f, r := newReceiveFixture(0x40)
	f.link.respond = func(req []byte) ([]byte, error) {
		return nil, errLink
	}
	err := r.Run(context.Background())
	require.True(t, IsTransport(err))
	require.Equal(t, Polling, r.State())
}

package nrf24

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func bringUpFrames(rx bool) [][]byte {
	enRx, cfg, addrCmd := byte(0), byte(0x0e), byte(0x30)
	if rx {
		enRx, cfg, addrCmd = 1, 0x0f, 0x2a
	}
	return [][]byte{
		{0x24, 0x5f},
		{0x26, 0x06},
		{0x3d, 0x00},
		{0x3c, 0x00},
		{0x21, 0x00},
		{0x22, enRx},
		{0x31, 32},
		{0x23, 0x03},
		{0x25, 76},
		{0x27, 0x70},
		{0xe2, 0xff},
		{0xe1, 0xff},
		{0x20, cfg},
		{addrCmd, 1, 0, 0, 0, 0},
	}
}

func TestBringUpSequence(t *testing.T) {
	for _, role := range []Role{Transmitter, Receiver} {
		t.Run(role.String(), func(t *testing.T) {
			f := newFixture()
			err := f.device.BringUp(context.Background(), fakeWaiter{f.recorder}, DefaultSetup(role))
			require.NoError(t, err)
			require.Equal(t, bringUpFrames(role == Receiver), f.frames)
			require.Equal(t, []time.Duration{Settle, Settle}, f.waits)

			events := []string{"ce=0", "wait 5ms"}
			for i := 0; i < 13; i++ {
				events = append(events, "xfer")
			}
			events = append(events, "wait 5ms", "xfer")
			if role == Receiver {
				events = append(events, "ce=1")
			}
			require.Equal(t, events, f.events)
		})
	}
}

func TestBringUpConfig(t *testing.T) {
	rx, tx := DefaultSetup(Receiver), DefaultSetup(Transmitter)
	require.Equal(t, byte(1), rx.Config().PrimRx())
	require.Equal(t, byte(0), tx.Config().PrimRx())
	for _, rv := range rx.Plan() {
		if rv.Reg == EN_RXADDR {
			require.Equal(t, byte(1), Pipes(rv.Val).Pipe(0))
		}
	}
	for _, rv := range tx.Plan() {
		if rv.Reg == EN_RXADDR {
			require.Equal(t, byte(0), Pipes(rv.Val).Pipe(0))
		}
	}
	require.Equal(t, RX_ADDR_P0, rx.PipeAddrReg())
	require.Equal(t, TX_ADDR, tx.PipeAddrReg())
}

func TestBringUpRetriesWrites(t *testing.T) {
	f := newFixture()
	failures := 2
	f.link.respond = func(req []byte) ([]byte, error) {
		if req[0] == 0x26 && failures > 0 {
			failures--
			return nil, errLink
		}
		return make([]byte, len(req)), nil
	}
	s := DefaultSetup(Transmitter)
	s.Retry = RetryPolicy{Retries: 3, InitialInterval: time.Microsecond, MaxInterval: time.Microsecond}
	require.NoError(t, f.device.BringUp(context.Background(), fakeWaiter{f.recorder}, s))
	require.Len(t, f.frames, len(bringUpFrames(false))+2)
	require.Equal(t, []byte{0x26, 0x06}, f.frames[1])
	require.Equal(t, []byte{0x26, 0x06}, f.frames[3])
}

func TestBringUpAbortsOnPersistentFailure(t *testing.T) {
	f := newFixture()
	f.link.respond = func(req []byte) ([]byte, error) {
		if req[0] == 0xe2 {
			return nil, errLink
		}
		return make([]byte, len(req)), nil
	}
	s := DefaultSetup(Receiver)
	s.Retry = RetryPolicy{Retries: 2, InitialInterval: time.Microsecond, MaxInterval: time.Microsecond}
	err := f.device.BringUp(context.Background(), fakeWaiter{f.recorder}, s)
	require.True(t, errors.Is(err, errLink))
	require.Len(t, f.frames, 10+3)
	require.NotContains(t, f.events, "ce=1")
}

func TestBringUpWithoutRetry(t *testing.T) {
	f := newFixture()
	f.link.respond = func(req []byte) ([]byte, error) {
		return nil, errLink
	}
	err := f.device.BringUp(context.Background(), fakeWaiter{f.recorder}, DefaultSetup(Transmitter))
	require.True(t, IsTransport(err))
	require.Len(t, f.frames, 1)
}

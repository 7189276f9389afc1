package framework

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCoreTasksNeverOverlap(t *testing.T) {
	var active, peak int32
	enter := func() {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
	}
	leave := func() { atomic.AddInt32(&active, -1) }

	core := NewCore("a")
	for i := 0; i < 4; i++ {
		core.Spawn("worker", RunFunc(func(ctx context.Context) error {
			for n := 0; n < 20; n++ {
				enter()
				time.Sleep(100 * time.Microsecond)
				leave()
				if err := core.Sleep(ctx, time.Microsecond); err != nil {
					return err
				}
			}
			return nil
		}))
	}
	require.NoError(t, core.Run(context.Background()))
	require.Equal(t, int32(1), peak)
}

func TestCoreSuspendInterleaves(t *testing.T) {
	core := NewCore("b")
	ch := make(chan int)
	var got []int
	var lock sync.Mutex
	core.Spawn("producer", RunFunc(func(ctx context.Context) error {
		for i := 0; i < 3; i++ {
			err := core.Suspend(ctx, func(ctx context.Context) error {
				ch <- i
				return nil
			})
			if err != nil {
				return err
			}
		}
		close(ch)
		return nil
	}))
	core.Spawn("consumer", RunFunc(func(ctx context.Context) error {
		for {
			var v int
			var ok bool
			core.Suspend(ctx, func(context.Context) error {
				v, ok = <-ch
				return nil
			})
			if !ok {
				return nil
			}
			lock.Lock()
			got = append(got, v)
			lock.Unlock()
		}
	}))
	require.NoError(t, core.Run(context.Background()))
	require.Equal(t, []int{0, 1, 2}, got)
}

func TestCoreAggregatesTaskErrors(t *testing.T) {
	errBoom := errors.New("boom")
	core := NewCore("c")
	core.Spawn("fail", RunFunc(func(context.Context) error { return errBoom }))
	core.Spawn("ok", RunFunc(func(ctx context.Context) error {
		return core.Sleep(ctx, time.Millisecond)
	}))
	err := core.Run(context.Background())
	require.Error(t, err)
	agg, ok := err.(*AggregatedError)
	require.True(t, ok)
	require.Equal(t, []error{errBoom}, agg.Errors)
}

func TestCoreSleepCanceled(t *testing.T) {
	core := NewCore("d")
	ctx, cancel := context.WithCancel(context.Background())
	core.Spawn("sleeper", RunFunc(func(ctx context.Context) error {
		return core.Sleep(ctx, time.Hour)
	}))
	time.AfterFunc(10*time.Millisecond, cancel)
	require.NoError(t, core.Run(ctx))
}

func TestSuspendOutsideCore(t *testing.T) {
	var called bool
	err := Suspend(context.Background(), nil, func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
	require.NoError(t, NewCore("e").Sleep(context.Background(), time.Microsecond))
}

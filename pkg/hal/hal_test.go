package hal

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuardSerializesExchanges(t *testing.T) {
	var active, peak int
	var lock sync.Mutex
	inner := ExchangeFunc(func(req []byte) ([]byte, error) {
		lock.Lock()
		active++
		if active > peak {
			peak = active
		}
		lock.Unlock()
		resp := append([]byte(nil), req...)
		lock.Lock()
		active--
		lock.Unlock()
		return resp, nil
	})
	g := Guard(inner)
	require.True(t, g == Guard(g))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				_, err := g.Exchange([]byte{0xff, 0})
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, peak)
}

func TestGuardChecksLength(t *testing.T) {
	g := Guard(ExchangeFunc(func(req []byte) ([]byte, error) {
		return req[:1], nil
	}))
	_, err := g.Exchange([]byte{1, 2})
	var lerr *LengthError
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, 2, lerr.Want)
	require.Equal(t, 1, lerr.Got)
}

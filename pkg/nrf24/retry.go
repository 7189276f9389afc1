package nrf24

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/glog"
)

// RetryPolicy bounds retries of a failed register write. The zero value
// performs a single attempt.
type RetryPolicy struct {
	Retries         uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries a write three times, starting at 1ms.
var DefaultRetryPolicy = RetryPolicy{
	Retries:         3,
	InitialInterval: time.Millisecond,
	MaxInterval:     20 * time.Millisecond,
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	if p.Retries == 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.Retries), ctx)
}

// Do runs op until it succeeds, the retries are used up or ctx is done.
// Only link failures are retried.
func (p RetryPolicy) Do(ctx context.Context, name string, op func() error) error {
	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && !IsTransport(err) {
			return backoff.Permanent(err)
		}
		return err
	}, p.backOff(ctx), func(err error, next time.Duration) {
		glog.Warningf("%s: %v, retry in %v", name, err, next)
	})
}

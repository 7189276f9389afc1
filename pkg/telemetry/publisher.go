// Package telemetry streams radio activity to observers outside the image.
package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/nrfduo/pkg/framework"
	"github.com/robotalks/nrfduo/pkg/indicator"
	"github.com/robotalks/nrfduo/pkg/nrf24"
	pb "github.com/robotalks/nrfduo/pkg/proto/nrfduo/v1"
)

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// Stats counts publisher activity.
type Stats struct {
	Published uint64
	Dropped   uint64
	Failed    uint64
}

// Publisher fans events out to sinks. Reporting never blocks the caller:
// events beyond the queue capacity are dropped and counted.
type Publisher struct {
	// 64-bit counters first for atomic alignment.
	seq   uint64
	stats Stats

	DeviceID string

	lock  sync.RWMutex
	sinks []PacketWriter
	queue chan *pb.Event
}

// NewPublisher creates a Publisher buffering up to size events.
func NewPublisher(deviceID string, size int) *Publisher {
	if size <= 0 {
		size = 1
	}
	return &Publisher{DeviceID: deviceID, queue: make(chan *pb.Event, size)}
}

// AddSink adds a sink.
func (p *Publisher) AddSink(s PacketWriter) *Publisher {
	p.lock.Lock()
	p.sinks = append(p.sinks, s)
	p.lock.Unlock()
	return p
}

// Report implements nrf24.Reporter.
func (p *Publisher) Report(ev nrf24.Event) {
	p.Publish(EventFrom(ev))
}

// Indicate records an applied indicator signal.
func (p *Publisher) Indicate(sig indicator.Signal) {
	ev := IndicatorEvent(sig)
	ev.TimeUnixNano = time.Now().UnixNano()
	p.Publish(ev)
}

// Publish enqueues ev.
func (p *Publisher) Publish(ev *pb.Event) {
	ev.DeviceId = p.DeviceID
	ev.Seq = atomic.AddUint64(&p.seq, 1)
	select {
	case p.queue <- ev:
	default:
		if n := atomic.AddUint64(&p.stats.Dropped, 1); n == 1 || n%100 == 0 {
			glog.Warningf("telemetry queue full, %d events dropped", n)
		}
	}
}

// Stats returns the counters.
func (p *Publisher) Stats() Stats {
	return Stats{
		Published: atomic.LoadUint64(&p.stats.Published),
		Dropped:   atomic.LoadUint64(&p.stats.Dropped),
		Failed:    atomic.LoadUint64(&p.stats.Failed),
	}
}

// Run implements framework.Runnable.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-p.queue:
			if err := p.write(ev); err != nil {
				atomic.AddUint64(&p.stats.Failed, 1)
				glog.Warningf("telemetry: %v", err)
				continue
			}
			atomic.AddUint64(&p.stats.Published, 1)
		}
	}
}

func (p *Publisher) write(ev *pb.Event) error {
	data, err := Encode(ev)
	if err != nil {
		return err
	}
	if glog.V(3) {
		glog.Infof("event %s", ev)
	}
	var errs framework.AggregatedError
	p.lock.RLock()
	defer p.lock.RUnlock()
	for _, s := range p.sinks {
		errs.Add(s.WritePacket(data))
	}
	return errs.Aggregate()
}

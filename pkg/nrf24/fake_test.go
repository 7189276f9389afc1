package nrf24

import (
	"context"
	"errors"
	"time"

	"github.com/robotalks/nrfduo/pkg/indicator"
)

var errLink = errors.New("link down")

// recorder collects every externally visible action of a device in order.
type recorder struct {
	events []string
	frames [][]byte
	waits  []time.Duration
	sent   []indicator.Signal
}

func (r *recorder) log(e string) {
	r.events = append(r.events, e)
}

// fakeLink records request frames and answers them with respond, or with
// the current status followed by zeros.
type fakeLink struct {
	*recorder
	status  byte
	respond func(req []byte) ([]byte, error)
}

func (l *fakeLink) Exchange(req []byte) ([]byte, error) {
	l.frames = append(l.frames, append([]byte(nil), req...))
	l.log("xfer")
	if l.respond != nil {
		return l.respond(req)
	}
	resp := make([]byte, len(req))
	resp[0] = l.status
	return resp, nil
}

type fakeCE struct {
	*recorder
}

func (c fakeCE) High() error { c.log("ce=1"); return nil }
func (c fakeCE) Low() error  { c.log("ce=0"); return nil }

type fakeWaiter struct {
	*recorder
}

func (w fakeWaiter) Sleep(ctx context.Context, d time.Duration) error {
	w.waits = append(w.waits, d)
	w.log("wait " + d.String())
	return ctx.Err()
}

type fakeSender struct {
	*recorder
}

func (s fakeSender) Send(ctx context.Context, sig indicator.Signal) error {
	s.sent = append(s.sent, sig)
	s.log("signal " + sig.String())
	return nil
}

type fixture struct {
	*recorder
	link   *fakeLink
	device *Device
}

func newFixture() *fixture {
	r := &recorder{}
	link := &fakeLink{recorder: r}
	return &fixture{
		recorder: r,
		link:     link,
		device:   NewDevice("test", link, fakeCE{r}),
	}
}

func (f *fixture) reset() {
	f.events, f.frames, f.waits, f.sent = nil, nil, nil, nil
}

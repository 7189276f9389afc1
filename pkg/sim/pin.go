package sim

import (
	"sync"
)

// Pin is a recording output pin.
type Pin struct {
	Name string
	// OnChange, if set, is called with every level written.
	OnChange func(high bool)

	lock    sync.Mutex
	level   bool
	history []bool
}

// NewPin creates a low pin.
func NewPin(name string) *Pin {
	return &Pin{Name: name}
}

// High implements hal.Line.
func (p *Pin) High() error {
	p.set(true)
	return nil
}

// Low implements hal.Line.
func (p *Pin) Low() error {
	p.set(false)
	return nil
}

func (p *Pin) set(v bool) {
	p.lock.Lock()
	p.level = v
	p.history = append(p.history, v)
	fn := p.OnChange
	p.lock.Unlock()
	if fn != nil {
		fn(v)
	}
}

// Level returns the last level written.
func (p *Pin) Level() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.level
}

// History returns every level written, oldest first.
func (p *Pin) History() []bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]bool(nil), p.history...)
}

func (p *Pin) String() string {
	return p.Name
}

package firmware

import (
	"flag"
	"time"

	"github.com/robotalks/nrfduo/pkg/nrf24"
)

// Config defines the behavior of the radio loops.
type Config struct {
	PollInterval    time.Duration
	ConfirmDelivery bool
	Retries         uint
	BlinkPeriod     time.Duration
	Message         string
}

var defaultConfig = Config{
	BlinkPeriod: 100 * time.Millisecond,
	Message:     string(nrf24.DefaultMessage),
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.PollInterval, "poll-interval", defaultConfig.PollInterval, "Wait between idle receiver polls, 0 for busy polling.")
	flag.BoolVar(&defaultConfig.ConfirmDelivery, "confirm-delivery", defaultConfig.ConfirmDelivery, "Check TX_DS/MAX_RT after each transmission.")
	flag.UintVar(&defaultConfig.Retries, "retries", defaultConfig.Retries, "Retries of a failed register write during bring-up.")
	flag.DurationVar(&defaultConfig.BlinkPeriod, "blink", defaultConfig.BlinkPeriod, "Duration of each indicator blink phase.")
	flag.StringVar(&defaultConfig.Message, "message", defaultConfig.Message, "Text sent by the transmitter, up to 32 bytes.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// RetryPolicy returns the bring-up retry policy.
func (c *Config) RetryPolicy() nrf24.RetryPolicy {
	if c.Retries == 0 {
		return nrf24.RetryPolicy{}
	}
	p := nrf24.DefaultRetryPolicy
	p.Retries = uint64(c.Retries)
	return p
}

// Blink returns the indicator sequence.
func (c *Config) Blink() nrf24.Blink {
	return nrf24.Blink{Hold: c.BlinkPeriod, Gap: c.BlinkPeriod, Idle: c.BlinkPeriod}
}

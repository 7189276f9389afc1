// Package board binds the radio image to real peripherals.
package board

import (
	"flag"
	"os"
	"strconv"
)

// Link is the wiring of one radio module.
type Link struct {
	// Port is the periph.io SPI port name, e.g. "SPI0.0".
	Port string `json:"port"`
	SCK  int    `json:"sck"`
	MOSI int    `json:"mosi"`
	MISO int    `json:"miso"`
	CS   int    `json:"cs"`
	CE   int    `json:"ce"`
	// CEName overrides the periph.io name of the CE pin.
	CEName string `json:"ce_name,omitempty"`
}

// CEPin returns the periph.io name of the CE pin.
func (l Link) CEPin() string {
	if l.CEName != "" {
		return l.CEName
	}
	return PinName(l.CE)
}

// Config is the pin table of the board.
type Config struct {
	Receiver    Link   `json:"receiver"`
	Transmitter Link   `json:"transmitter"`
	LED         int    `json:"led"`
	LEDName     string `json:"led_name,omitempty"`
	SPIHz       int64  `json:"spi_hz"`

	// File is a JSON5 file overriding the table.
	File string `json:"-"`
}

// LEDPin returns the periph.io name of the LED pin.
func (c *Config) LEDPin() string {
	if c.LEDName != "" {
		return c.LEDName
	}
	return PinName(c.LED)
}

// PinName returns the conventional GPIO name of pin n.
func PinName(n int) string {
	return "GPIO" + strconv.Itoa(n)
}

// DefaultSPIHz is the SPI clock of both links.
const DefaultSPIHz = 10000000

var defaultConfig = Config{
	Receiver: Link{
		Port: "SPI0.0",
		SCK:  18,
		MOSI: 19,
		MISO: 20,
		CS:   21,
		CE:   22,
	},
	Transmitter: Link{
		Port: "SPI1.0",
		SCK:  10,
		MOSI: 11,
		MISO: 12,
		CS:   13,
		CE:   9,
	},
	LED:   25,
	SPIHz: DefaultSPIHz,
}

func init() {
	if val := os.Getenv("NRFDUO_BOARD_CONFIG"); val != "" {
		defaultConfig.File = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.File, "board-config", defaultConfig.File, "JSON5 file with the pin table.")
	flag.StringVar(&defaultConfig.Receiver.Port, "rx-spi", defaultConfig.Receiver.Port, "SPI port of the receiver.")
	flag.StringVar(&defaultConfig.Transmitter.Port, "tx-spi", defaultConfig.Transmitter.Port, "SPI port of the transmitter.")
	flag.Int64Var(&defaultConfig.SPIHz, "spi-hz", defaultConfig.SPIHz, "SPI clock in Hz.")
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

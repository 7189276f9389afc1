package telemetry

import (
	"flag"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// Config defines where telemetry goes.
type Config struct {
	MQTTURL       string
	WebsocketAddr string
	EventsFile    string
	DeviceID      string
	QueueSize     int
}

var defaultConfig = Config{
	QueueSize: 64,
}

func init() {
	if val := os.Getenv("NRFDUO_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL events are published to, e.g. mqtt://host:1883/nrfduo/.")
	flag.StringVar(&defaultConfig.WebsocketAddr, "ws", defaultConfig.WebsocketAddr, "Listen address of the websocket event stream.")
	flag.StringVar(&defaultConfig.EventsFile, "events-file", defaultConfig.EventsFile, "File events are appended to.")
	flag.StringVar(&defaultConfig.DeviceID, "device-id", defaultConfig.DeviceID, "Device ID in events, defaults to the machine ID.")
	flag.IntVar(&defaultConfig.QueueSize, "events-queue", defaultConfig.QueueSize, "Events buffered before dropping.")
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

// Enabled reports whether any sink is configured.
func (c *Config) Enabled() bool {
	return c.MQTTURL != "" || c.WebsocketAddr != "" || c.EventsFile != ""
}

// ID returns DeviceID, or the machine ID if unset.
func (c *Config) ID() string {
	if c.DeviceID != "" {
		return c.DeviceID
	}
	return MachineID()
}

// MachineID retrieves the ID of this machine, scoped to this application.
func MachineID() string {
	id, err := machineid.ProtectedID("nrfduo")
	if err != nil {
		glog.Warningf("machine id: %v", err)
		return "nrfduo"
	}
	return id[:12]
}

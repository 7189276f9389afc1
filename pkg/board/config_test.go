//go:build !tinygo

package board

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPinTable(t *testing.T) {
	conf := NewConfig()
	require.Equal(t, "SPI0.0", conf.Receiver.Port)
	require.Equal(t, "GPIO22", conf.Receiver.CEPin())
	require.Equal(t, "GPIO9", conf.Transmitter.CEPin())
	require.Equal(t, "GPIO25", conf.LEDPin())
	require.Equal(t, int64(DefaultSPIHz), conf.SPIHz)
}

func TestLoadJSON5(t *testing.T) {
	conf := NewConfig()
	err := conf.Load([]byte(`{
		// wired to a Raspberry Pi header
		receiver: {port: "/dev/spidev0.0", ce: 25, ce_name: "GPIO25",},
		led_name: "GPIO4",
	}`))
	require.NoError(t, err)
	require.Equal(t, "/dev/spidev0.0", conf.Receiver.Port)
	require.Equal(t, "GPIO25", conf.Receiver.CEPin())
	require.Equal(t, 18, conf.Receiver.SCK)
	require.Equal(t, "SPI1.0", conf.Transmitter.Port)
	require.Equal(t, "GPIO4", conf.LEDPin())

	require.Error(t, conf.Load([]byte(`{receiver: `)))
}

func TestLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "board")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	conf := NewConfig()
	require.NoError(t, conf.LoadFile())

	conf.File = filepath.Join(dir, "pins.json5")
	require.Error(t, conf.LoadFile())
	require.NoError(t, ioutil.WriteFile(conf.File, []byte(`{spi_hz: 1000000}`), 0644))
	require.NoError(t, conf.LoadFile())
	require.Equal(t, int64(1000000), conf.SPIHz)
	require.Equal(t, 25, conf.LED)
}

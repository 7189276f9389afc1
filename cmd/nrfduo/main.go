package main

import (
	"context"
	"flag"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/nrfduo/pkg/board"
	"github.com/robotalks/nrfduo/pkg/cli/sh"
	"github.com/robotalks/nrfduo/pkg/firmware"
	"github.com/robotalks/nrfduo/pkg/framework"
	"github.com/robotalks/nrfduo/pkg/nrf24"
	"github.com/robotalks/nrfduo/pkg/telemetry"
	"github.com/robotalks/nrfduo/pkg/telemetry/mqtt"
	"github.com/robotalks/nrfduo/pkg/telemetry/stream"
	"github.com/robotalks/nrfduo/pkg/telemetry/websocket"
)

var (
	boardKind = "periph"
	withShell bool
)

func init() {
	flag.StringVar(&boardKind, "board", boardKind, "Board to run on: periph or sim.")
	flag.BoolVar(&withShell, "shell", withShell, "Start the register inspector alongside the radios.")
	firmware.SetupFlags()
	board.SetupFlags()
	telemetry.SetupFlags()
	sh.SetupFlags()
}

type host struct {
	board   firmware.Board
	stats   func() map[string]interface{}
	closers []io.Closer
}

func openBoard() (*host, error) {
	switch boardKind {
	case "sim":
		s := board.NewSim()
		return &host{board: s.Board(), stats: s.Stats}, nil
	case "periph":
		conf := board.NewConfig()
		if err := conf.LoadFile(); err != nil {
			return nil, err
		}
		b, closer, err := board.Open(conf)
		if err != nil {
			return nil, err
		}
		return &host{board: b, closers: []io.Closer{closer}}, nil
	}
	glog.Exitf("unknown board %q", boardKind)
	return nil, nil
}

func (h *host) Close() {
	for _, c := range h.closers {
		if err := c.Close(); err != nil {
			glog.Warningf("close: %v", err)
		}
	}
}

func publisher(conf *telemetry.Config, h *host) (*telemetry.Publisher, []framework.Runnable, error) {
	pub := telemetry.NewPublisher(conf.ID(), conf.QueueSize)
	var runs []framework.Runnable
	if conf.MQTTURL != "" {
		opts, err := mqtt.ParseURL(conf.MQTTURL)
		if err != nil {
			return nil, nil, err
		}
		w := mqtt.NewWriter(mqtt.NewQueue(opts.WithPresence(pub.DeviceID)), pub.DeviceID)
		pub.AddSink(w)
		runs = append(runs, framework.NamedRun("mqtt", w))
	}
	if conf.WebsocketAddr != "" {
		hub := websocket.NewHub(conf.WebsocketAddr)
		pub.AddSink(hub)
		runs = append(runs, framework.NamedRun("websocket", hub))
	}
	if conf.EventsFile != "" {
		f, err := stream.Append(conf.EventsFile)
		if err != nil {
			return nil, nil, err
		}
		h.closers = append(h.closers, f)
		pub.AddSink(f)
	}
	return pub, append(runs, framework.NamedRun("telemetry", pub)), nil
}

func main() {
	flag.Parse()
	defer glog.Flush()

	h, err := openBoard()
	if err != nil {
		glog.Exit(err)
	}
	defer h.Close()

	sys := firmware.New(h.board, firmware.NewConfig())

	runner := framework.NewRunner().HandleSignals()
	if conf := telemetry.NewConfig(); conf.Enabled() {
		pub, runs, err := publisher(conf, h)
		if err != nil {
			glog.Exit(err)
		}
		sys.SetReporter(pub)
		sys.Indicator.Observer = pub.Indicate
		runner.Go(runs...)
		stats := h.stats
		h.stats = func() map[string]interface{} {
			m := map[string]interface{}{"telemetry": pub.Stats()}
			if stats != nil {
				for k, v := range stats() {
					m[k] = v
				}
			}
			return m
		}
	}
	runner.Go(framework.NamedRun("firmware", sys))

	if withShell {
		s := sh.New(&sh.Target{
			Devices: []*nrf24.Device{sys.RxDevice, sys.TxDevice},
			Setups:  map[string]nrf24.Setup{"rx": sys.RxSetup, "tx": sys.TxSetup},
			Stats:   h.stats,
		})
		args := flag.Args()
		// Leaving the shell stops the radios.
		runner.Go(framework.NamedRun("shell", framework.RunFunc(func(ctx context.Context) error {
			defer runner.Stop()
			return framework.RunWithContextCancel(ctx, s.Close, func() error {
				return s.Run(args...)
			})
		})))
	}

	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}

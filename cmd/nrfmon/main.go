package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/robotalks/nrfduo/pkg/telemetry"
	"github.com/robotalks/nrfduo/pkg/telemetry/mqtt"
	"github.com/robotalks/nrfduo/pkg/telemetry/stream"
	"github.com/robotalks/nrfduo/pkg/telemetry/websocket"
)

var (
	mqttURL    = "mqtt://localhost:1883/nrfduo/"
	wsURL      string
	eventsFile string
)

func init() {
	if val := os.Getenv("NRFDUO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&wsURL, "ws", wsURL, "Websocket URL to read events from instead, e.g. ws://host:8080/.")
	flag.StringVar(&eventsFile, "file", eventsFile, "Events file to dump instead.")
}

func printEvent(source string, pkt []byte) {
	ev, err := telemetry.Decode(pkt)
	if err != nil {
		log.Printf("%s: bad event: %v", source, err)
		return
	}
	log.Printf("%s: #%d %s", source, ev.GetSeq(), ev.String())
}

func readAll(source string, r telemetry.PacketReader) {
	for {
		pkt, err := r.ReadPacket()
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Fatalln(err)
		}
		printEvent(source, pkt)
	}
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	switch {
	case eventsFile != "":
		f, err := stream.Open(eventsFile)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		readAll(eventsFile, f)
		return
	case wsURL != "":
		rw, err := websocket.Dial(wsURL)
		if err != nil {
			log.Fatalln(err)
		}
		defer rw.Close()
		readAll(wsURL, rw)
		return
	}

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.OnConnect = func(*mqtt.Queue) { log.Printf("connected to %s", mqttURL) }
	q.Sub(mqtt.AllEvents, mqtt.Handler(func(topic string, payload []byte) {
		printEvent(mqtt.DeviceOf(topic), payload)
	}))
	q.Sub(mqtt.OnlineTopic("+"), mqtt.Handler(func(topic string, payload []byte) {
		state := "offline"
		if string(payload) == "1" {
			state = "online"
		}
		log.Printf("%s: %s", mqtt.DeviceOf(topic), state)
	}))
	if err := q.Connect(); err != nil {
		log.Fatalln(err)
	}
	<-(chan struct{})(nil)
}

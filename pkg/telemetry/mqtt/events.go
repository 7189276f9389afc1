package mqtt

import (
	"context"
	"strings"
)

// EventsTopic is the topic events of device are published to.
func EventsTopic(device string) string {
	return device + "/events"
}

// OnlineTopic carries the retained presence of device: "1" while its
// writer is connected, "0" otherwise.
func OnlineTopic(device string) string {
	return device + "/online"
}

// AllEvents matches the events topic of every device.
const AllEvents = "+/events"

// DeviceOf returns the device of an events or online topic.
func DeviceOf(topic string) string {
	if n := strings.LastIndexByte(topic, '/'); n >= 0 {
		return topic[:n]
	}
	return topic
}

// WithPresence makes the broker publish "0" to the online topic of device
// when the client disappears.
func (o *Options) WithPresence(device string) *Options {
	o.Client.SetWill(o.TopicPrefix+OnlineTopic(device), "0", o.QoS, true)
	return o
}

// Writer publishes packets to the events topic of a device.
type Writer struct {
	Queue  *Queue
	Device string
}

// NewWriter creates a Writer for device.
func NewWriter(q *Queue, device string) *Writer {
	return &Writer{Queue: q, Device: device}
}

// WritePacket implements telemetry.PacketWriter.
func (w *Writer) WritePacket(pkt []byte) error {
	token := w.Queue.Pub(EventsTopic(w.Device), pkt)
	token.Wait()
	return token.Error()
}

// Run connects the queue and keeps it connected until ctx is done. The
// device is announced online on every connect.
func (w *Writer) Run(ctx context.Context) error {
	w.Queue.OnConnect = func(q *Queue) {
		q.Retain(OnlineTopic(w.Device), []byte("1"))
	}
	if err := w.Queue.Connect(); err != nil {
		return err
	}
	defer w.Queue.Close()
	<-ctx.Done()
	w.Queue.Retain(OnlineTopic(w.Device), []byte("0")).Wait()
	return ctx.Err()
}

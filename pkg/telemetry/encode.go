package telemetry

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/nrfduo/pkg/indicator"
	"github.com/robotalks/nrfduo/pkg/nrf24"
	pb "github.com/robotalks/nrfduo/pkg/proto/nrfduo/v1"
)

// EventFrom converts a radio event.
func EventFrom(ev nrf24.Event) *pb.Event {
	return &pb.Event{
		Kind:         pb.EventKind(ev.Kind),
		Device:       ev.Device,
		Role:         pb.Role(ev.Role),
		Payload:      append([]byte(nil), ev.Payload.Trimmed()...),
		Status:       uint32(ev.Status),
		Delivery:     pb.Delivery(ev.Delivery),
		TimeUnixNano: ev.Time.UnixNano(),
	}
}

// IndicatorEvent creates the event of an applied indicator signal.
func IndicatorEvent(sig indicator.Signal) *pb.Event {
	return &pb.Event{
		Kind:      pb.EventKind_EVENT_INDICATOR,
		Device:    "led",
		Indicator: sig == indicator.On,
	}
}

// Encode serializes an event.
func Encode(ev *pb.Event) ([]byte, error) {
	return proto.Marshal(ev)
}

// Decode parses an event.
func Decode(data []byte) (*pb.Event, error) {
	var ev pb.Event
	if err := proto.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Package nrfduo holds the telemetry messages of events.proto. The types
// follow protoc-gen-go output and are kept in sync with the .proto by hand;
// no file descriptor is registered, marshalling uses the struct tags.
package nrfduo

import (
	fmt "fmt"
	math "math"

	proto "github.com/golang/protobuf/proto"
)

// Reference imports to suppress errors if they are not otherwise used.
var _ = proto.Marshal
var _ = fmt.Errorf
var _ = math.Inf

// This is a compile-time assertion to ensure that this generated file
// is compatible with the proto package it is being compiled against.
// A compilation error at this line likely means your copy of the
// proto package needs to be updated.
const _ = proto.ProtoPackageIsVersion3 // please upgrade the proto package

type EventKind int32

const (
	EventKind_EVENT_UNKNOWN   EventKind = 0
	EventKind_EVENT_RECEIVED  EventKind = 1
	EventKind_EVENT_SENT      EventKind = 2
	EventKind_EVENT_INDICATOR EventKind = 3
)

var EventKind_name = map[int32]string{
	0: "EVENT_UNKNOWN",
	1: "EVENT_RECEIVED",
	2: "EVENT_SENT",
	3: "EVENT_INDICATOR",
}

var EventKind_value = map[string]int32{
	"EVENT_UNKNOWN":   0,
	"EVENT_RECEIVED":  1,
	"EVENT_SENT":      2,
	"EVENT_INDICATOR": 3,
}

func (x EventKind) String() string {
	return proto.EnumName(EventKind_name, int32(x))
}

type Role int32

const (
	Role_TRANSMITTER Role = 0
	Role_RECEIVER    Role = 1
)

var Role_name = map[int32]string{
	0: "TRANSMITTER",
	1: "RECEIVER",
}

var Role_value = map[string]int32{
	"TRANSMITTER": 0,
	"RECEIVER":    1,
}

func (x Role) String() string {
	return proto.EnumName(Role_name, int32(x))
}

type Delivery int32

const (
	Delivery_UNCHECKED   Delivery = 0
	Delivery_DELIVERED   Delivery = 1
	Delivery_LOST        Delivery = 2
	Delivery_UNCONFIRMED Delivery = 3
)

var Delivery_name = map[int32]string{
	0: "UNCHECKED",
	1: "DELIVERED",
	2: "LOST",
	3: "UNCONFIRMED",
}

var Delivery_value = map[string]int32{
	"UNCHECKED":   0,
	"DELIVERED":   1,
	"LOST":        2,
	"UNCONFIRMED": 3,
}

func (x Delivery) String() string {
	return proto.EnumName(Delivery_name, int32(x))
}

// Event is one observable action of the radio image.
type Event struct {
	Kind                 EventKind `protobuf:"varint,1,opt,name=kind,proto3,enum=nrfduo.v1.EventKind" json:"kind,omitempty"`
	Device               string    `protobuf:"bytes,2,opt,name=device,proto3" json:"device,omitempty"`
	Role                 Role      `protobuf:"varint,3,opt,name=role,proto3,enum=nrfduo.v1.Role" json:"role,omitempty"`
	Payload              []byte    `protobuf:"bytes,4,opt,name=payload,proto3" json:"payload,omitempty"`
	Status               uint32    `protobuf:"varint,5,opt,name=status,proto3" json:"status,omitempty"`
	Delivery             Delivery  `protobuf:"varint,6,opt,name=delivery,proto3,enum=nrfduo.v1.Delivery" json:"delivery,omitempty"`
	TimeUnixNano         int64     `protobuf:"varint,7,opt,name=time_unix_nano,json=timeUnixNano,proto3" json:"time_unix_nano,omitempty"`
	DeviceId             string    `protobuf:"bytes,8,opt,name=device_id,json=deviceId,proto3" json:"device_id,omitempty"`
	Seq                  uint64    `protobuf:"varint,9,opt,name=seq,proto3" json:"seq,omitempty"`
	Indicator            bool      `protobuf:"varint,10,opt,name=indicator,proto3" json:"indicator,omitempty"`
	XXX_NoUnkeyedLiteral struct{}  `json:"-"`
	XXX_unrecognized     []byte    `json:"-"`
	XXX_sizecache        int32     `json:"-"`
}

func (m *Event) Reset()         { *m = Event{} }
func (m *Event) String() string { return proto.CompactTextString(m) }
func (*Event) ProtoMessage()    {}

func (m *Event) GetKind() EventKind {
	if m != nil {
		return m.Kind
	}
	return EventKind_EVENT_UNKNOWN
}

func (m *Event) GetDevice() string {
	if m != nil {
		return m.Device
	}
	return ""
}

func (m *Event) GetRole() Role {
	if m != nil {
		return m.Role
	}
	return Role_TRANSMITTER
}

func (m *Event) GetPayload() []byte {
	if m != nil {
		return m.Payload
	}
	return nil
}

func (m *Event) GetStatus() uint32 {
	if m != nil {
		return m.Status
	}
	return 0
}

func (m *Event) GetDelivery() Delivery {
	if m != nil {
		return m.Delivery
	}
	return Delivery_UNCHECKED
}

func (m *Event) GetTimeUnixNano() int64 {
	if m != nil {
		return m.TimeUnixNano
	}
	return 0
}

func (m *Event) GetDeviceId() string {
	if m != nil {
		return m.DeviceId
	}
	return ""
}

func (m *Event) GetSeq() uint64 {
	if m != nil {
		return m.Seq
	}
	return 0
}

func (m *Event) GetIndicator() bool {
	if m != nil {
		return m.Indicator
	}
	return false
}

func init() {
	proto.RegisterEnum("nrfduo.v1.EventKind", EventKind_name, EventKind_value)
	proto.RegisterEnum("nrfduo.v1.Role", Role_name, Role_value)
	proto.RegisterEnum("nrfduo.v1.Delivery", Delivery_name, Delivery_value)
	proto.RegisterType((*Event)(nil), "nrfduo.v1.Event")
}

package nrf24

// Command is an SPI command opcode. Register commands carry the register
// address in their low five bits.
type Command byte

// Commands used by the driver.
const (
	R_REGISTER   Command = 0x00
	W_REGISTER   Command = 0x20
	R_RX_PAYLOAD Command = 0x61
	W_TX_PAYLOAD Command = 0xa0
	FLUSH_TX     Command = 0xe1
	FLUSH_RX     Command = 0xe2
	NOP          Command = 0xff
)

// Frame sizes.
const (
	PayloadSize = 32
	AddressSize = 5
)

// With combines a register command with reg.
func (c Command) With(reg Reg) byte {
	return byte(c) | byte(reg)&0x1f
}

// Payload is the fixed-width data block of one RF packet.
type Payload [PayloadSize]byte

// PayloadFrom copies msg into a zero-padded payload. Bytes past the payload
// width are dropped.
func PayloadFrom(msg []byte) (p Payload) {
	copy(p[:], msg)
	return
}

// Trimmed returns p without trailing zero padding.
func (p Payload) Trimmed() []byte {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

// Address is a 5-byte pipe address, least significant byte first.
type Address [AddressSize]byte

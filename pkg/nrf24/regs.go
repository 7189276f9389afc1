package nrf24

import (
	"strconv"
	"strings"
)

// Reg is the address of a chip register.
type Reg byte

// Registers used by the driver.
const (
	CONFIG      Reg = 0x00
	EN_AA       Reg = 0x01
	EN_RXADDR   Reg = 0x02
	SETUP_AW    Reg = 0x03
	SETUP_RETR  Reg = 0x04
	RF_CH       Reg = 0x05
	RF_SETUP    Reg = 0x06
	STATUS      Reg = 0x07
	OBSERVE_TX  Reg = 0x08
	RX_ADDR_P0  Reg = 0x0a
	TX_ADDR     Reg = 0x10
	RX_PW_P0    Reg = 0x11
	FIFO_STATUS Reg = 0x17
	DYNPD       Reg = 0x1c
	FEATURE     Reg = 0x1d
)

var regNames = map[Reg]string{
	CONFIG:      "CONFIG",
	EN_AA:       "EN_AA",
	EN_RXADDR:   "EN_RXADDR",
	SETUP_AW:    "SETUP_AW",
	SETUP_RETR:  "SETUP_RETR",
	RF_CH:       "RF_CH",
	RF_SETUP:    "RF_SETUP",
	STATUS:      "STATUS",
	OBSERVE_TX:  "OBSERVE_TX",
	RX_ADDR_P0:  "RX_ADDR_P0",
	TX_ADDR:     "TX_ADDR",
	RX_PW_P0:    "RX_PW_P0",
	FIFO_STATUS: "FIFO_STATUS",
	DYNPD:       "DYNPD",
	FEATURE:     "FEATURE",
}

// Registers lists the registers known to the driver in address order.
var Registers = []Reg{
	CONFIG, EN_AA, EN_RXADDR, SETUP_AW, SETUP_RETR, RF_CH, RF_SETUP, STATUS,
	OBSERVE_TX, RX_ADDR_P0, TX_ADDR, RX_PW_P0, FIFO_STATUS, DYNPD, FEATURE,
}

// ParseReg looks a register up by name.
func ParseReg(name string) (Reg, bool) {
	for r, n := range regNames {
		if strings.EqualFold(n, name) {
			return r, true
		}
	}
	return 0, false
}

func (r Reg) String() string {
	if name, ok := regNames[r]; ok {
		return name
	}
	return "REG_0x" + strconv.FormatUint(uint64(r), 16)
}

// IsAddress reports whether r holds a 5-byte pipe address.
func (r Reg) IsAddress() bool {
	return r == RX_ADDR_P0 || r == RX_ADDR_P0+1 || r == TX_ADDR
}

// Field is a bit field inside a register byte.
type Field struct {
	Shift uint8
	Width uint8
}

func (f Field) bits() byte {
	return byte(uint(1)<<f.Width - 1)
}

// Mask returns the field's bits in register position.
func (f Field) Mask() byte {
	return f.bits() << f.Shift
}

// Get extracts the field value from b.
func (f Field) Get(b byte) byte {
	return (b >> f.Shift) & f.bits()
}

// Set injects v into b. Bits of v beyond the field width are dropped.
func (f Field) Set(b, v byte) byte {
	return b&^f.Mask() | (v&f.bits())<<f.Shift
}

// CONFIG fields.
var (
	PrimRx    = Field{0, 1} // 1: PRX, 0: PTX.
	PwrUp     = Field{1, 1}
	CRCO      = Field{2, 1} // CRC length 0: one byte, 1: two bytes.
	EnCRC     = Field{3, 1}
	MaskMaxRT = Field{4, 1}
	MaskTxDS  = Field{5, 1}
	MaskRxDR  = Field{6, 1}
)

// Config is the CONFIG register.
type Config byte

func (c Config) PrimRx() byte { return PrimRx.Get(byte(c)) }
func (c Config) PwrUp() byte  { return PwrUp.Get(byte(c)) }
func (c Config) CRCO() byte   { return CRCO.Get(byte(c)) }
func (c Config) EnCRC() byte  { return EnCRC.Get(byte(c)) }

func (c Config) WithPrimRx(v byte) Config { return Config(PrimRx.Set(byte(c), v)) }
func (c Config) WithPwrUp(v byte) Config  { return Config(PwrUp.Set(byte(c), v)) }
func (c Config) WithCRCO(v byte) Config   { return Config(CRCO.Set(byte(c), v)) }
func (c Config) WithEnCRC(v byte) Config  { return Config(EnCRC.Set(byte(c), v)) }

func (c Config) String() string {
	return flags("Mask(RxDR+ TxDS+ MaxRT+) EnCRC+ CRCO+ PwrUp+ PrimRx+", 0x7f, byte(c))
}

// Pipes is the per-pipe flag layout shared by EN_AA, EN_RXADDR and DYNPD.
type Pipes byte

// PipeField returns the flag of pipe n (0..5).
func PipeField(n int) Field {
	return Field{uint8(n), 1}
}

// Pipe returns the flag of pipe n.
func (p Pipes) Pipe(n int) byte { return PipeField(n).Get(byte(p)) }

// WithPipe sets the flag of pipe n.
func (p Pipes) WithPipe(n int, v byte) Pipes { return Pipes(PipeField(n).Set(byte(p), v)) }

func (p Pipes) String() string {
	return flags("P5+ P4+ P3+ P2+ P1+ P0+", 0x3f, byte(p))
}

// AW encodes the address width, 1: 3 bytes, 2: 4 bytes, 3: 5 bytes.
var AW = Field{0, 2}

// SetupAW is the SETUP_AW register.
type SetupAW byte

func (s SetupAW) AW() byte              { return AW.Get(byte(s)) }
func (s SetupAW) WithAW(v byte) SetupAW { return SetupAW(AW.Set(byte(s), v)) }

// SETUP_RETR fields.
var (
	ARC = Field{0, 4} // Auto retransmit count.
	ARD = Field{4, 4} // Auto retransmit delay, (n+1)*250us.
)

// SetupRetr is the SETUP_RETR register.
type SetupRetr byte

func (s SetupRetr) Count() byte { return ARC.Get(byte(s)) }
func (s SetupRetr) Delay() byte { return ARD.Get(byte(s)) }

func (s SetupRetr) WithCount(v byte) SetupRetr { return SetupRetr(ARC.Set(byte(s), v)) }
func (s SetupRetr) WithDelay(v byte) SetupRetr { return SetupRetr(ARD.Set(byte(s), v)) }

// DelayMicros returns the retransmit delay in microseconds.
func (s SetupRetr) DelayMicros() int { return (int(s.Delay()) + 1) * 250 }

// Ch is the RF channel number.
var Ch = Field{0, 7}

// RFCh is the RF_CH register.
type RFCh byte

func (r RFCh) Ch() byte           { return Ch.Get(byte(r)) }
func (r RFCh) WithCh(v byte) RFCh { return RFCh(Ch.Set(byte(r), v)) }

// RF_SETUP fields.
var (
	RFPwr    = Field{1, 2} // 0: -18dBm, 1: -12dBm, 2: -6dBm, 3: 0dBm.
	RFDRHigh = Field{3, 1}
	PLLLock  = Field{4, 1}
	RFDRLow  = Field{5, 1}
	ContWave = Field{7, 1}
)

// RFSetup is the RF_SETUP register.
type RFSetup byte

func (r RFSetup) Pwr() byte    { return RFPwr.Get(byte(r)) }
func (r RFSetup) DRHigh() byte { return RFDRHigh.Get(byte(r)) }
func (r RFSetup) DRLow() byte  { return RFDRLow.Get(byte(r)) }

func (r RFSetup) WithPwr(v byte) RFSetup    { return RFSetup(RFPwr.Set(byte(r), v)) }
func (r RFSetup) WithDRHigh(v byte) RFSetup { return RFSetup(RFDRHigh.Set(byte(r), v)) }
func (r RFSetup) WithDRLow(v byte) RFSetup  { return RFSetup(RFDRLow.Set(byte(r), v)) }

// Dbm returns output power in dBm.
func (r RFSetup) Dbm() int { return 6*int(r.Pwr()) - 18 }

func (r RFSetup) String() string {
	return flags("Wave+ DRLow+ Lock+ DRHigh+ Pwr:", 0xb8, byte(r)) +
		strconv.Itoa(r.Dbm()) + "dBm"
}

// STATUS fields.
var (
	TxFull = Field{0, 1}
	RxPNo  = Field{1, 3} // Pipe of the RX FIFO head, 7 when empty.
	MaxRT  = Field{4, 1}
	TxDS   = Field{5, 1}
	RxDR   = Field{6, 1}
)

// Status is the STATUS register. Every command echoes it in response byte 0.
type Status byte

func (s Status) TxFull() byte { return TxFull.Get(byte(s)) }
func (s Status) RxPNo() byte  { return RxPNo.Get(byte(s)) }
func (s Status) MaxRT() byte  { return MaxRT.Get(byte(s)) }
func (s Status) TxDS() byte   { return TxDS.Get(byte(s)) }
func (s Status) RxDR() byte   { return RxDR.Get(byte(s)) }

func (s Status) WithRxPNo(v byte) Status { return Status(RxPNo.Set(byte(s), v)) }
func (s Status) WithMaxRT(v byte) Status { return Status(MaxRT.Set(byte(s), v)) }
func (s Status) WithTxDS(v byte) Status  { return Status(TxDS.Set(byte(s), v)) }
func (s Status) WithRxDR(v byte) Status  { return Status(RxDR.Set(byte(s), v)) }

// DataReady reports RX_DR.
func (s Status) DataReady() bool { return s.RxDR() == 1 }

func (s Status) String() string {
	return flags("RxDR+ TxDS+ MaxRT+ TxFull+ RxPipe:", 0x71, byte(s)) +
		strconv.Itoa(int(s.RxPNo()))
}

// PW is the static payload width of a pipe.
var PW = Field{0, 6}

// RxPW is an RX_PW_Px register.
type RxPW byte

func (r RxPW) PW() byte           { return PW.Get(byte(r)) }
func (r RxPW) WithPW(v byte) RxPW { return RxPW(PW.Set(byte(r), v)) }

// FEATURE fields.
var (
	EnDynAck = Field{0, 1}
	EnAckPay = Field{1, 1}
	EnDPL    = Field{2, 1}
)

// Feature is the FEATURE register.
type Feature byte

func (f Feature) EnDynAck() byte { return EnDynAck.Get(byte(f)) }
func (f Feature) EnAckPay() byte { return EnAckPay.Get(byte(f)) }
func (f Feature) EnDPL() byte    { return EnDPL.Get(byte(f)) }

func (f Feature) WithEnDynAck(v byte) Feature { return Feature(EnDynAck.Set(byte(f), v)) }
func (f Feature) WithEnAckPay(v byte) Feature { return Feature(EnAckPay.Set(byte(f), v)) }
func (f Feature) WithEnDPL(v byte) Feature    { return Feature(EnDPL.Set(byte(f), v)) }

func (f Feature) String() string {
	return flags("DPL+ AckPay+ DynAck+", 7, byte(f))
}

// Describe renders val decoded as the content of reg, or "" for registers
// without a decoded form.
func Describe(reg Reg, val byte) string {
	switch reg {
	case CONFIG:
		return Config(val).String()
	case EN_AA, EN_RXADDR, DYNPD:
		return Pipes(val).String()
	case SETUP_AW:
		return "AW:" + strconv.Itoa(int(SetupAW(val).AW()))
	case SETUP_RETR:
		r := SetupRetr(val)
		return "ARD:" + strconv.Itoa(r.DelayMicros()) + "us ARC:" + strconv.Itoa(int(r.Count()))
	case RF_CH:
		return "Ch:" + strconv.Itoa(int(RFCh(val).Ch()))
	case RF_SETUP:
		return RFSetup(val).String()
	case STATUS:
		return Status(val).String()
	case RX_PW_P0:
		return "PW:" + strconv.Itoa(int(RxPW(val).PW()))
	case FEATURE:
		return Feature(val).String()
	}
	return ""
}

// flags renders each '+' in f as '+' or '-' for the next set bit of mask,
// scanning b from the most significant bit.
func flags(f string, mask, b byte) string {
	buf := make([]byte, len(f))
	m := byte(0x80)
	for i := range buf {
		if f[i] == '+' {
			for mask&m == 0 {
				m >>= 1
			}
			if b&m == 0 {
				buf[i] = '-'
			} else {
				buf[i] = '+'
			}
			m >>= 1
		} else {
			buf[i] = f[i]
		}
	}
	return string(buf)
}

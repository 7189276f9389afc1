package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/nrfduo/pkg/nrf24"
)

func bringUp(t *testing.T, c *Chip, role nrf24.Role) *nrf24.Device {
	d := nrf24.NewDevice(c.Name, c, c.CE())
	require.NoError(t, d.BringUp(context.Background(), noWait{}, nrf24.DefaultSetup(role)))
	return d
}

type noWait struct{}

func (noWait) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func TestChipRegisters(t *testing.T) {
	c := NewChip("c", nil)
	d := nrf24.NewDevice("c", c, c.CE())

	val, stat, err := d.ReadReg(nrf24.CONFIG)
	require.NoError(t, err)
	require.Equal(t, byte(0x08), val)
	require.Equal(t, byte(7), stat.RxPNo())

	_, err = d.WriteReg(nrf24.RF_CH, 76)
	require.NoError(t, err)
	require.Equal(t, byte(76), c.Reg(nrf24.RF_CH))

	_, err = d.WriteAddr(nrf24.TX_ADDR, nrf24.DefaultAddress)
	require.NoError(t, err)
	addr, _, err := d.ReadAddr(nrf24.TX_ADDR)
	require.NoError(t, err)
	require.Equal(t, nrf24.DefaultAddress, addr)
}

func TestChipStatusWriteOneToClear(t *testing.T) {
	c := NewChip("c", nil)
	c.regs[nrf24.STATUS] = 0x70
	d := nrf24.NewDevice("c", c, c.CE())
	_, err := d.ClearStatus(nrf24.Status(0).WithTxDS(1))
	require.NoError(t, err)
	require.Equal(t, byte(0x50), c.Reg(nrf24.STATUS)&0x70)
	_, err = d.WriteReg(nrf24.STATUS, 0)
	require.NoError(t, err)
	require.Equal(t, byte(0x50), c.Reg(nrf24.STATUS)&0x70)
}

func TestChipBringUpState(t *testing.T) {
	air := NewAir()
	tx := NewChip("tx", air)
	rx := NewChip("rx", air)
	bringUp(t, tx, nrf24.Transmitter)
	bringUp(t, rx, nrf24.Receiver)

	require.Equal(t, byte(0x0e), tx.Reg(nrf24.CONFIG))
	require.Equal(t, byte(0x0f), rx.Reg(nrf24.CONFIG))
	require.Equal(t, byte(0), tx.Reg(nrf24.EN_RXADDR))
	require.Equal(t, byte(1), rx.Reg(nrf24.EN_RXADDR))
	require.Equal(t, nrf24.DefaultAddress, tx.Addr(nrf24.TX_ADDR))
	require.Equal(t, nrf24.DefaultAddress, rx.Addr(nrf24.RX_ADDR_P0))
	require.Equal(t, byte(0), rx.Reg(nrf24.STATUS)&0x70)
}

func TestAirDelivers(t *testing.T) {
	air := NewAir()
	var seen []Packet
	air.Subscribe(PacketListenerFunc(func(p Packet) { seen = append(seen, p) }))
	txChip, rxChip := NewChip("tx", air), NewChip("rx", air)
	tx := bringUp(t, txChip, nrf24.Transmitter)
	rx := bringUp(t, rxChip, nrf24.Receiver)

	_, err := tx.WritePayload(nrf24.PayloadFrom(nrf24.DefaultMessage))
	require.NoError(t, err)
	require.NoError(t, tx.SetCE(true))
	require.NoError(t, tx.SetCE(false))

	_, stat, err := tx.ReadReg(nrf24.STATUS)
	require.NoError(t, err)
	require.Equal(t, byte(1), stat.TxDS())

	_, stat, err = rx.ReadReg(nrf24.STATUS)
	require.NoError(t, err)
	require.True(t, stat.DataReady())
	require.Equal(t, byte(0), stat.RxPNo())

	p, _, err := rx.ReadPayload()
	require.NoError(t, err)
	require.Equal(t, "Hello, world!", string(p.Trimmed()))
	_, stat, err = rx.ReadReg(nrf24.STATUS)
	require.NoError(t, err)
	require.Equal(t, byte(7), stat.RxPNo())

	require.Len(t, seen, 1)
	require.Equal(t, 1, seen[0].Receivers)
	require.Equal(t, 1, txChip.Stats().Sent)
	require.Equal(t, 1, rxChip.Stats().Received)
}

func TestAirIgnoresOtherChannel(t *testing.T) {
	air := NewAir()
	txChip, rxChip := NewChip("tx", air), NewChip("rx", air)
	tx := bringUp(t, txChip, nrf24.Transmitter)
	bringUp(t, rxChip, nrf24.Receiver)
	_, err := tx.WriteReg(nrf24.RF_CH, 10)
	require.NoError(t, err)
	_, err = tx.WritePayload(nrf24.Payload{1})
	require.NoError(t, err)
	require.NoError(t, tx.SetCE(true))
	rxn, _ := rxChip.Pending()
	require.Equal(t, 0, rxn)
}

func TestAutoAckLoss(t *testing.T) {
	air := NewAir()
	air.Drop = func(Packet) bool { return true }
	txChip := NewChip("tx", air)
	tx := bringUp(t, txChip, nrf24.Transmitter)
	_, err := tx.WriteReg(nrf24.EN_AA, 1)
	require.NoError(t, err)
	_, err = tx.WritePayload(nrf24.Payload{1})
	require.NoError(t, err)
	require.NoError(t, tx.SetCE(true))

	_, stat, err := tx.ReadReg(nrf24.STATUS)
	require.NoError(t, err)
	require.Equal(t, byte(1), stat.MaxRT())
	_, txn := txChip.Pending()
	require.Equal(t, 1, txn)
	require.Equal(t, 1, txChip.Stats().Lost)
}

func TestRXFIFOOverflow(t *testing.T) {
	air := NewAir()
	txChip, rxChip := NewChip("tx", air), NewChip("rx", air)
	tx := bringUp(t, txChip, nrf24.Transmitter)
	bringUp(t, rxChip, nrf24.Receiver)
	for i := 0; i < FIFODepth+1; i++ {
		_, err := tx.WritePayload(nrf24.Payload{byte(i)})
		require.NoError(t, err)
		require.NoError(t, tx.SetCE(true))
		require.NoError(t, tx.SetCE(false))
	}
	rxn, _ := rxChip.Pending()
	require.Equal(t, FIFODepth, rxn)
	require.Equal(t, 1, rxChip.Stats().Overflows)
	require.Equal(t, byte(0x02), rxChip.Reg(nrf24.FIFO_STATUS)&0x02)
}

func TestChipFaults(t *testing.T) {
	errBus := errors.New("bus")
	c := NewChip("c", nil)
	c.Fail(errBus, nil)
	d := nrf24.NewDevice("c", c, c.CE())
	_, err := d.NOP()
	require.True(t, errors.Is(err, errBus))
	_, err = d.NOP()
	require.NoError(t, err)
}

func TestPinRecords(t *testing.T) {
	var changes []bool
	p := NewPin("led")
	p.OnChange = func(v bool) { changes = append(changes, v) }
	require.NoError(t, p.High())
	require.True(t, p.Level())
	require.NoError(t, p.Low())
	require.False(t, p.Level())
	require.Equal(t, []bool{true, false}, p.History())
	require.Equal(t, []bool{true, false}, changes)
}

package stream

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPacketFraming(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)
	require.NoError(t, rw.WritePacket([]byte("abc")))
	require.NoError(t, rw.WritePacket(nil))
	require.Equal(t, []byte{3, 0, 0, 0, 'a', 'b', 'c', 0, 0, 0, 0}, buf.Bytes())

	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), pkt)
	pkt, err = rw.ReadPacket()
	require.NoError(t, err)
	require.Empty(t, pkt)
	_, err = rw.ReadPacket()
	require.Equal(t, io.EOF, err)
}

func TestFileAppend(t *testing.T) {
	dir, err := ioutil.TempDir("", "stream")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "events.bin")

	for _, pkt := range []string{"one", "two"} {
		f, err := Append(name)
		require.NoError(t, err)
		require.NoError(t, f.WritePacket([]byte(pkt)))
		require.NoError(t, f.Close())
	}

	f, err := Open(name)
	require.NoError(t, err)
	defer f.Close()
	for _, want := range []string{"one", "two"} {
		pkt, err := f.ReadPacket()
		require.NoError(t, err)
		require.Equal(t, want, string(pkt))
	}
}

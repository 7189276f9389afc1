// Package stream frames telemetry packets on a byte stream.
package stream

import (
	"encoding/binary"
	"io"
	"os"
	"sync"
)

// ReadWriter reads and writes packets on a stream.
// Each packet is prefixed by 4-byte (little-endian) indicate the length.
type ReadWriter struct {
	io.ReadWriter

	lock sync.Mutex
}

// New creates a ReadWriter with io.ReadWriter.
func New(s io.ReadWriter) *ReadWriter {
	return &ReadWriter{ReadWriter: s}
}

// ReadPacket implements telemetry.PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	var size uint32
	if err := binary.Read(p.ReadWriter, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	pkt := make([]byte, size)
	_, err := io.ReadFull(p.ReadWriter, pkt)
	return pkt, err
}

// WritePacket implements telemetry.PacketWriter. The prefix and the packet
// go out in a single write.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	buf := make([]byte, 4+len(pkt))
	binary.LittleEndian.PutUint32(buf, uint32(len(pkt)))
	copy(buf[4:], pkt)
	p.lock.Lock()
	defer p.lock.Unlock()
	_, err := p.Write(buf)
	return err
}

// File is a ReadWriter on a file.
type File struct {
	*ReadWriter
	f *os.File
}

// Append opens name for appending packets, creating it if needed.
func Append(name string) (*File, error) {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return &File{ReadWriter: New(f), f: f}, nil
}

// Open opens name for reading packets.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &File{ReadWriter: New(f), f: f}, nil
}

// Close implements io.Closer.
func (f *File) Close() error {
	return f.f.Close()
}

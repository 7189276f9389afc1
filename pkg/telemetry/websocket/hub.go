// Package websocket serves telemetry packets to websocket clients.
package websocket

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
)

// ReadWriter reads and writes packets as binary websocket messages.
type ReadWriter websocket.Conn

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *ReadWriter {
	return (*ReadWriter)(conn)
}

// Dial connects to a hub.
func Dial(url string) (*ReadWriter, error) {
	conn, err := websocket.Dial(url, "", "http://localhost/")
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// ReadPacket implements telemetry.PacketReader.
func (p *ReadWriter) ReadPacket() (pkt []byte, err error) {
	err = websocket.Message.Receive((*websocket.Conn)(p), &pkt)
	return
}

// WritePacket implements telemetry.PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	return websocket.Message.Send((*websocket.Conn)(p), pkt)
}

// Close closes the connection.
func (p *ReadWriter) Close() error {
	return (*websocket.Conn)(p).Close()
}

// Hub broadcasts every packet to all connected clients. A client that
// fails a write is dropped.
type Hub struct {
	Addr string

	lock    sync.Mutex
	clients map[*ReadWriter]chan struct{}
}

// NewHub creates a Hub listening on addr once run.
func NewHub(addr string) *Hub {
	return &Hub{Addr: addr, clients: make(map[*ReadWriter]chan struct{})}
}

// Handler returns the http.Handler accepting clients.
func (h *Hub) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

func (h *Hub) serve(conn *websocket.Conn) {
	rw := New(conn)
	done := make(chan struct{})
	h.lock.Lock()
	h.clients[rw] = done
	h.lock.Unlock()
	glog.V(1).Infof("ws client %s connected", conn.Request().RemoteAddr)
	<-done
	conn.Close()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// WritePacket implements telemetry.PacketWriter.
func (h *Hub) WritePacket(pkt []byte) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	for rw, done := range h.clients {
		if err := rw.WritePacket(pkt); err != nil {
			glog.V(1).Infof("ws client dropped: %v", err)
			delete(h.clients, rw)
			close(done)
		}
	}
	return nil
}

func (h *Hub) closeAll() {
	h.lock.Lock()
	defer h.lock.Unlock()
	for rw, done := range h.clients {
		delete(h.clients, rw)
		close(done)
	}
}

// Run serves the hub on Addr until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.Addr)
	if err != nil {
		return err
	}
	glog.Infof("websocket events on %s", ln.Addr())
	return h.Serve(ctx, ln)
}

// Serve serves the hub on ln until ctx is done.
func (h *Hub) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: h.Handler()}
	go func() {
		<-ctx.Done()
		h.closeAll()
		srv.Close()
	}()
	if err := srv.Serve(ln); err != http.ErrServerClosed {
		return err
	}
	return ctx.Err()
}

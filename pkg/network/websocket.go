package network

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/pkg/errors"

	protocol "vcombat/pkg/shared/network"
)

// MaxFrameSize bounds a single msgpack frame.
const MaxFrameSize = 1 << 20

// Conn sends and receives whole packets over a websocket, one binary message
// per packet.
type Conn struct {
	ws *websocket.Conn
}

func NewConn(ws *websocket.Conn) *Conn {
	ws.SetReadLimit(MaxFrameSize)
	return &Conn{ws: ws}
}

// ReadPacket blocks until the next packet arrives or ctx is done.
func (c *Conn) ReadPacket(ctx context.Context) (protocol.Packet, error) {
	typ, data, err := c.ws.Read(ctx)
	if err != nil {
		return protocol.Packet{}, err
	}
	if typ != websocket.MessageBinary {
		return protocol.Packet{}, errors.Errorf("unexpected %s message", typ)
	}
	return protocol.Unmarshal(data)
}

func (c *Conn) WritePacket(ctx context.Context, p protocol.Packet) error {
	data, err := protocol.Marshal(p)
	if err != nil {
		return err
	}
	return c.ws.Write(ctx, websocket.MessageBinary, data)
}

func (c *Conn) Close(reason string) error {
	return c.ws.Close(websocket.StatusNormalClosure, reason)
}

// Handler upgrades requests to websockets and hands each connection to
// handle. The connection is closed when handle returns.
func Handler(handle func(ctx context.Context, c *Conn)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // Hosts connect from anywhere on the local machine
		})
		if err != nil {
			return
		}
		c := NewConn(ws)
		defer ws.CloseNow()
		handle(r.Context(), c)
	})
}

// ListenAndServe serves handle on path until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr, path string, handle func(ctx context.Context, c *Conn)) error {
	mux := http.NewServeMux()
	mux.Handle(path, Handler(handle))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

package network

import (
	"context"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	protocol "vcombat/pkg/shared/network"
)

// RemoteError is an error the bridge reported for one request.
type RemoteError struct {
	Op      protocol.PacketType
	Message string
}

func (e *RemoteError) Error() string {
	return e.Op.String() + ": " + e.Message
}

// BridgeClient calls the bridge server's operations. Calls are serialized; the
// bridge answers each request before reading the next.
type BridgeClient struct {
	conn    *Conn
	Session string
	Races   []string
	Items   []string
	mu      sync.Mutex
}

// Dial connects to a bridge at url (ws://host:port/path) and waits for its
// hello.
func Dial(ctx context.Context, url string) (*BridgeClient, error) {
	ws, _, err := websocket.Dial(ctx, url, dialOptions())
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}
	c := &BridgeClient{conn: NewConn(ws)}

	p, err := c.conn.ReadPacket(ctx)
	if err != nil {
		ws.CloseNow()
		return nil, errors.Wrap(err, "read hello")
	}
	if p.Type != protocol.PacketHello {
		ws.CloseNow()
		return nil, errors.Errorf("unexpected packet: %s", p.Type)
	}
	var hello protocol.HelloPacket
	if err := p.Decode(&hello); err != nil {
		ws.CloseNow()
		return nil, err
	}
	c.Session = hello.Session
	c.Races = hello.Races
	c.Items = hello.Items
	return c, nil
}

func (c *BridgeClient) Close() error {
	return c.conn.Close("bye")
}

// Call sends req as an op packet and decodes the matching response into resp.
func (c *BridgeClient) Call(ctx context.Context, op protocol.PacketType, req, resp any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	p, err := protocol.NewPacket(op, id, req)
	if err != nil {
		return err
	}
	if err := c.conn.WritePacket(ctx, p); err != nil {
		return errors.Wrapf(err, "send %s", op)
	}

	reply, err := c.conn.ReadPacket(ctx)
	if err != nil {
		return errors.Wrapf(err, "receive %s", op)
	}
	if reply.RequestID != id {
		return errors.Errorf("response %q does not match request %q", reply.RequestID, id)
	}
	if reply.Type == protocol.PacketError {
		var e protocol.ErrorPacket
		if err := reply.Decode(&e); err != nil {
			return err
		}
		return &RemoteError{Op: op, Message: e.Message}
	}
	if reply.Type != op {
		return errors.Errorf("unexpected packet: %s", reply.Type)
	}
	return reply.Decode(resp)
}

func (c *BridgeClient) Profile(ctx context.Context, req protocol.ProfileRequest) (protocol.ProfileResponse, error) {
	var resp protocol.ProfileResponse
	err := c.Call(ctx, protocol.PacketProfile, req, &resp)
	return resp, err
}

func (c *BridgeClient) Envelope(ctx context.Context, req protocol.AttackRequest) (protocol.EnvelopeResponse, error) {
	var resp protocol.EnvelopeResponse
	err := c.Call(ctx, protocol.PacketEnvelope, req, &resp)
	return resp, err
}

func (c *BridgeClient) Struck(ctx context.Context, req protocol.AttackRequest) (protocol.StruckResponse, error) {
	var resp protocol.StruckResponse
	err := c.Call(ctx, protocol.PacketStruck, req, &resp)
	return resp, err
}

func (c *BridgeClient) Strike(ctx context.Context, req protocol.AttackRequest) (protocol.StrikeResponse, error) {
	var resp protocol.StrikeResponse
	err := c.Call(ctx, protocol.PacketStrike, req, &resp)
	return resp, err
}

func (c *BridgeClient) Validate(ctx context.Context, race string) (protocol.ValidateResponse, error) {
	var resp protocol.ValidateResponse
	err := c.Call(ctx, protocol.PacketValidate, protocol.ValidateRequest{Race: race}, &resp)
	return resp, err
}

package network

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protocol "vcombat/pkg/shared/network"
)

// echo greets like a bridge, then answers every request with its own payload,
// or with an error packet for validate requests.
func echo(ctx context.Context, c *Conn) {
	hello, _ := protocol.NewPacket(protocol.PacketHello, "", protocol.HelloPacket{Session: "s1", Races: []string{"human"}})
	if err := c.WritePacket(ctx, hello); err != nil {
		return
	}
	for {
		p, err := c.ReadPacket(ctx)
		if err != nil {
			return
		}
		if p.Type == protocol.PacketValidate {
			p, _ = protocol.NewPacket(protocol.PacketError, p.RequestID, protocol.ErrorPacket{Message: "no"})
		}
		if err := c.WritePacket(ctx, p); err != nil {
			return
		}
	}
}

func dialEcho(t *testing.T) (*BridgeClient, context.Context) {
	t.Helper()
	srv := httptest.NewServer(Handler(echo))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	c, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, ctx
}

func TestDial_Hello(t *testing.T) {
	c, _ := dialEcho(t)
	assert.Equal(t, "s1", c.Session)
	assert.Equal(t, []string{"human"}, c.Races)
}

func TestBridgeClient_Call(t *testing.T) {
	c, ctx := dialEcho(t)

	req := protocol.ProfileRequest{Thing: protocol.ThingSnapshot{ID: 3, Category: "plant", PlantHeight: 0.4}, X: 2}
	var got protocol.ProfileRequest
	require.NoError(t, c.Call(ctx, protocol.PacketProfile, req, &got))
	assert.Equal(t, req, got)

	_, err := c.Validate(ctx, "human")
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "validate: no", remote.Error())
}

func TestConn_RejectsText(t *testing.T) {
	srv := httptest.NewServer(Handler(func(ctx context.Context, c *Conn) {
		c.ws.Write(ctx, websocket.MessageText, []byte("hi"))
		c.ReadPacket(ctx)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	assert.ErrorContains(t, err, "unexpected")
}

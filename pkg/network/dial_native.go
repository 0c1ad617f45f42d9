//go:build !js || !wasm

package network

import (
	"net/http"

	"github.com/coder/websocket"
)

func dialOptions() *websocket.DialOptions {
	return &websocket.DialOptions{
		HTTPHeader: http.Header{"User-Agent": []string{"vcombat-bridge"}},
	}
}

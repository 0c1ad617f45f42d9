//go:build js && wasm

package network

import "github.com/coder/websocket"

// Browsers do not let scripts set handshake headers.
func dialOptions() *websocket.DialOptions {
	return nil
}

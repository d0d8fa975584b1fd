package http1

import (
	"crypto/rand"
	"encoding/base64"
)

const (
	upgradeWebSocket  = "websocket"
	connectionUpgrade = "Upgrade"
	webSocketVersion  = "13"
)

// Upgrade returns a GET HTTP/1.1 request carrying the WebSocket client
// handshake headers (RFC 6455 Section 4.1): Host, Upgrade, Connection,
// Sec-WebSocket-Key and Sec-WebSocket-Version. More headers can be chained.
//
// key should come from NewWebSocketKey.
func Upgrade(path, host, key string) *Request {
	return Get().
		Path(path).
		V11().
		HeaderString(HeaderHost, host).
		HeaderString(HeaderUpgrade, upgradeWebSocket).
		HeaderString(HeaderConnection, connectionUpgrade).
		HeaderString(HeaderSecWebSocketKey, key).
		HeaderString(HeaderSecWebSocketVersion, webSocketVersion)
}

// NewWebSocketKey returns a fresh Sec-WebSocket-Key: 16 random bytes, base64
// encoded.
func NewWebSocketKey() (string, error) {
	var p [16]byte
	if _, err := rand.Read(p[:]); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(p[:]), nil
}

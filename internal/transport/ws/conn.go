// Package ws provides the WebSocket transport for the chat server. WebSocket
// peers join the same room as TCP peers; the WebSocket frame layer replaces
// the 4-byte length header, but the body size limit is enforced identically.
package ws

import (
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"
)

// Conn adapts an upgraded WebSocket connection to chat.Conn. One WebSocket
// data frame carries one message body.
type Conn struct {
	conn net.Conn
}

// NewConn wraps a connection that has already completed the HTTP upgrade.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

// ReadMessage implements chat.Conn. Text and binary frames are both
// accepted; a frame larger than protocol.MaxBodySize is a protocol violation
// and surfaces as ErrBodyTooLarge, which drops the peer.
func (c *Conn) ReadMessage() (protocol.Message, error) {
	for {
		data, op, err := wsutil.ReadClientData(c.conn)
		if err != nil {
			return protocol.Message{}, err
		}
		if op != ws.OpText && op != ws.OpBinary {
			continue
		}
		return protocol.New(data)
	}
}

// WriteMessage implements chat.Conn.
func (c *Conn) WriteMessage(msg protocol.Message) error {
	return wsutil.WriteServerBinary(c.conn, msg.Body())
}

// Close implements chat.Conn.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr implements chat.Conn.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

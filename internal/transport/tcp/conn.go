// Package tcp provides the TCP transport for the chat server: a framed
// adapter over net.Conn and the accept loop that attaches peers to the room.
package tcp

import (
	"bufio"
	"net"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"
)

// Conn adapts net.Conn to chat.Conn, applying the length-prefixed framing.
type Conn struct {
	conn   net.Conn
	reader *bufio.Reader
}

// NewConn wraps a net.Conn.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn, reader: bufio.NewReader(conn)}
}

// ReadMessage implements chat.Conn. It blocks until one complete frame has
// arrived, regardless of how the stream chunks it.
func (c *Conn) ReadMessage() (protocol.Message, error) {
	return protocol.ReadMessage(c.reader)
}

// WriteMessage implements chat.Conn. The frame goes to the socket directly,
// bypassing the read buffer.
func (c *Conn) WriteMessage(msg protocol.Message) error {
	_, err := c.conn.Write(msg.Encode())
	return err
}

// Close implements chat.Conn.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr implements chat.Conn.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

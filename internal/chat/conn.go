package chat

import "github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"

// Conn abstracts a bidirectional message transport for both TCP and
// WebSocket. This interface isolates transport details from chat logic:
// a Peer drives the message loops, a Conn moves whole frames.
type Conn interface {
	// ReadMessage blocks until one complete message has been read.
	// Returns io.EOF when the peer closes cleanly between messages and
	// protocol.ErrInvalidHeader when the stream framing is corrupt.
	ReadMessage() (protocol.Message, error)

	// WriteMessage sends a single complete message.
	WriteMessage(msg protocol.Message) error

	// Close closes the underlying transport. It is the cancellation
	// primitive: in-flight reads and writes fail promptly afterwards.
	// Safe to call more than once.
	Close() error

	// RemoteAddr returns the remote address for logging.
	RemoteAddr() string
}

package chat

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-metrics"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"
)

// Peer is one live connection's state machine. Two concerns run
// independently: a read loop that decodes inbound frames and hands them to
// the Room, and an outbound FIFO queue drained by a single writer so that at
// most one write is ever in flight on the transport. Concurrent writes on
// one transport would interleave bytes and corrupt the framing of both
// messages, so the single-writer rule is load-bearing, not stylistic.
type Peer struct {
	id     string
	room   *Room
	conn   Conn
	logger *slog.Logger

	mu      sync.Mutex
	queue   []protocol.Message
	writing bool
	closed  bool
}

// NewPeer wraps an accepted connection. The peer is inert until Start is
// called: construction performs no I/O and does not touch the Room, so a
// half-built peer can never receive traffic.
func NewPeer(conn Conn, room *Room, logger *slog.Logger) *Peer {
	id := uuid.NewString()
	return &Peer{
		id:     id,
		room:   room,
		conn:   conn,
		logger: logger.With("peer", id[:8], "remote", conn.RemoteAddr()),
	}
}

// ID implements Participant.
func (p *Peer) ID() string {
	return p.id
}

// Start registers the peer with the Room (which replays history onto the
// outbound queue) and launches the read loop. If the Room rejects the peer,
// the connection is closed and the error returned. Start does not block.
func (p *Peer) Start() error {
	if err := p.room.Register(p); err != nil {
		p.conn.Close()
		return err
	}
	go p.readLoop()
	return nil
}

// Close tears the peer down: it is dropped from the Room, the transport is
// closed, and any queued outbound messages are abandoned. Idempotent; the
// read loop, a failed write, and an external caller may all race into it.
func (p *Peer) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.queue = nil
	p.mu.Unlock()

	p.room.Unregister(p)
	p.conn.Close()
}

// Deliver implements Participant. The message goes to the tail of the
// outbound queue; the writer is started only when the queue transitions from
// empty to non-empty, otherwise the already-running writer picks it up.
// Delivering to a closed peer drops the message silently.
func (p *Peer) Deliver(msg protocol.Message) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		metrics.IncrCounter(MetricPeerDroppedCount, 1)
		return
	}
	p.queue = append(p.queue, msg)
	start := !p.writing
	if start {
		p.writing = true
	}
	p.mu.Unlock()

	if start {
		go p.writeLoop()
	}
}

// readLoop runs AwaitingHeader -> AwaitingBody -> dispatch until the
// transport fails or the peer sends garbage. Protocol corruption is not
// recoverable: once a header fails to parse the framing of everything that
// follows is untrustworthy, so the peer is dropped rather than corrected.
func (p *Peer) readLoop() {
	defer p.Close()
	for {
		msg, err := p.conn.ReadMessage()
		if err != nil {
			switch {
			case errors.Is(err, protocol.ErrInvalidHeader), errors.Is(err, protocol.ErrBodyTooLarge):
				p.logger.Warn("protocol violation, dropping peer", "error", err)
			case errors.Is(err, io.EOF):
				p.logger.Info("peer disconnected")
			default:
				p.logger.Info("read failed", "error", err)
			}
			return
		}
		p.room.Broadcast(p, msg)
	}
}

// writeLoop drains the queue head by head. Only one instance runs per peer;
// the writing flag is flipped under the lock, so a drained loop and a fresh
// Deliver can never overlap.
func (p *Peer) writeLoop() {
	for {
		p.mu.Lock()
		if p.closed || len(p.queue) == 0 {
			p.writing = false
			p.mu.Unlock()
			return
		}
		msg := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		if err := p.conn.WriteMessage(msg); err != nil {
			p.logger.Info("write failed", "error", err)
			p.Close()
			return
		}
		metrics.IncrCounter(MetricPeerOutBytes, float32(protocol.HeaderSize+msg.Len()))
	}
}

package chat

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-metrics"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"
)

// DefaultHistorySize is the number of recent messages replayed to newcomers
// when no explicit size is configured.
const DefaultHistorySize = 50

// ErrRoomFull is returned by Register when the configured participant limit
// has been reached.
var ErrRoomFull = errors.New("chat: room is full")

// Room mediates between participants: it tracks the live membership set,
// retains a bounded history of recent messages, and fans incoming messages
// out to everyone except the sender. All transports share a single Room.
type Room struct {
	logger *slog.Logger

	mu         sync.Mutex
	members    map[Participant]struct{}
	history    *history
	maxMembers int
}

// RoomOption configures a Room.
type RoomOption func(*Room)

// WithHistorySize sets how many recent messages are replayed to newcomers.
func WithHistorySize(size int) RoomOption {
	return func(r *Room) {
		if size > 0 {
			r.history = newHistory(size)
		}
	}
}

// WithMaxParticipants caps the membership size. Zero means unlimited.
func WithMaxParticipants(limit int) RoomOption {
	return func(r *Room) {
		r.maxMembers = limit
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) RoomOption {
	return func(r *Room) {
		r.logger = logger
	}
}

// NewRoom creates a Room with the given options.
func NewRoom(opts ...RoomOption) *Room {
	r := &Room{
		logger:  slog.Default(),
		members: make(map[Participant]struct{}),
		history: newHistory(DefaultHistorySize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds p to the room and replays the retained history to it, oldest
// first. Replay happens under the room lock so no live broadcast can slip in
// ahead of the history. Registering a member twice is a no-op. When a
// participant limit is configured and reached, Register returns ErrRoomFull
// and the caller is expected to drop the connection.
func (r *Room) Register(p Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[p]; ok {
		return nil
	}
	if r.maxMembers > 0 && len(r.members) >= r.maxMembers {
		metrics.IncrCounter(MetricRoomRejectedCount, 1)
		return ErrRoomFull
	}

	r.members[p] = struct{}{}
	for _, msg := range r.history.snapshot() {
		p.Deliver(msg)
	}

	metrics.IncrCounter(MetricRoomJoinCount, 1)
	r.logger.Info("participant joined", "participant", p.ID(), "members", len(r.members))
	return nil
}

// Unregister removes p from the room. Removing an absent participant is a
// safe no-op. History is unaffected; in-flight operations on p are left to
// fail on their own.
func (r *Room) Unregister(p Participant) {
	r.mu.Lock()
	_, ok := r.members[p]
	delete(r.members, p)
	remaining := len(r.members)
	r.mu.Unlock()

	if !ok {
		return
	}
	metrics.IncrCounter(MetricRoomLeaveCount, 1)
	r.logger.Info("participant left", "participant", p.ID(), "members", remaining)
}

// Broadcast appends msg to history, evicting the oldest entry at capacity,
// then delivers it to every member except sender. The sender never receives
// an echo. Delivery to each member is independent and best-effort: a member
// that is concurrently closing simply drops the message.
func (r *Room) Broadcast(sender Participant, msg protocol.Message) {
	r.mu.Lock()
	r.history.push(msg)
	for p := range r.members {
		if p == sender {
			continue
		}
		p.Deliver(msg)
	}
	r.mu.Unlock()

	metrics.IncrCounter(MetricRoomBroadcastCount, 1)
}

// MemberCount returns the number of registered participants.
func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// HistoryLen returns the number of retained messages.
func (r *Room) HistoryLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.len()
}

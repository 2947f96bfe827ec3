package chat

import "github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"

// history retains the last max messages in insertion order, dropping the
// oldest entry on every push once full. Not safe for concurrent use on its
// own; the Room's lock guards it.
type history struct {
	max  int
	data []protocol.Message
}

func newHistory(max int) *history {
	return &history{max: max, data: make([]protocol.Message, 0, max)}
}

func (h *history) len() int {
	return len(h.data)
}

func (h *history) push(msg protocol.Message) {
	if len(h.data) == h.max {
		h.data = h.data[1:]
	}
	h.data = append(h.data, msg)
}

// snapshot copies the retained messages, oldest first.
func (h *history) snapshot() []protocol.Message {
	out := make([]protocol.Message, len(h.data))
	copy(out, h.data)
	return out
}

// Package chat provides the core chat domain logic shared by all transports.
package chat

import "github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/pkg/protocol"

// Participant is anything the Room can deliver messages to: a network peer,
// a bot, a logger. The Room only ever talks to this interface and never
// touches a transport directly.
type Participant interface {
	// ID identifies the participant in logs and metrics.
	ID() string

	// Deliver pushes one message onto the participant's outbound path.
	// Implementations must not block and must treat delivery to an already
	// shut down participant as a safe no-op.
	Deliver(msg protocol.Message)
}

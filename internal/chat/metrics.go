package chat

// Metric keys emitted by the room and its peers. Wire a sink with
// metrics.NewGlobal to collect them; the default global sink discards.
var (
	MetricRoomJoinCount      = []string{"chat", "room", "join", "count"}
	MetricRoomLeaveCount     = []string{"chat", "room", "leave", "count"}
	MetricRoomRejectedCount  = []string{"chat", "room", "rejected", "count"}
	MetricRoomBroadcastCount = []string{"chat", "room", "broadcast", "count"}
	MetricPeerOutBytes       = []string{"chat", "peer", "out", "bytes"}
	MetricPeerDroppedCount   = []string{"chat", "peer", "dropped", "count"}
)

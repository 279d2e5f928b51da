package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// HeaderLastEventID is sent by reconnecting EventSource clients
	HeaderLastEventID = "Last-Event-ID"
)

// Stream-only event types. Crafting events keep their bus type name.
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected      = "SSE client connected"
	LogMsgClientDisconnected   = "SSE client disconnected"
	LogMsgEventBroadcast       = "Broadcasting SSE event"
	LogMsgEventDropped         = "SSE broadcast buffer full, dropping event"
	LogMsgClientLagged         = "SSE client fell behind and missed events"
	LogMsgWriteError           = "Failed to write SSE event"
	LogMsgSubscriberRegistered = "SSE subscriber registered for event types"
)

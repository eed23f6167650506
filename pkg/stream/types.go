package stream

import (
	"context"
	"sync"
	"time"
)

// Stream represents one active streaming session. Its state is
// private to a single connection and discarded on disconnect.
type Stream struct {
	// ID uniquely identifies this connection.
	ID string `json:"id"`

	// ClientIP is the client's remote address.
	ClientIP string `json:"clientIp"`

	// UserAgent from the request.
	UserAgent string `json:"userAgent,omitempty"`

	// Format is the wire format in use (sse, ndjson, websocket).
	Format string `json:"format"`

	// StartTime when the connection was established.
	StartTime time.Time `json:"startTime"`

	// EventsSent counts delivered events.
	EventsSent int64 `json:"eventsSent"`

	// BytesSent counts total bytes written.
	BytesSent int64 `json:"bytesSent"`

	// Status of the connection.
	Status Status `json:"status"`

	// Internal fields, not serialized.
	query  *Query             `json:"-"`
	send   sender             `json:"-"`
	ctx    context.Context    `json:"-"`
	cancel context.CancelFunc `json:"-"`
	mu     sync.Mutex         `json:"-"`
}

// sender abstracts the transport-specific write path so the emission
// loop is shared across SSE, NDJSON, and WebSocket streams.
type sender interface {
	// sendEvent delivers one serialized filled shape.
	sendEvent(s *Stream, payload []byte) error

	// sendError delivers a terminal diagnostic before the stream closes.
	sendError(s *Stream, msg string) error

	// sendKeepalive delivers a liveness signal, if the transport has one.
	sendKeepalive(s *Stream) error
}

// Info is the read-only view of a stream exposed by the
// connections listing.
type Info struct {
	ID         string    `json:"id"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent,omitempty"`
	Format     string    `json:"format"`
	StartTime  time.Time `json:"startTime"`
	EventsSent int64     `json:"eventsSent"`
	BytesSent  int64     `json:"bytesSent"`
	Status     Status    `json:"status"`
}

// info snapshots the stream for the connections listing.
func (s *Stream) info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:         s.ID,
		ClientIP:   s.ClientIP,
		UserAgent:  s.UserAgent,
		Format:     s.Format,
		StartTime:  s.StartTime,
		EventsSent: s.EventsSent,
		BytesSent:  s.BytesSent,
		Status:     s.Status,
	}
}
